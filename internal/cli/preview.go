package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/lio"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	noCache bool   // disable caching
	symbols string // TOML symbol overlay path
	layout  layoutFlags
}

// newPreviewCmd creates the preview command, an interactive terminal
// rendering of a layout.
func newPreviewCmd() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <netlist.cir|layout.json>",
		Short: "Interactively preview a layout in the terminal",
		Long: `Preview a layout as an ASCII canvas in the terminal.

Placed components appear as bracketed references and wires as line
segments. Pan with the arrow keys or hjkl; q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.symbols, "symbols", "", "TOML symbol overlay file")
	opts.layout.register(cmd)

	return cmd
}

// runPreview loads or computes the layout and hands it to the TUI.
func runPreview(ctx context.Context, input string, opts *previewOpts) error {
	res, err := previewLayout(ctx, input, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPreviewModel(input, res), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// previewLayout resolves the input to a layout result: layout JSON files
// load directly, netlist sources run through the pipeline.
func previewLayout(ctx context.Context, input string, opts *previewOpts) (*layout.Result, error) {
	if isLayoutFile(input) {
		res, err := lio.ImportJSON(input)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", input, err)
		}
		return res, nil
	}

	cfg := configFromContext(ctx)
	popts := pipeline.Options{
		NetlistPath: input,
		Layout:      cfg.Layout,
		SymbolsPath: opts.symbols,
		Logger:      loggerFromContext(ctx),
	}
	if popts.SymbolsPath == "" {
		popts.SymbolsPath = cfg.Symbols
	}
	opts.layout.apply(&popts.Layout)

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	n, src, err := runner.Parse(ctx, popts)
	if err != nil {
		return nil, err
	}
	return runner.GenerateLayout(ctx, n, cache.Hash([]byte(src)), popts)
}

// Canvas scale: world units per character cell. Character cells are
// roughly twice as tall as wide, so the vertical scale doubles the
// horizontal one to keep proportions recognizable.
const (
	previewCellW   = 20.0
	previewCellH   = 40.0
	previewPanStep = 4
)

// previewModel is the bubbletea model for the layout preview. It pans a
// character-cell rasterization of the placed components and wires.
type previewModel struct {
	source  string
	res     *layout.Result
	offsetX int // pan offset in character cells
	offsetY int
	width   int // canvas size in character cells
	height  int
}

// newPreviewModel creates a preview model with a conservative default
// viewport; the first WindowSizeMsg replaces it.
func newPreviewModel(source string, res *layout.Result) previewModel {
	return previewModel{source: source, res: res, width: 80, height: 20}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.offsetX -= previewPanStep
		case "right", "l":
			m.offsetX += previewPanStep
		case "up", "k":
			m.offsetY -= previewPanStep / 2
		case "down", "j":
			m.offsetY += previewPanStep / 2
		case "0":
			m.offsetX, m.offsetY = 0, 0
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 3 // header and key help
		if m.height < 5 {
			m.height = 5
		}
		if m.width < 20 {
			m.width = 20
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview"))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(m.source))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %d components · %d wires",
		m.res.Topology, len(m.res.Components), len(m.res.Wires))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↓↑→/hjkl pan  0 reset  q quit"))
	b.WriteString("\n")
	b.WriteString(m.canvas())

	return b.String()
}

// canvas rasterizes the wires and component references into a rune grid.
// Wires draw first so component labels stay readable on top.
func (m previewModel) canvas() string {
	grid := make([][]rune, m.height)
	for i := range grid {
		row := make([]rune, m.width)
		for j := range row {
			row[j] = ' '
		}
		grid[i] = row
	}

	set := func(col, row int, r rune) {
		col -= m.offsetX
		row -= m.offsetY
		if col < 0 || col >= m.width || row < 0 || row >= m.height {
			return
		}
		grid[row][col] = r
	}

	for _, w := range m.res.Wires {
		for i := 1; i < len(w.Path); i++ {
			c1, r1 := toCell(w.Path[i-1])
			c2, r2 := toCell(w.Path[i])
			drawSegment(set, c1, r1, c2, r2)
		}
		// Bends render as joints so corners read as connected.
		for i := 1; i < len(w.Path)-1; i++ {
			c, r := toCell(w.Path[i])
			set(c, r, '+')
		}
	}

	for _, pc := range m.res.Components {
		col, row := toCell(pc.Anchor())
		label := "[" + pc.Ref + "]"
		start := col - len(label)/2
		for i, ch := range label {
			set(start+i, row, ch)
		}
	}

	lines := make([]string, m.height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// toCell maps a world coordinate to a character cell.
func toCell(p circuit.Point) (col, row int) {
	return int(math.Round(p.X / previewCellW)), int(math.Round(p.Y / previewCellH))
}

// drawSegment rasterizes one Manhattan wire segment. The paths are
// axis-aligned by construction, so a segment is either a row run or a
// column run.
func drawSegment(set func(col, row int, r rune), c1, r1, c2, r2 int) {
	if r1 == r2 {
		if c2 < c1 {
			c1, c2 = c2, c1
		}
		for c := c1; c <= c2; c++ {
			set(c, r1, '─')
		}
		return
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	for r := r1; r <= r2; r++ {
		set(c1, r, '│')
	}
}
