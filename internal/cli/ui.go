package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ====== Palette ======

var (
	colorAccent = lipgloss.Color("36")  // teal, primary actions
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorErr    = lipgloss.Color("167") // soft red
	colorCmd    = lipgloss.Color("75")  // light blue, command hints
	colorBright = lipgloss.Color("255") // values
	colorMuted  = lipgloss.Color("245") // secondary text
	colorFaint  = lipgloss.Color("240") // dim text
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// ====== Styles ======

// Exported styles are shared with the preview TUI.
var (
	StyleTitle   = fg(colorAccent).Bold(true)
	StyleDim     = fg(colorFaint)
	StyleValue   = fg(colorBright)
	StyleSuccess = fg(colorOK)
	StyleWarning = fg(colorWarn)
)

var (
	styleIconSpinner = fg(colorAccent)
	styleCommand     = fg(colorCmd)
	styleKey         = fg(colorMuted).Width(12)
)

// ====== Status lines ======

func statusLine(style lipgloss.Style, glyph, format string, args ...any) {
	fmt.Println(style.Render(glyph) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusLine(StyleSuccess, "✓", format, args...) }

func printError(format string, args ...any) { statusLine(fg(colorErr), "✗", format, args...) }

func printInfo(format string, args ...any) { statusLine(fg(colorMuted), "›", format, args...) }

func printWarning(format string, args ...any) {
	statusLine(StyleWarning, "!", "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value with an aligned key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints a one-line run summary. Zero counts are omitted,
// and the trailing badge tells a cache hit from a fresh computation.
func printStats(componentCount, netCount, wireCount int, cached bool) {
	counts := []struct {
		n    int
		unit string
	}{
		{componentCount, "components"},
		{netCount, "nets"},
		{wireCount, "wires"},
	}

	parts := make([]string, 0, len(counts)+1)
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(fmt.Sprintf("%d %s", c.n, c.unit)))
		}
	}

	badge := fg(colorMuted).Render("fresh")
	if cached {
		badge = StyleSuccess.Render("cached")
	}
	parts = append(parts, badge)

	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
