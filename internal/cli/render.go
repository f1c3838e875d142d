package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/lio"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render and plot
// commands. These options control output formats, SVG decoration, and
// plot device geometry.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: "svg", "plot", "json"
	noCache   bool     // disable caching
	refresh   bool     // recompute even if cached
	noLabels  bool     // omit reference/value labels in SVG
	noPinDots bool     // omit pin markers in SVG
	padding   float64  // SVG padding in canvas units
	symbols   string   // TOML symbol overlay path
	layout    layoutFlags
	device    deviceFlags
}

// newRenderCmd creates the render command for generating output artifacts.
// It accepts either a netlist source or a precomputed layout JSON file.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{padding: pipeline.DefaultPadding}

	cmd := &cobra.Command{
		Use:   "render <netlist.cir|layout.json>",
		Short: "Render a netlist or computed layout to output formats",
		Long: `Render a circuit to one or more output formats.

The input is either a netlist source file (the full pipeline runs) or a
layout.json file produced by 'lamp layout' (only the render stage runs).

Formats:
  svg   - standalone SVG preview
  plot  - pen plotter program, one command per line
  json  - canonical layout JSON

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), plot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit reference and value labels (svg)")
	cmd.Flags().BoolVar(&opts.noPinDots, "no-pin-dots", false, "omit pin markers (svg)")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "canvas padding around the drawing (svg)")
	cmd.Flags().StringVar(&opts.symbols, "symbols", "", "TOML symbol overlay file")
	opts.layout.register(cmd)
	opts.device.register(cmd)

	return cmd
}

// isLayoutFile reports whether input is a precomputed layout JSON file
// rather than a netlist source.
func isLayoutFile(input string) bool {
	return strings.EqualFold(filepath.Ext(input), ".json")
}

// pipelineOptions builds pipeline options from the file config and the
// explicitly set flags.
func (o *renderOpts) pipelineOptions(ctx context.Context, input string) pipeline.Options {
	cfg := configFromContext(ctx)

	popts := pipeline.Options{
		Refresh:     o.refresh,
		Layout:      cfg.Layout,
		SymbolsPath: o.symbols,
		Formats:     o.formats,
		NoLabels:    o.noLabels,
		NoPinDots:   o.noPinDots,
		Padding:     o.padding,
		Device:      cfg.Device,
		Logger:      loggerFromContext(ctx),
	}
	if !isLayoutFile(input) {
		popts.NetlistPath = input
	}
	if popts.SymbolsPath == "" {
		popts.SymbolsPath = cfg.Symbols
	}
	o.layout.apply(&popts.Layout)
	o.device.apply(&popts.Device)
	return popts
}

// runRender renders the input to the requested formats and writes one
// file per format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	popts := opts.pipelineOptions(ctx, input)

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		artifacts          map[string][]byte
		cacheHit           bool
		comps, nets, wires int
		diags              []circuit.Diagnostic
	)

	if isLayoutFile(input) {
		res, err := lio.ImportJSON(input)
		if err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		logger.Infof("Loaded layout: %d components, %d wires", len(res.Components), len(res.Wires))

		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, res, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		comps, wires = len(res.Components), len(res.Wires)
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
		spinner.Start()
		result, err := runner.Execute(ctx, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		artifacts = result.Artifacts
		cacheHit = result.CacheInfo.RenderHit
		comps = result.Stats.ComponentCount
		nets = result.Stats.NetCount
		wires = result.Stats.WireCount
		diags = result.Layout.Diagnostics
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, d := range diags {
		printWarning("%s", d)
	}

	printSuccess("Render complete")
	if err := writeArtifacts(artifacts, opts.formats, input, opts.output); err != nil {
		return err
	}
	printStats(comps, nets, wires, cacheHit)

	return nil
}

// writeArtifacts writes one file per rendered format. A single format
// with an explicit output path is written exactly there; otherwise file
// names derive from the base path plus the format extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
