package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/lio"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output  string // output file path (default: <input>.layout.json)
	noCache bool   // disable caching
	refresh bool   // recompute even if cached
	symbols string // TOML symbol overlay path
	layout  layoutFlags
}

// newLayoutCmd creates the layout command for computing schematic layouts.
func newLayoutCmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout <netlist.cir>",
		Short: "Compute a schematic layout from a netlist",
		Long: `Compute a schematic layout from a netlist file.

The layout command parses the netlist, classifies the circuit topology
(series, parallel, or generic), places the symbols, and routes the
wires. The output is a layout.json file that 'render', 'plot', and
'preview' consume without recomputing.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.symbols, "symbols", "", "TOML symbol overlay file")
	opts.layout.register(cmd)

	return cmd
}

// runLayout parses the netlist, computes the layout, and writes output.
func runLayout(ctx context.Context, input string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	popts := pipeline.Options{
		NetlistPath: input,
		Refresh:     opts.refresh,
		Layout:      cfg.Layout,
		SymbolsPath: opts.symbols,
		Logger:      logger,
	}
	if popts.SymbolsPath == "" {
		popts.SymbolsPath = cfg.Symbols
	}
	opts.layout.apply(&popts.Layout)

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	n, src, err := runner.Parse(ctx, popts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, n, cache.Hash([]byte(src)), popts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, d := range res.Diagnostics {
		printWarning("%s", d)
	}

	outputPath := opts.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := lio.ExportJSON(res, outputPath); err != nil {
		return fmt.Errorf("write layout %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (%s)", res.Topology)
	printFile(outputPath)
	printStats(len(res.Components), len(n.Nets), len(res.Wires), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
