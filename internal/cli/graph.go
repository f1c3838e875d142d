package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path (default: <input>.<format>)
	format   string // output format: "dot", "svg", "png"
	detailed bool   // include component values in node labels
	noCache  bool   // disable caching
	refresh  bool   // recompute even if cached
}

// newGraphCmd creates the graph command for rendering net connectivity.
// Unlike 'render', the output is a node-link diagram of the electrical
// connectivity, not a schematic: components are nodes, shared nets are
// edges.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: pipeline.GraphFormatDOT}

	cmd := &cobra.Command{
		Use:   "graph <netlist.cir>",
		Short: "Render net connectivity as a graph",
		Long: `Render the electrical connectivity of a netlist as a graph.

Components become nodes and shared nets become edges. The DOT output
can be processed with any Graphviz tooling; svg and png are rendered
directly.

Examples:
  lamp graph rc.cir                 # rc.dot
  lamp graph rc.cir -f svg          # rc.svg
  lamp graph rc.cir -f png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(opts.format); err != nil {
				return err
			}
			return runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include component values in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runGraph parses the netlist and renders the connectivity graph.
func runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		NetlistPath: input,
		Refresh:     opts.refresh,
		Detailed:    opts.detailed,
		Logger:      logger,
	}

	runner, err := newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	n, src, err := runner.Parse(ctx, popts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s graph...", opts.format))
	spinner.Start()

	data, cacheHit, err := runner.GraphWithCacheInfo(ctx, n, cache.Hash([]byte(src)), opts.format, popts)
	if err != nil {
		spinner.StopWithError("Graph rendering failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = basePath("", input) + "." + opts.format
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSuccess("Graph rendered")
	printFile(outputPath)
	printStats(len(n.Components), len(n.Nets), 0, cacheHit)

	return nil
}
