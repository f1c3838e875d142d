package cli

import (
	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// newPlotCmd creates the plot command, a shortcut for rendering the pen
// plotter program format. The program scales the layout to the device
// bed, so the device geometry flags matter here.
func newPlotCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "plot <netlist.cir|layout.json>",
		Short: "Emit a pen plotter program for a circuit",
		Long: `Emit a pen plotter program for a circuit.

The program is a line-oriented text format: pen up/down moves, circles
for pin markers, and straight line segments, already scaled and
centered for the target device bed.

Example:
  lamp plot rc.cir --device-width 10900 --device-height 7650`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = []string{pipeline.FormatPlot}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.plot)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.symbols, "symbols", "", "TOML symbol overlay file")
	opts.layout.register(cmd)
	opts.device.register(cmd)

	return cmd
}
