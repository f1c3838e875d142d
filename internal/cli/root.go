package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo"
)

// Execute runs the lamp CLI. The context controls cancellation for all
// commands; main wires it to SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd assembles the command tree. Every command inherits the
// --verbose and --config flags, and PersistentPreRunE attaches the
// logger and the loaded lamp.toml config to the command context, where
// loggerFromContext and configFromContext find them.
func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Lamp turns circuit netlists into schematic layouts and plots",
		Long: `Lamp parses netlist cards, classifies the circuit topology, places
symbols on a canvas, routes orthogonal wires, and emits SVG previews,
pen plotter programs, and layout JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default lamp.toml if present)")

	for _, sub := range []*cobra.Command{
		newParseCmd(),
		newLayoutCmd(),
		newRenderCmd(),
		newPlotCmd(),
		newGraphCmd(),
		newPreviewCmd(),
		newServeCmd(),
		newCacheCmd(),
		newCompletionCmd(),
	} {
		root.AddCommand(sub)
	}

	return root
}
