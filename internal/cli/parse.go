package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output string // output file path (stdout if empty)
}

// newParseCmd creates the parse command. It reads a netlist file, reports
// the component and net counts, and writes the parsed netlist as JSON.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <netlist.cir>",
		Short: "Parse a netlist and report its components and nets",
		Long: `Parse a netlist file and write the parsed structure as JSON.

Netlists are line-oriented cards: a type tag, a reference, one or two
node names, and an optional value. Lines starting with * are comments
and lines starting with . are directives; both are skipped.

Examples:
  lamp parse rc.cir                # JSON to stdout
  lamp parse rc.cir -o rc.json     # JSON to a file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runParse parses the netlist and writes it as indented JSON.
func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Parsing %s", input)

	prog := newProgress(logger)
	n, _, err := pipeline.Parse(pipeline.Options{NetlistPath: input, Logger: logger})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d components on %d nets", len(n.Components), len(n.Nets)))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("write netlist JSON: %w", err)
	}

	if opts.output != "" {
		printSuccess("Netlist parsed")
		printFile(opts.output)
		printStats(len(n.Components), len(n.Nets), 0, false)
		printNewline()
		printNextStep("Layout", appName+" layout "+input)
	}
	return nil
}
