package pipeline

import (
	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	lamperrors "github.com/Naivedya-sahu/lamp-v2/pkg/errors"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/symbols"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the layout engine over a parsed netlist: topology
// classification, placement, pin resolution, and wire routing. Recoverable
// problems surface as diagnostics on the result, not as errors.
func GenerateLayout(n *circuit.Netlist, opts Options) (*layout.Result, error) {
	lib, err := loadLibrary(opts)
	if err != nil {
		return nil, err
	}

	eng := layout.NewEngine(lib)
	if opts.Logger != nil {
		eng.Logger = opts.Logger
	}

	return eng.Run(n, opts.Layout)
}

// loadLibrary builds the symbol library for a run. A runtime Library
// override wins; otherwise the built-in defaults are used, with the TOML
// overlay applied on top when one is configured.
func loadLibrary(opts Options) (*symbols.Library, error) {
	if opts.Library != nil {
		return opts.Library, nil
	}

	lib := symbols.Default()
	if opts.SymbolsPath != "" {
		if err := lib.LoadOverlay(opts.SymbolsPath); err != nil {
			return nil, lamperrors.Wrap(lamperrors.ErrCodeInvalidSymbols, err, "load symbol overlay %s", opts.SymbolsPath)
		}
	}

	return lib, nil
}
