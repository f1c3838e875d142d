package pipeline

import (
	"os"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	lamperrors "github.com/Naivedya-sahu/lamp-v2/pkg/errors"
	"github.com/Naivedya-sahu/lamp-v2/pkg/netlist"
)

// Parse reads and parses the netlist named by opts. It returns the parsed
// netlist together with the raw source text, which the cache keys of the
// later stages are derived from.
func Parse(opts Options) (*circuit.Netlist, string, error) {
	src, err := resolveSource(opts)
	if err != nil {
		return nil, "", err
	}

	if err := lamperrors.ValidateNetlistSource(src); err != nil {
		return nil, "", err
	}

	n, err := netlist.ParseString(src)
	if err != nil {
		return nil, "", lamperrors.Wrap(lamperrors.ErrCodeInvalidNetlist, err, "parse %s", opts.SourceName())
	}

	return n, src, nil
}

// resolveSource returns the netlist text from options. Inline source wins
// over a file path when both are set, so API callers can embed source
// while reusing option structs that carry a path.
func resolveSource(opts Options) (string, error) {
	if opts.Netlist != "" {
		return opts.Netlist, nil
	}

	data, err := os.ReadFile(opts.NetlistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", lamperrors.New(lamperrors.ErrCodeFileNotFound, "netlist file not found: %s", opts.NetlistPath)
		}
		return "", lamperrors.Wrap(lamperrors.ErrCodeInvalidInput, err, "read %s", opts.NetlistPath)
	}

	return string(data), nil
}
