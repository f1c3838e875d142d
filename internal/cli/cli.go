// Package cli implements the lamp command-line interface.
//
// This package provides commands for parsing circuit netlists, computing
// schematic layouts, rendering SVG previews and pen plotter programs, and
// serving the pipeline over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Parse a netlist and report its components and nets
//   - layout: Compute a schematic layout and write layout JSON
//   - render: Render a netlist or layout to SVG, plot, or JSON
//   - plot: Emit a pen plotter program
//   - graph: Render net connectivity as DOT, SVG, or PNG
//   - preview: Pan around an ASCII rendering of a layout
//   - serve: Serve the pipeline over HTTP with persisted runs
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/Naivedya-sahu/lamp-v2/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Naivedya-sahu/lamp-v2/pkg/cache"
	"github.com/Naivedya-sahu/lamp-v2/pkg/pipeline"
)

// appName is used for the binary name in help text and for per-user
// directories.
const appName = "lamp"

// newRunner creates a pipeline runner for CLI use, backed by the local
// file cache unless noCache is set.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	c, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// newCache creates the cache backend. When the cache directory cannot
// be determined the CLI degrades to no caching rather than failing.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the per-user cache directory, honoring
// XDG_CACHE_HOME and falling back to ~/.cache.
func cacheDir() (string, error) {
	root := os.Getenv("XDG_CACHE_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, ".cache")
	}
	return filepath.Join(root, appName), nil
}

// parseFormats splits a comma-separated format list, defaulting to SVG.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		formats = append(formats, strings.TrimSpace(f))
	}
	return formats
}

// knownExt reports whether ext belongs to one of the render formats.
func knownExt(ext string) bool {
	switch ext {
	case ".svg", ".json", ".plot", ".dot", ".png":
		return true
	}
	return false
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input (and a
// trailing ".layout" so rendering rc.layout.json produces rc.svg). If
// output carries a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(stem, ".layout")
	}
	if ext := filepath.Ext(output); knownExt(ext) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser lets os.Stdout satisfy io.WriteCloser without being closed.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
