package pipeline

import (
	"fmt"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
	"github.com/Naivedya-sahu/lamp-v2/pkg/lio"
	"github.com/Naivedya-sahu/lamp-v2/pkg/render/dot"
	"github.com/Naivedya-sahu/lamp-v2/pkg/render/plot"
	"github.com/Naivedya-sahu/lamp-v2/pkg/render/svg"
)

// RenderFromLayout generates output artifacts in the requested formats
// from a placed and routed layout.
func RenderFromLayout(res *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := renderFormat(res, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFormat renders a single artifact format.
func renderFormat(res *layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg.Render(res, opts.svgOptions()...), nil
	case FormatPlot:
		prog, err := plot.Render(res, opts.Device)
		if err != nil {
			return nil, err
		}
		return prog.Bytes(), nil
	case FormatJSON:
		return lio.Marshal(res)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// svgOptions converts render options to SVG renderer options.
func (o *Options) svgOptions() []svg.Option {
	var svgOpts []svg.Option
	if o.Padding > 0 {
		svgOpts = append(svgOpts, svg.WithPadding(o.Padding))
	}
	if o.NoLabels {
		svgOpts = append(svgOpts, svg.WithoutLabels())
	}
	if o.NoPinDots {
		svgOpts = append(svgOpts, svg.WithoutPinDots())
	}
	return svgOpts
}

// =============================================================================
// Connectivity Graph
// =============================================================================

// RenderGraph renders the net connectivity graph of a netlist. Unlike the
// layout artifacts, the graph shows electrical structure only: components
// as nodes, shared nets as edges, with no geometry.
func RenderGraph(n *circuit.Netlist, format string, opts Options) ([]byte, error) {
	d := dot.ToDOT(n, dot.Options{Detailed: opts.Detailed})

	switch format {
	case GraphFormatDOT:
		return []byte(d), nil
	case GraphFormatSVG:
		return dot.RenderSVG(d)
	case GraphFormatPNG:
		return dot.RenderPNG(d)
	default:
		return nil, fmt.Errorf("unsupported graph format: %s", format)
	}
}
