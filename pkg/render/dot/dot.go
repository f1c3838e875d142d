// Package dot renders netlist connectivity as Graphviz graphs.
//
// The view is deliberately placement-free: components are boxes, nets are
// edges, and ground is a single hub node. It answers "is this netlist
// wired the way I think it is" before layout enters the picture.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// Options configures connectivity graph rendering.
type Options struct {
	// Detailed includes the type tag and value in component labels.
	// When false, only the reference is shown.
	Detailed bool
}

// ToDOT converts a netlist to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
//
// Ground symbol components fold into a single distinctly styled GND hub
// node; every terminal on the ground net connects to it. Other nets
// chain their member terminals in declaration order, labelled with the
// net name.
func ToDOT(n *circuit.Netlist, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, c := range n.Components {
		if c.Type.IsGround() {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Ref, fmtLabel(c, opts.Detailed))
	}
	if hasGround(n) {
		fmt.Fprintf(&buf, "  %q [shape=invtriangle, fillcolor=lightgrey];\n", circuit.GroundNode)
	}

	buf.WriteString("\n")
	for _, net := range n.Nets {
		writeNet(&buf, n, net)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNet(buf *bytes.Buffer, n *circuit.Netlist, net circuit.Net) {
	if net.Name == circuit.GroundNode {
		for _, p := range net.Pins {
			if c, ok := n.Component(p.Ref); ok && c.Type.IsGround() {
				continue
			}
			fmt.Fprintf(buf, "  %q -- %q;\n", p.Ref, circuit.GroundNode)
		}
		return
	}
	for i := 1; i < len(net.Pins); i++ {
		fmt.Fprintf(buf, "  %q -- %q [label=%q];\n", net.Pins[i-1].Ref, net.Pins[i].Ref, net.Name)
	}
}

func fmtLabel(c circuit.Component, detailed bool) string {
	if !detailed {
		return c.Ref
	}
	label := c.Ref + "\n" + c.Tag
	if c.Value != "" {
		label += " " + c.Value
	}
	return label
}

func hasGround(n *circuit.Netlist) bool {
	for _, net := range n.Nets {
		if net.Name == circuit.GroundNode {
			return true
		}
	}
	return false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	data, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz's in-process
// rasterizer.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBox = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element emitted by Graphviz, which
// sizes the drawing in points, so browsers show the graph at its
// natural pixel size.
func normalizeViewBox(svg []byte) []byte {
	m := svgViewBox.FindSubmatch(svg)
	if m == nil {
		return svg
	}

	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}

	open := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(open))
}
