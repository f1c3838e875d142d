// Package svg renders layout results as self-contained SVG documents.
//
// The drawing is deliberately plain: white component boxes, black wires,
// pin dots, and reference/value labels. It exists to inspect placement
// and routing in a browser, not to look like a polished schematic.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	padding float64
	labels  bool
	pinDots bool
}

// WithPadding sets the whitespace around the drawing in canvas units.
// The default is 50.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithoutLabels omits the reference and value labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithoutPinDots omits the dots at resolved pin positions.
func WithoutPinDots() Option { return func(r *renderer) { r.pinDots = false } }

// Render draws a layout result as an SVG document.
//
// Wires are drawn first so the filled component bodies mask them where a
// route crosses a silhouette, then bodies, pin dots, and labels.
func Render(res *layout.Result, opts ...Option) []byte {
	r := renderer{padding: 50, labels: true, pinDots: true}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := bounds(res, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, maxX-minX, maxY-minY, maxX-minX, maxY-minY)

	for _, w := range res.Wires {
		renderWire(&buf, w)
	}
	for _, pc := range res.Components {
		renderBody(&buf, pc)
	}
	if r.pinDots {
		for _, pc := range res.Components {
			for _, p := range pc.Pins {
				fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="black"/>`+"\n", p.X, p.Y)
			}
		}
	}
	if r.labels {
		for _, pc := range res.Components {
			renderLabels(&buf, pc)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWire(buf *bytes.Buffer, w circuit.Wire) {
	if len(w.Path) < 2 {
		return
	}
	pts := make([]string, len(w.Path))
	for i, p := range w.Path {
		pts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="black" stroke-width="2"/>`+"\n",
		strings.Join(pts, " "))
}

func renderBody(buf *bytes.Buffer, pc circuit.PlacedComponent) {
	if pc.Width == 0 && pc.Height == 0 {
		return
	}
	minX, minY, maxX, maxY := pc.BBox()
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="white" stroke="black" stroke-width="2"/>`+"\n",
		minX, minY, maxX-minX, maxY-minY)
}

func renderLabels(buf *bytes.Buffer, pc circuit.PlacedComponent) {
	_, minY, _, maxY := pc.BBox()
	if pc.Width == 0 && pc.Height == 0 {
		minY, maxY = pc.Y, pc.Y
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="14">%s</text>`+"\n",
		pc.X, minY-6, escape(pc.Ref))
	if pc.Value != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="12">%s</text>`+"\n",
			pc.X, maxY+16, escape(pc.Value))
	}
}

// bounds returns the padded drawing bounds over bodies, pins, and wires.
func bounds(res *layout.Result, pad float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}

	for _, pc := range res.Components {
		x0, y0, x1, y1 := pc.BBox()
		grow(x0, y0)
		grow(x1, y1)
		for _, p := range pc.Pins {
			grow(p.X, p.Y)
		}
	}
	for _, w := range res.Wires {
		for _, p := range w.Path {
			grow(p.X, p.Y)
		}
	}

	if minX > maxX {
		// Nothing to draw
		return 0, 0, 100, 100
	}
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
