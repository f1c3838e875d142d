// Package plot emits layout results as pen programs for the reMarkable 2
// e-paper plotter.
//
// The plotter daemon consumes a line protocol over stdin: one command per
// line, integer screen coordinates, origin at the top-left of the
// portrait screen. A drawing is a sequence of strokes:
//
//	pen rectangle 602 886 802 986
//	pen down 500 500
//	pen move 900 500
//	pen up
//
// Rendering fits the abstract layout canvas onto the screen: scale to the
// drawable area inside the margins, capped so small circuits are not
// blown up past recognition, then center. Component bodies become
// rectangles with short lead ticks at each pin, wires become pen strokes,
// and points where wire ends meet get junction dots. Text is not emitted;
// the plotter has no glyph support.
package plot

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/layout"
)

// Device describes a plotter's drawable surface in device pixels.
type Device struct {
	Width    int     `json:"width" toml:"width"`
	Height   int     `json:"height" toml:"height"`
	Margin   int     `json:"margin" toml:"margin"`
	MaxScale float64 `json:"max_scale" toml:"max_scale"`
}

// ReMarkable2 is the default target device: 1404x1872 portrait with a
// 100 pixel margin, scaling capped at 2x.
var ReMarkable2 = Device{Width: 1404, Height: 1872, Margin: 100, MaxScale: 2.0}

// ErrInvalidDevice reports unusable device geometry.
var ErrInvalidDevice = errors.New("plot: invalid device geometry")

// ValidateAndSetDefaults fills zero fields from ReMarkable2 and checks
// the geometry leaves a drawable area. It is idempotent.
func (d *Device) ValidateAndSetDefaults() error {
	if d.Width < 0 || d.Height < 0 || d.Margin < 0 || d.MaxScale < 0 {
		return ErrInvalidDevice
	}
	if d.Width == 0 {
		d.Width = ReMarkable2.Width
	}
	if d.Height == 0 {
		d.Height = ReMarkable2.Height
	}
	if d.Margin == 0 {
		d.Margin = ReMarkable2.Margin
	}
	if d.MaxScale == 0 {
		d.MaxScale = ReMarkable2.MaxScale
	}
	if 2*d.Margin >= d.Width || 2*d.Margin >= d.Height {
		return ErrInvalidDevice
	}
	return nil
}

// Op is a pen program opcode.
type Op string

const (
	OpDown      Op = "pen down"
	OpMove      Op = "pen move"
	OpUp        Op = "pen up"
	OpLine      Op = "pen line"
	OpRectangle Op = "pen rectangle"
	OpCircle    Op = "pen circle"
)

// Command is one pen instruction with integer device arguments.
type Command struct {
	Op   Op
	Args []int
}

// String serializes the command in the plotter's line protocol.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(string(c.Op))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

// Program is an ordered pen command sequence.
type Program []Command

// String serializes the program, one command per line.
func (p Program) String() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Bytes returns the serialized program.
func (p Program) Bytes() []byte { return []byte(p.String()) }

// Transform maps canvas coordinates onto device pixels.
type Transform struct {
	Scale float64
	DX    float64
	DY    float64
}

// Apply maps a canvas point to device coordinates.
func (t Transform) Apply(p circuit.Point) (int, int) {
	return int(math.Round(p.X*t.Scale + t.DX)), int(math.Round(p.Y*t.Scale + t.DY))
}

// Fit computes the transform that scales the drawing into the device's
// drawable area and centers it on the screen. An empty result maps the
// canvas origin to the screen center at scale 1.
func Fit(res *layout.Result, dev Device) Transform {
	minX, minY, maxX, maxY := bounds(res)
	if minX > maxX {
		return Transform{Scale: 1, DX: float64(dev.Width) / 2, DY: float64(dev.Height) / 2}
	}

	availW := float64(dev.Width - 2*dev.Margin)
	availH := float64(dev.Height - 2*dev.Margin)

	scale := dev.MaxScale
	if w := maxX - minX; w > 0 {
		scale = math.Min(scale, availW/w)
	}
	if h := maxY - minY; h > 0 {
		scale = math.Min(scale, availH/h)
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return Transform{
		Scale: scale,
		DX:    float64(dev.Width)/2 - scale*cx,
		DY:    float64(dev.Height)/2 - scale*cy,
	}
}

const (
	tickLen   = 8.0 // pin lead length in canvas units
	junctionR = 4   // junction dot radius in device pixels
)

// Render emits the pen program for a layout result. Zero fields of dev
// fall back to ReMarkable2 geometry.
func Render(res *layout.Result, dev Device) (Program, error) {
	if err := dev.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	t := Fit(res, dev)

	var prog Program
	for _, pc := range res.Components {
		prog = append(prog, renderBody(pc, t)...)
	}
	for _, w := range res.Wires {
		prog = append(prog, renderWire(w, t)...)
	}
	prog = append(prog, junctions(res, t)...)
	return prog, nil
}

func renderBody(pc circuit.PlacedComponent, t Transform) Program {
	var prog Program
	if pc.Width > 0 || pc.Height > 0 {
		x0, y0, x1, y1 := pc.BBox()
		ax, ay := t.Apply(circuit.Point{X: x0, Y: y0})
		bx, by := t.Apply(circuit.Point{X: x1, Y: y1})
		prog = append(prog, Command{Op: OpRectangle, Args: []int{ax, ay, bx, by}})
	}

	// Lead ticks extend each pin outward along its dominant axis.
	for _, p := range pc.Pins {
		ux, uy := sign(p.X-pc.X), 0.0
		if math.Abs(p.Y-pc.Y) > math.Abs(p.X-pc.X) {
			ux, uy = 0, sign(p.Y-pc.Y)
		}
		if ux == 0 && uy == 0 {
			continue
		}
		x1, y1 := t.Apply(p)
		x2, y2 := t.Apply(circuit.Point{X: p.X + ux*tickLen, Y: p.Y + uy*tickLen})
		if x1 == x2 && y1 == y2 {
			continue
		}
		prog = append(prog, Command{Op: OpLine, Args: []int{x1, y1, x2, y2}})
	}
	return prog
}

func renderWire(w circuit.Wire, t Transform) Program {
	if len(w.Path) < 2 {
		return nil
	}
	prog := make(Program, 0, len(w.Path)+1)
	x, y := t.Apply(w.Path[0])
	prog = append(prog, Command{Op: OpDown, Args: []int{x, y}})
	for _, p := range w.Path[1:] {
		x, y = t.Apply(p)
		prog = append(prog, Command{Op: OpMove, Args: []int{x, y}})
	}
	return append(prog, Command{Op: OpUp})
}

// junctions emits a dot wherever two or more wire ends meet, in
// deterministic top-to-bottom, left-to-right order.
func junctions(res *layout.Result, t Transform) Program {
	type cell struct{ x, y int }
	count := make(map[cell]int)
	for _, w := range res.Wires {
		if len(w.Path) < 2 {
			continue
		}
		for _, p := range []circuit.Point{w.Path[0], w.Path[len(w.Path)-1]} {
			x, y := t.Apply(p)
			count[cell{x, y}]++
		}
	}

	cells := make([]cell, 0, len(count))
	for c, n := range count {
		if n >= 2 {
			cells = append(cells, c)
		}
	}
	slices.SortFunc(cells, func(a, b cell) int {
		if a.y != b.y {
			return cmp.Compare(a.y, b.y)
		}
		return cmp.Compare(a.x, b.x)
	})

	prog := make(Program, len(cells))
	for i, c := range cells {
		prog[i] = Command{Op: OpCircle, Args: []int{c.x, c.y, junctionR}}
	}
	return prog
}

// bounds returns the drawing bounds over bodies, pins, and wires.
func bounds(res *layout.Result) (minX, minY, maxX, maxY float64) {
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
	return minX, minY, maxX, maxY
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
