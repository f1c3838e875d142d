package circuit

import (
	"fmt"
	"math"
)

// Point is an absolute position on the schematic canvas.
// Canvas units are abstract; the emission adapters scale them to device
// space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ManhattanDist returns |dx| + |dy| between two points.
func ManhattanDist(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Offset is a pin position relative to a component anchor at rotation 0.
// Offsets are integers so that rotation stays algebraically exact.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Rotation is a component orientation in degrees. Only the four axis
// orientations are representable.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Valid reports whether r is one of the four supported orientations.
func (r Rotation) Valid() bool {
	switch r {
	case Rot0, Rot90, Rot180, Rot270:
		return true
	}
	return false
}

// Rotate maps the offset through the rotation using the exact integer
// quarter-turn transforms:
//
//	rot90:  (dx, dy) -> (-dy,  dx)
//	rot180: (dx, dy) -> (-dx, -dy)
//	rot270: (dx, dy) -> ( dy, -dx)
//
// Four applications of Rot90 compose to the identity with zero drift.
func (o Offset) Rotate(r Rotation) Offset {
	switch r {
	case Rot90:
		return Offset{DX: -o.DY, DY: o.DX}
	case Rot180:
		return Offset{DX: -o.DX, DY: -o.DY}
	case Rot270:
		return Offset{DX: o.DY, DY: -o.DX}
	default:
		return o
	}
}

// PlacedComponent is a component with an assigned anchor and orientation.
// Pins is populated by pin resolution; it stays nil for components whose
// type has no symbol definition, and such components never contribute
// routing endpoints.
type PlacedComponent struct {
	Ref      string   `json:"ref"`
	Type     Type     `json:"-"`
	Tag      string   `json:"type"`
	Value    string   `json:"value,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation Rotation `json:"rotation"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Pins     []Point  `json:"pins,omitempty"`
}

// Anchor returns the component's anchor point.
func (p PlacedComponent) Anchor() Point { return Point{X: p.X, Y: p.Y} }

// BBox returns the axis-aligned bounding box of the component body,
// honoring orientation: quarter turns swap the footprint's width and
// height.
func (p PlacedComponent) BBox() (minX, minY, maxX, maxY float64) {
	w, h := p.Width, p.Height
	if p.Rotation == Rot90 || p.Rotation == Rot270 {
		w, h = h, w
	}
	return p.X - w/2, p.Y - h/2, p.X + w/2, p.Y + h/2
}

// Wire is the routed polyline for one net.
//
// A valid wire is a pure Manhattan path: consecutive waypoints differ in
// exactly one axis, no two consecutive waypoints coincide, and no three
// consecutive waypoints are collinear (paths are simplified before they
// leave the router).
type Wire struct {
	Net  string  `json:"net"`
	Path []Point `json:"path"`
}

// Validate checks the Manhattan-polyline invariants.
func (w Wire) Validate() error {
	for i := 1; i < len(w.Path); i++ {
		a, b := w.Path[i-1], w.Path[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		if dx == 0 && dy == 0 {
			return fmt.Errorf("wire %s: duplicate waypoint at index %d", w.Net, i)
		}
		if dx != 0 && dy != 0 {
			return fmt.Errorf("wire %s: diagonal segment at index %d", w.Net, i)
		}
	}
	for i := 2; i < len(w.Path); i++ {
		a, b, c := w.Path[i-2], w.Path[i-1], w.Path[i]
		if (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y) {
			return fmt.Errorf("wire %s: collinear waypoint at index %d", w.Net, i-1)
		}
	}
	return nil
}

// Length returns the total Manhattan length of the wire.
func (w Wire) Length() float64 {
	var total float64
	for i := 1; i < len(w.Path); i++ {
		total += ManhattanDist(w.Path[i-1], w.Path[i])
	}
	return total
}
