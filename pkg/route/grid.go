package route

import (
	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// gridPadding is the margin, in cells, added around the hull of all
// obstacles and pins so that detours have room to clear the outermost
// component bodies.
const gridPadding = 8

// cell addresses one square of the routing grid.
type cell struct {
	X, Y int
}

// Grid is the rasterized obstacle map the router searches over. It is
// built once per layout, before any net is routed, and is read-only
// afterwards; concurrent searches over the same grid are safe.
type Grid struct {
	cellSize               int
	minX, minY, maxX, maxY int
	blocked                map[cell]struct{}
}

// BuildGrid rasterizes the component bodies onto a grid with the given
// cell size. Components with a zero-area footprint (unknown types that
// never received a symbol definition) occupy no cells. The grid bounds
// cover every footprint and every pin, padded so paths can detour
// around components at the hull edge.
func BuildGrid(cellSize int, comps []circuit.PlacedComponent, pins []circuit.Point) *Grid {
	g := &Grid{
		cellSize: cellSize,
		blocked:  make(map[cell]struct{}),
	}
	first := true
	expand := func(c cell) {
		if first {
			g.minX, g.maxX = c.X, c.X
			g.minY, g.maxY = c.Y, c.Y
			first = false
			return
		}
		if c.X < g.minX {
			g.minX = c.X
		}
		if c.X > g.maxX {
			g.maxX = c.X
		}
		if c.Y < g.minY {
			g.minY = c.Y
		}
		if c.Y > g.maxY {
			g.maxY = c.Y
		}
	}

	for _, pc := range comps {
		if pc.Width == 0 && pc.Height == 0 {
			continue
		}
		minX, minY, maxX, maxY := pc.BBox()
		lo := g.toCell(circuit.Point{X: minX, Y: minY})
		hi := g.toCell(circuit.Point{X: maxX, Y: maxY})
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				c := cell{X: x, Y: y}
				g.blocked[c] = struct{}{}
				expand(c)
			}
		}
	}
	for _, p := range pins {
		expand(g.toCell(p))
	}
	if first {
		// Nothing placed and nothing to route.
		return g
	}
	g.minX -= gridPadding
	g.minY -= gridPadding
	g.maxX += gridPadding
	g.maxY += gridPadding
	return g
}

// toCell maps a canvas point to its grid cell by truncating toward zero.
func (g *Grid) toCell(p circuit.Point) cell {
	return cell{X: int(p.X) / g.cellSize, Y: int(p.Y) / g.cellSize}
}

// fromCell maps a grid cell back to the canvas position of its origin
// corner. Round-tripping a point through toCell and fromCell snaps it
// to the grid pitch.
func (g *Grid) fromCell(c cell) circuit.Point {
	return circuit.Point{X: float64(c.X * g.cellSize), Y: float64(c.Y * g.cellSize)}
}

// Blocked reports whether the cell lies inside a component footprint.
func (g *Grid) Blocked(c cell) bool {
	_, ok := g.blocked[c]
	return ok
}

// inBounds reports whether the cell lies inside the padded search area.
func (g *Grid) inBounds(c cell) bool {
	return c.X >= g.minX && c.X <= g.maxX && c.Y >= g.minY && c.Y <= g.maxY
}

// CellCount returns the number of cells in the padded search area.
func (g *Grid) CellCount() int {
	if g.maxX < g.minX || g.maxY < g.minY {
		return 0
	}
	return (g.maxX - g.minX + 1) * (g.maxY - g.minY + 1)
}

// BlockedCount returns the number of obstacle cells, for logging.
func (g *Grid) BlockedCount() int { return len(g.blocked) }
