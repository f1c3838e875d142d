// Package route implements obstacle-aware orthogonal wire routing.
//
// Routing happens on a uniform grid rasterized from the placed
// component bodies. Every net is routed independently with A* (two
// pins) or a minimum spanning tree of A* paths (three or more pins).
// Component footprints are soft obstacles: crossing one is heavily
// penalized but never forbidden, so routing always terminates with a
// drawable result. Connections that exhaust the search budget degrade
// to L-shaped fallback paths and surface as diagnostics rather than
// errors.
package route

import (
	"fmt"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// Router routes nets over a shared read-only obstacle grid.
type Router struct {
	cfg  Config
	grid *Grid
}

// NewRouter validates the config and rasterizes the placed components
// onto a fresh grid. pins must include every endpoint the router will
// later connect; they widen the grid bounds but never block cells.
func NewRouter(cfg Config, comps []circuit.PlacedComponent, pins []circuit.Point) (*Router, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Router{cfg: cfg, grid: BuildGrid(cfg.CellSize, comps, pins)}, nil
}

// Grid returns the obstacle map the router searches over.
func (r *Router) Grid() *Grid { return r.grid }

// RouteNet connects the net's pins and returns the resulting wires.
//
// Nets with fewer than two pins need no wire. Two-pin nets produce a
// single wire. Larger nets are spanned by a minimum spanning tree over
// Manhattan distances and produce one wire per tree edge, so every
// wire individually satisfies the Manhattan polyline invariants.
// Connections the search cannot complete within its expansion budget
// fall back to an L-shaped path and are reported as diagnostics.
func (r *Router) RouteNet(name string, pins []circuit.Point) ([]circuit.Wire, []circuit.Diagnostic) {
	if len(pins) < 2 {
		return nil, nil
	}

	var wires []circuit.Wire
	var diags []circuit.Diagnostic
	connect := func(a, b circuit.Point) {
		path, ok := r.routePair(a, b)
		if !ok {
			path = lPath(a, b, r.cfg.MergeEpsilon)
			diags = append(diags, circuit.Diagnostic{
				Code:   circuit.DiagUnroutableFallback,
				Net:    name,
				Detail: fmt.Sprintf("no path from (%g, %g) to (%g, %g) within budget", a.X, a.Y, b.X, b.Y),
			})
		}
		if len(path) >= 2 {
			wires = append(wires, circuit.Wire{Net: name, Path: path})
		}
	}

	if len(pins) == 2 {
		connect(pins[0], pins[1])
		return wires, diags
	}
	for _, e := range buildMST(pins) {
		connect(pins[e[0]], pins[e[1]])
	}
	return wires, diags
}

// routePair searches the grid between two canvas points. The returned
// path is simplified and snapped to the grid pitch; ok is false when
// the search gave up.
func (r *Router) routePair(a, b circuit.Point) ([]circuit.Point, bool) {
	cells, ok := findPath(r.grid, r.cfg, r.grid.toCell(a), r.grid.toCell(b))
	if !ok {
		return nil, false
	}
	cells = simplifyCells(cells)
	path := make([]circuit.Point, len(cells))
	for i, c := range cells {
		path[i] = r.grid.fromCell(c)
	}
	return path, true
}

// lPath is the no-search fallback: two axis-aligned segments joined at
// (b.X, a.Y), using the exact pin positions. Degenerate corners
// collapse during simplification.
func lPath(a, b circuit.Point, eps float64) []circuit.Point {
	return simplifyPath([]circuit.Point{a, {X: b.X, Y: a.Y}, b}, eps)
}
