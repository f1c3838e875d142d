package route

import (
	"math"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// simplifyCells drops interior waypoints that are collinear with the
// last kept waypoint and the next one, leaving only endpoints and
// direction changes. Running it on an already simplified path is a
// no-op.
func simplifyCells(path []cell) []cell {
	if len(path) <= 2 {
		return path
	}
	out := make([]cell, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		prev := out[len(out)-1]
		cur, next := path[i], path[i+1]
		if (prev.X == cur.X && cur.X == next.X) || (prev.Y == cur.Y && cur.Y == next.Y) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, path[len(path)-1])
}

// simplifyPath collapses consecutive waypoints that coincide within eps
// and then drops interior collinear waypoints, in canvas coordinates.
// The result satisfies the wire polyline invariants for any Manhattan
// input.
func simplifyPath(path []circuit.Point, eps float64) []circuit.Point {
	if len(path) == 0 {
		return nil
	}
	dedup := make([]circuit.Point, 0, len(path))
	dedup = append(dedup, path[0])
	for _, p := range path[1:] {
		last := dedup[len(dedup)-1]
		if math.Abs(p.X-last.X) < eps && math.Abs(p.Y-last.Y) < eps {
			continue
		}
		dedup = append(dedup, p)
	}
	if len(dedup) <= 2 {
		return dedup
	}
	out := make([]circuit.Point, 0, len(dedup))
	out = append(out, dedup[0])
	for i := 1; i < len(dedup)-1; i++ {
		prev := out[len(out)-1]
		cur, next := dedup[i], dedup[i+1]
		if (prev.X == cur.X && cur.X == next.X) || (prev.Y == cur.Y && cur.Y == next.Y) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, dedup[len(dedup)-1])
}
