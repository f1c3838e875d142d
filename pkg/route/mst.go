package route

import (
	"math"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// buildMST spans the pins with Prim's algorithm over Manhattan
// distances, starting from pin 0. Edges come back in visit order as
// index pairs (tree vertex, new vertex). A set of k pins always yields
// exactly k-1 edges. Pin counts per net are small, so the quadratic
// scan beats heap bookkeeping.
func buildMST(pins []circuit.Point) [][2]int {
	n := len(pins)
	if n < 2 {
		return nil
	}
	visited := make([]bool, n)
	bestDist := make([]float64, n)
	bestFrom := make([]int, n)
	visited[0] = true
	for j := 1; j < n; j++ {
		bestDist[j] = circuit.ManhattanDist(pins[0], pins[j])
	}

	edges := make([][2]int, 0, n-1)
	for len(edges) < n-1 {
		next, nd := -1, math.MaxFloat64
		for j := 0; j < n; j++ {
			if !visited[j] && bestDist[j] < nd {
				next, nd = j, bestDist[j]
			}
		}
		if next < 0 {
			break
		}
		visited[next] = true
		edges = append(edges, [2]int{bestFrom[next], next})
		for k := 0; k < n; k++ {
			if !visited[k] {
				if d := circuit.ManhattanDist(pins[next], pins[k]); d < bestDist[k] {
					bestDist[k] = d
					bestFrom[k] = next
				}
			}
		}
	}
	return edges
}
