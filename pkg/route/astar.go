package route

// moveDirs are the 4-connected neighbor offsets. Paths are Manhattan by
// construction; diagonals are never generated.
var moveDirs = [4]cell{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

type searchNode struct {
	f   float64
	seq int // insertion order, breaks f ties deterministically
	c   cell
}

type nodeHeap []searchNode

func nodeLess(a, b searchNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (h *nodeHeap) push(e searchNode) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !nodeLess((*h)[i], (*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *nodeHeap) pop() searchNode {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && nodeLess((*h)[right], (*h)[left]) {
			smallest = right
		}
		if !nodeLess((*h)[smallest], (*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

func heuristic(a, b cell) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// findPath runs A* from start to goal over the grid.
//
// The cost model: each step costs 1, entering a blocked cell adds the
// obstacle penalty, and changing direction relative to the step that
// reached the current cell adds the turn penalty. Blocked cells are
// expensive but passable, so a pin buried inside its own component's
// footprint is still reachable.
//
// The search expands at most ExpansionFactor times the grid's cell
// count before giving up; ok is false when the budget runs out or the
// open set drains without reaching the goal.
func findPath(g *Grid, cfg Config, start, goal cell) ([]cell, bool) {
	if start == goal {
		return []cell{start}, true
	}
	budget := cfg.ExpansionFactor * g.CellCount()

	open := make(nodeHeap, 0, 64)
	seq := 0
	open.push(searchNode{f: heuristic(start, goal), seq: seq, c: start})
	gScore := map[cell]float64{start: 0}
	cameFrom := make(map[cell]cell)
	closed := make(map[cell]struct{})
	expanded := 0

	for len(open) > 0 {
		cur := open.pop().c
		if cur == goal {
			return tracePath(cameFrom, goal), true
		}
		if _, done := closed[cur]; done {
			continue
		}
		closed[cur] = struct{}{}
		if expanded++; expanded > budget {
			return nil, false
		}

		prev, hasPrev := cameFrom[cur]
		for _, d := range moveDirs {
			next := cell{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !g.inBounds(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			cost := 1.0
			if g.Blocked(next) {
				cost += cfg.ObstaclePenalty
			}
			if hasPrev && (cur.X-prev.X != d.X || cur.Y-prev.Y != d.Y) {
				cost += cfg.TurnPenalty
			}
			tentative := gScore[cur] + cost
			if old, seen := gScore[next]; !seen || tentative < old {
				gScore[next] = tentative
				cameFrom[next] = cur
				seq++
				open.push(searchNode{f: tentative + heuristic(next, goal), seq: seq, c: next})
			}
		}
	}
	return nil, false
}

// tracePath walks the parent links back from end and returns the path
// in start-to-end order.
func tracePath(cameFrom map[cell]cell, end cell) []cell {
	path := []cell{end}
	for {
		prev, ok := cameFrom[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
