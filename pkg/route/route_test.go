package route

import (
	"testing"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

func mustRouter(t *testing.T, comps []circuit.PlacedComponent, pins []circuit.Point) *Router {
	t.Helper()
	r, err := NewRouter(Config{}, comps, pins)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return r
}

func validateWires(t *testing.T, wires []circuit.Wire) {
	t.Helper()
	for _, w := range wires {
		if err := w.Validate(); err != nil {
			t.Errorf("invalid wire: %v (path %v)", err, w.Path)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.CellSize != DefaultCellSize {
		t.Errorf("CellSize = %d", cfg.CellSize)
	}
	if cfg.ObstaclePenalty != DefaultObstaclePenalty || cfg.TurnPenalty != DefaultTurnPenalty {
		t.Errorf("penalties = %v, %v", cfg.ObstaclePenalty, cfg.TurnPenalty)
	}
	if cfg.ExpansionFactor != DefaultExpansionFactor || cfg.MergeEpsilon != DefaultMergeEpsilon {
		t.Errorf("factor = %d, epsilon = %v", cfg.ExpansionFactor, cfg.MergeEpsilon)
	}

	// Validation is idempotent: a second pass changes nothing
	prev := cfg
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if cfg != prev {
		t.Errorf("second pass changed config: %+v != %+v", cfg, prev)
	}

	bad := Config{CellSize: -1}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative cell size should fail")
	}
	bad = Config{ObstaclePenalty: -5}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("negative penalty should fail")
	}
}

func TestGridRasterization(t *testing.T) {
	comps := []circuit.PlacedComponent{
		{Ref: "R1", X: 250, Y: 150, Width: 80, Height: 30},
	}
	g := BuildGrid(10, comps, nil)

	// Body spans x 210..290, y 135..165: cells (21..29, 13..16)
	for _, c := range []cell{{21, 13}, {29, 16}, {25, 15}} {
		if !g.Blocked(c) {
			t.Errorf("cell %+v should be blocked", c)
		}
	}
	for _, c := range []cell{{20, 13}, {30, 13}, {25, 12}, {25, 17}} {
		if g.Blocked(c) {
			t.Errorf("cell %+v should be free", c)
		}
	}
	if g.BlockedCount() != 9*4 {
		t.Errorf("BlockedCount = %d, want %d", g.BlockedCount(), 9*4)
	}
	if g.CellCount() <= 0 {
		t.Error("CellCount should be positive")
	}

	// Zero-size footprints occupy no cells
	empty := BuildGrid(10, []circuit.PlacedComponent{{Ref: "U1", X: 50, Y: 50}}, nil)
	if empty.BlockedCount() != 0 {
		t.Errorf("zero-size component blocked %d cells", empty.BlockedCount())
	}
}

func TestGridCellMapping(t *testing.T) {
	g := BuildGrid(10, nil, []circuit.Point{{X: -100, Y: -100}, {X: 100, Y: 100}})

	// Truncation toward zero, matching the rest of the coordinate math
	cases := []struct {
		p    circuit.Point
		want cell
	}{
		{circuit.Point{X: 0, Y: 0}, cell{0, 0}},
		{circuit.Point{X: 215, Y: 158}, cell{21, 15}},
		{circuit.Point{X: -25, Y: -25}, cell{-2, -2}},
	}
	for _, c := range cases {
		if got := g.toCell(c.p); got != c.want {
			t.Errorf("toCell(%+v) = %+v, want %+v", c.p, got, c.want)
		}
	}
	if got := g.fromCell(cell{21, 15}); got.X != 210 || got.Y != 150 {
		t.Errorf("fromCell = %+v", got)
	}
}

func TestRouteStraightLine(t *testing.T) {
	r := mustRouter(t, nil, []circuit.Point{{X: 0, Y: 0}, {X: 100, Y: 0}})

	wires, diags := r.RouteNet("A", []circuit.Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(wires) != 1 {
		t.Fatalf("wires = %d, want 1", len(wires))
	}
	validateWires(t, wires)

	// Unobstructed and axis-aligned: a direct 2-point path
	w := wires[0]
	if len(w.Path) != 2 {
		t.Errorf("path = %v, want 2 points", w.Path)
	}
	if w.Path[0] != (circuit.Point{X: 0, Y: 0}) || w.Path[1] != (circuit.Point{X: 100, Y: 0}) {
		t.Errorf("endpoints = %v", w.Path)
	}
	if w.Length() != 100 {
		t.Errorf("Length = %v, want 100", w.Length())
	}
}

func TestRouteOptimalWithTurn(t *testing.T) {
	a, b := circuit.Point{X: 0, Y: 0}, circuit.Point{X: 50, Y: 30}
	r := mustRouter(t, nil, []circuit.Point{a, b})

	wires, _ := r.RouteNet("A", []circuit.Point{a, b})
	if len(wires) != 1 {
		t.Fatalf("wires = %d, want 1", len(wires))
	}
	validateWires(t, wires)

	// No obstacles: path length equals the Manhattan distance
	if got, want := wires[0].Length(), circuit.ManhattanDist(a, b); got != want {
		t.Errorf("Length = %v, want %v", got, want)
	}
	if first, last := wires[0].Path[0], wires[0].Path[len(wires[0].Path)-1]; first != a || last != b {
		t.Errorf("endpoints = %v..%v", first, last)
	}
}

func TestRouteDetoursAroundObstacles(t *testing.T) {
	// Two bodies stacked into a wall across the straight line between
	// the pins: x 80..120, y -200..200.
	comps := []circuit.PlacedComponent{
		{Ref: "U1", X: 100, Y: -100, Width: 40, Height: 200},
		{Ref: "U2", X: 100, Y: 100, Width: 40, Height: 200},
	}
	a, b := circuit.Point{X: 0, Y: 0}, circuit.Point{X: 200, Y: 0}
	r := mustRouter(t, comps, []circuit.Point{a, b})

	wires, diags := r.RouteNet("A", []circuit.Point{a, b})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(wires) != 1 {
		t.Fatalf("wires = %d, want 1", len(wires))
	}
	validateWires(t, wires)
	w := wires[0]

	// The detour is longer than the straight crossing
	if w.Length() <= circuit.ManhattanDist(a, b) {
		t.Errorf("Length = %v, expected a detour longer than %v", w.Length(), circuit.ManhattanDist(a, b))
	}

	// No waypoint sits inside a blocked cell
	for _, p := range w.Path {
		if r.Grid().Blocked(r.Grid().toCell(p)) {
			t.Errorf("waypoint %+v inside an obstacle", p)
		}
	}

	// Going around the wall needs exactly two turns; the turn penalty
	// keeps the search from staircasing.
	if len(w.Path) != 4 {
		t.Errorf("path = %v, want 4 points (2 turns)", w.Path)
	}
}

// parseObstacleMap builds router fixtures from an ASCII grid. Each rune
// is one cell (DefaultCellSize units square, rows go down): 'X' places an
// 8x8 body centered in the cell so rasterization blocks exactly that
// cell, and a lowercase letter marks a route endpoint at the cell center.
func parseObstacleMap(t *testing.T, rows []string) ([]circuit.PlacedComponent, map[byte]circuit.Point) {
	t.Helper()
	var comps []circuit.PlacedComponent
	points := make(map[byte]circuit.Point)
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			cx := float64(x*DefaultCellSize) + float64(DefaultCellSize)/2
			cy := float64(y*DefaultCellSize) + float64(DefaultCellSize)/2
			switch ch := row[x]; {
			case ch == 'X':
				comps = append(comps, circuit.PlacedComponent{
					X:      cx,
					Y:      cy,
					Width:  float64(DefaultCellSize - 2),
					Height: float64(DefaultCellSize - 2),
				})
			case ch >= 'a' && ch <= 'z':
				if _, dup := points[ch]; dup {
					t.Fatalf("duplicate endpoint %q in map", ch)
				}
				points[ch] = circuit.Point{X: cx, Y: cy}
			}
		}
	}
	return comps, points
}

func TestRouteObstacleMaps(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []circuit.Point // exact simplified waypoints a -> b
	}{
		{
			name: "open field",
			rows: []string{
				"a.........b",
			},
			want: []circuit.Point{{X: 5, Y: 5}, {X: 105, Y: 5}},
		},
		{
			// The border closes the arena, so the only cheap route
			// dips through the gap under the wall segment.
			name: "wall with gap",
			rows: []string{
				"XXXXXXXXXXXXX",
				"Xa....X....bX",
				"X.....X.....X",
				"X...........X",
				"XXXXXXXXXXXXX",
			},
			want: []circuit.Point{{X: 15, Y: 15}, {X: 15, Y: 35}, {X: 115, Y: 35}, {X: 115, Y: 15}},
		},
		{
			// Obstacles are soft: an endpoint walled in on all sides
			// is still reached, straight through the cheapest cell.
			name: "walled-in endpoint",
			rows: []string{
				".XXX.",
				"aXbX.",
				".XXX.",
			},
			want: []circuit.Point{{X: 5, Y: 15}, {X: 25, Y: 15}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps, points := parseObstacleMap(t, tt.rows)
			a, b := points['a'], points['b']
			r := mustRouter(t, comps, []circuit.Point{a, b})

			if got := r.Grid().BlockedCount(); got != len(comps) {
				t.Fatalf("BlockedCount = %d, want one cell per body (%d)", got, len(comps))
			}

			wires, diags := r.RouteNet("N", []circuit.Point{a, b})
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if len(wires) != 1 {
				t.Fatalf("wires = %d, want 1", len(wires))
			}
			validateWires(t, wires)

			got := wires[0].Path
			if len(got) != len(tt.want) {
				t.Fatalf("path = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("path = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRouteSamePinCell(t *testing.T) {
	a := circuit.Point{X: 42, Y: 42}
	r := mustRouter(t, nil, []circuit.Point{a})

	// Pins in the same grid cell need no wire
	wires, diags := r.RouteNet("A", []circuit.Point{a, {X: 44, Y: 41}})
	if len(wires) != 0 || len(diags) != 0 {
		t.Errorf("wires = %v, diags = %v", wires, diags)
	}
}

func TestRouteTooFewPins(t *testing.T) {
	r := mustRouter(t, nil, []circuit.Point{{X: 0, Y: 0}})
	if wires, diags := r.RouteNet("A", nil); wires != nil || diags != nil {
		t.Error("empty net should be a no-op")
	}
	if wires, diags := r.RouteNet("A", []circuit.Point{{X: 0, Y: 0}}); wires != nil || diags != nil {
		t.Error("single-pin net should be a no-op")
	}
}

func TestRouteFallbackOutsideGrid(t *testing.T) {
	// The grid was built without knowledge of the far pin, so the
	// search drains its bounded open set and the connection degrades to
	// an L-shaped path with a diagnostic.
	r := mustRouter(t, nil, []circuit.Point{{X: 0, Y: 0}})

	a, b := circuit.Point{X: 0, Y: 0}, circuit.Point{X: 5000, Y: 3000}
	wires, diags := r.RouteNet("A", []circuit.Point{a, b})
	if len(diags) != 1 || diags[0].Code != circuit.DiagUnroutableFallback {
		t.Fatalf("diags = %v, want one UnroutableFallback", diags)
	}
	if diags[0].Net != "A" {
		t.Errorf("diagnostic net = %q", diags[0].Net)
	}
	if len(wires) != 1 {
		t.Fatalf("wires = %d, want 1", len(wires))
	}
	validateWires(t, wires)

	// L path through (b.X, a.Y), with the exact pin coordinates
	want := []circuit.Point{a, {X: b.X, Y: a.Y}, b}
	if len(wires[0].Path) != 3 {
		t.Fatalf("fallback path = %v", wires[0].Path)
	}
	for i, p := range want {
		if wires[0].Path[i] != p {
			t.Errorf("fallback point %d = %+v, want %+v", i, wires[0].Path[i], p)
		}
	}
}

func TestRouteFallbackDegenerate(t *testing.T) {
	// Axis-aligned fallback collapses the corner instead of emitting a
	// duplicate waypoint.
	r := mustRouter(t, nil, []circuit.Point{{X: 0, Y: 0}})

	wires, diags := r.RouteNet("A", []circuit.Point{{X: 0, Y: 0}, {X: 0, Y: 4000}})
	if len(diags) != 1 {
		t.Fatalf("diags = %v", diags)
	}
	if len(wires) != 1 || len(wires[0].Path) != 2 {
		t.Fatalf("wires = %v", wires)
	}
	validateWires(t, wires)
}

func TestRouteMultiPinNet(t *testing.T) {
	pins := []circuit.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 0, Y: 100},
		{X: 100, Y: 100},
	}
	r := mustRouter(t, nil, pins)

	wires, diags := r.RouteNet("N", pins)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	// One wire per spanning-tree edge
	if len(wires) != len(pins)-1 {
		t.Fatalf("wires = %d, want %d", len(wires), len(pins)-1)
	}
	validateWires(t, wires)

	// Every pin appears as a wire endpoint
	covered := make(map[circuit.Point]bool)
	for _, w := range wires {
		covered[w.Path[0]] = true
		covered[w.Path[len(w.Path)-1]] = true
	}
	for _, p := range pins {
		if !covered[p] {
			t.Errorf("pin %+v not visited by any wire", p)
		}
	}
}

func TestBuildMST(t *testing.T) {
	pins := []circuit.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 0, Y: 100},
		{X: 100, Y: 100},
	}
	edges := buildMST(pins)
	if len(edges) != 3 {
		t.Fatalf("edges = %v, want 3", edges)
	}

	// Every pin joins the tree exactly once
	seen := map[int]bool{0: true}
	for _, e := range edges {
		if !seen[e[0]] {
			t.Errorf("edge %v starts outside the tree", e)
		}
		if seen[e[1]] {
			t.Errorf("edge %v revisits pin %d", e, e[1])
		}
		seen[e[1]] = true
	}
	for i := range pins {
		if !seen[i] {
			t.Errorf("pin %d never joined", i)
		}
	}

	if buildMST(pins[:1]) != nil {
		t.Error("single pin should have no edges")
	}
	if buildMST(nil) != nil {
		t.Error("no pins should have no edges")
	}
}

func TestSimplifyCells(t *testing.T) {
	raw := []cell{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {3, 2}}
	want := []cell{{0, 0}, {2, 0}, {2, 2}, {3, 2}}

	got := simplifyCells(raw)
	if len(got) != len(want) {
		t.Fatalf("simplified = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("simplified = %v, want %v", got, want)
		}
	}

	// Idempotent: simplifying the result changes nothing
	again := simplifyCells(got)
	if len(again) != len(got) {
		t.Fatalf("second pass = %v", again)
	}
	for i := range got {
		if again[i] != got[i] {
			t.Fatalf("second pass = %v, want %v", again, got)
		}
	}

	// Short paths pass through untouched
	two := []cell{{0, 0}, {5, 0}}
	if got := simplifyCells(two); len(got) != 2 {
		t.Errorf("two-point path = %v", got)
	}
}

func TestSimplifyPath(t *testing.T) {
	raw := []circuit.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0},
		{X: 20, Y: 0.05}, // coincides with the previous point within epsilon
		{X: 20, Y: 10}, {X: 20, Y: 20},
	}
	got := simplifyPath(raw, 0.1)
	want := []circuit.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}}
	if len(got) != len(want) {
		t.Fatalf("simplified = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("simplified = %v, want %v", got, want)
		}
	}

	// Idempotent
	again := simplifyPath(got, 0.1)
	for i := range got {
		if again[i] != got[i] {
			t.Fatalf("second pass = %v, want %v", again, got)
		}
	}

	if simplifyPath(nil, 0.1) != nil {
		t.Error("nil path should stay nil")
	}
}

func TestFindPathBudget(t *testing.T) {
	g := BuildGrid(10, nil, []circuit.Point{{X: 0, Y: 0}, {X: 100, Y: 100}})
	cfg := Config{}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	// Reachable goal inside bounds
	if _, ok := findPath(g, cfg, cell{0, 0}, cell{10, 10}); !ok {
		t.Error("in-bounds path should be found")
	}

	// Goal outside the padded bounds can never be reached
	if _, ok := findPath(g, cfg, cell{0, 0}, cell{500, 500}); ok {
		t.Error("out-of-bounds goal should fail")
	}

	// Start == goal short-circuits
	path, ok := findPath(g, cfg, cell{3, 3}, cell{3, 3})
	if !ok || len(path) != 1 {
		t.Errorf("trivial path = %v, %v", path, ok)
	}
}
