package layout

import (
	"errors"
	"testing"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/symbols"
)

// rcNetlist is the canonical RC low-pass: V1 drives R1 into C1.
func rcNetlist() *circuit.Netlist {
	return &circuit.Netlist{
		Components: []circuit.Component{
			{Ref: "V1", Type: circuit.SourceDC, Tag: "VDC", Nodes: []string{"VIN", "GND"}, Value: "5V"},
			{Ref: "R1", Type: circuit.Resistor, Tag: "R", Nodes: []string{"VIN", "VOUT"}, Value: "10k"},
			{Ref: "C1", Type: circuit.Capacitor, Tag: "C", Nodes: []string{"VOUT", "GND"}, Value: "100nF"},
		},
		Nets: []circuit.Net{
			{Name: "VIN", Pins: []circuit.PinRef{{Ref: "V1", Pin: 0}, {Ref: "R1", Pin: 0}}},
			{Name: "GND", Pins: []circuit.PinRef{{Ref: "V1", Pin: 1}, {Ref: "C1", Pin: 1}}},
			{Name: "VOUT", Pins: []circuit.PinRef{{Ref: "R1", Pin: 1}, {Ref: "C1", Pin: 0}}},
		},
	}
}

func parallelNetlist() *circuit.Netlist {
	return &circuit.Netlist{
		Components: []circuit.Component{
			{Ref: "V1", Type: circuit.SourceDC, Tag: "VDC", Nodes: []string{"VIN", "GND"}},
			{Ref: "R1", Type: circuit.Resistor, Tag: "R", Nodes: []string{"VIN", "GND"}},
			{Ref: "R2", Type: circuit.Resistor, Tag: "R", Nodes: []string{"VIN", "GND"}},
			{Ref: "G1", Type: circuit.Ground, Tag: "GND", Nodes: []string{"GND"}},
		},
		Nets: []circuit.Net{
			{Name: "VIN", Pins: []circuit.PinRef{{Ref: "V1", Pin: 0}, {Ref: "R1", Pin: 0}, {Ref: "R2", Pin: 0}}},
			{Name: "GND", Pins: []circuit.PinRef{{Ref: "V1", Pin: 1}, {Ref: "R1", Pin: 1}, {Ref: "R2", Pin: 1}, {Ref: "G1", Pin: 0}}},
		},
	}
}

func TestClassifySeries(t *testing.T) {
	if got := Classify(rcNetlist()); got != Series {
		t.Errorf("Classify = %v, want SERIES", got)
	}

	// Longer chain
	chain := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"VIN", "GND"}},
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"VIN", "N1"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"N1", "N2"}},
		{Ref: "R3", Type: circuit.Resistor, Nodes: []string{"N2", "GND"}},
	}}
	if got := Classify(chain); got != Series {
		t.Errorf("Classify(chain) = %v, want SERIES", got)
	}
}

func TestClassifyParallel(t *testing.T) {
	if got := Classify(parallelNetlist()); got != Parallel {
		t.Errorf("Classify = %v, want PARALLEL", got)
	}

	// Terminal order within a passive does not matter
	swapped := parallelNetlist()
	swapped.Components[2].Nodes = []string{"GND", "VIN"}
	if got := Classify(swapped); got != Parallel {
		t.Errorf("Classify(swapped) = %v, want PARALLEL", got)
	}

	// Passives between two signal nodes
	mid := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"VIN", "GND"}},
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"VIN", "VOUT"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"VIN", "VOUT"}},
	}}
	if got := Classify(mid); got != Parallel {
		t.Errorf("Classify(mid) = %v, want PARALLEL", got)
	}
}

func TestClassifyGeneric(t *testing.T) {
	// No source
	noSource := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"A", "B"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"B", "C"}},
	}}
	if got := Classify(noSource); got != Generic {
		t.Errorf("Classify(no source) = %v, want GENERIC", got)
	}

	// No passives
	noPassive := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"A", "GND"}},
		{Ref: "G1", Type: circuit.Ground, Nodes: []string{"GND"}},
	}}
	if got := Classify(noPassive); got != Generic {
		t.Errorf("Classify(no passives) = %v, want GENERIC", got)
	}

	// Branching topology: neither a chain nor a shared pair
	bridge := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"VIN", "GND"}},
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"VIN", "N1"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"VIN", "N2"}},
		{Ref: "R3", Type: circuit.Resistor, Nodes: []string{"N1", "N2"}},
		{Ref: "R4", Type: circuit.Resistor, Nodes: []string{"N1", "GND"}},
		{Ref: "R5", Type: circuit.Resistor, Nodes: []string{"N2", "GND"}},
	}}
	if got := Classify(bridge); got != Generic {
		t.Errorf("Classify(bridge) = %v, want GENERIC", got)
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	// Permuting declarations never changes the tag
	n := rcNetlist()
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range perms {
		shuffled := &circuit.Netlist{}
		for _, i := range perm {
			shuffled.Components = append(shuffled.Components, n.Components[i])
		}
		if got := Classify(shuffled); got != Series {
			t.Errorf("permutation %v: Classify = %v, want SERIES", perm, got)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.SpacingH != DefaultSpacingH || cfg.SpacingV != DefaultSpacingV || cfg.RailHeight != DefaultRailHeight {
		t.Errorf("spacing = %d/%d/%d", cfg.SpacingH, cfg.SpacingV, cfg.RailHeight)
	}
	// The embedded routing config is validated too
	if cfg.Routing.CellSize == 0 {
		t.Error("routing defaults not applied")
	}

	bad := Config{SpacingH: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, ErrInvalidSpacing) {
		t.Errorf("negative spacing: %v", err)
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	var cfg Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestSeriesPlacement(t *testing.T) {
	n := rcNetlist()
	placed := seriesPlacer{}.place(n, testConfig(t))

	if len(placed) != 3 {
		t.Fatalf("placed = %d components", len(placed))
	}
	want := []struct {
		ref  string
		x, y float64
	}{
		{"V1", 0, 150},
		{"R1", 250, 150},
		{"C1", 500, 150},
	}
	for i, w := range want {
		got := placed[i]
		if got.Ref != w.ref || got.X != w.x || got.Y != w.y {
			t.Errorf("placed[%d] = %s at (%v,%v), want %s at (%v,%v)",
				i, got.Ref, got.X, got.Y, w.ref, w.x, w.y)
		}
		if got.Rotation != circuit.Rot0 {
			t.Errorf("placed[%d] rotation = %v", i, got.Rotation)
		}
	}
}

func TestSeriesPlacementWithGround(t *testing.T) {
	n := rcNetlist()
	n.Components = append(n.Components, circuit.Component{
		Ref: "G1", Type: circuit.Ground, Tag: "GND", Nodes: []string{"GND"},
	})
	placed := seriesPlacer{}.place(n, testConfig(t))

	if len(placed) != 4 {
		t.Fatalf("placed = %d components", len(placed))
	}
	// Ground drops below the chain's last member
	g := placed[3]
	if g.Ref != "G1" || g.X != 500 || g.Y != 350 {
		t.Errorf("ground at (%v,%v)", g.X, g.Y)
	}
}

func TestSeriesChainFollowsConnectivity(t *testing.T) {
	// Declaration order deliberately scrambled: the walk must follow
	// node connectivity, not input order.
	n := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "C9", Type: circuit.Capacitor, Nodes: []string{"N2", "GND"}},
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"VIN", "GND"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"N1", "N2"}},
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"VIN", "N1"}},
	}}
	chain := seriesChain(n.Components[1], n.Passives())

	wantOrder := []string{"R1", "R2", "C9"}
	if len(chain) != len(wantOrder) {
		t.Fatalf("chain = %d members", len(chain))
	}
	for i, ref := range wantOrder {
		if chain[i].Ref != ref {
			t.Errorf("chain[%d] = %s, want %s", i, chain[i].Ref, ref)
		}
	}
}

func TestSeriesChainLeftovers(t *testing.T) {
	// A passive the walk cannot reach keeps its declaration position at
	// the end instead of vanishing.
	source := circuit.Component{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"VIN", "GND"}}
	passives := []circuit.Component{
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"VIN", "GND"}},
		{Ref: "R9", Type: circuit.Resistor, Nodes: []string{"X", "Y"}},
	}
	chain := seriesChain(source, passives)
	if len(chain) != 2 || chain[0].Ref != "R1" || chain[1].Ref != "R9" {
		t.Errorf("chain = %v", chain)
	}
}

func TestParallelPlacement(t *testing.T) {
	placed := parallelPlacer{}.place(parallelNetlist(), testConfig(t))

	if len(placed) != 4 {
		t.Fatalf("placed = %d components", len(placed))
	}
	want := []struct {
		ref  string
		x, y float64
	}{
		{"V1", 0, 150},
		{"R1", 500, 150},
		{"R2", 500, 350},
		{"G1", 750, 250}, // vertical midpoint of the two branches
	}
	for i, w := range want {
		got := placed[i]
		if got.Ref != w.ref || got.X != w.x || got.Y != w.y {
			t.Errorf("placed[%d] = %s at (%v,%v), want %s at (%v,%v)",
				i, got.Ref, got.X, got.Y, w.ref, w.x, w.y)
		}
	}
}

func TestGenericPlacement(t *testing.T) {
	// Four components: ceil(sqrt(6)) = 3 per row
	n := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"A", "B"}},
		{Ref: "R2", Type: circuit.Resistor, Nodes: []string{"B", "C"}},
		{Ref: "R3", Type: circuit.Resistor, Nodes: []string{"C", "D"}},
		{Ref: "R4", Type: circuit.Resistor, Nodes: []string{"D", "A"}},
	}}
	placed := genericPlacer{}.place(n, testConfig(t))

	want := []struct{ x, y float64 }{
		{0, 0}, {250, 0}, {500, 0}, {0, 200},
	}
	if len(placed) != len(want) {
		t.Fatalf("placed = %d components", len(placed))
	}
	for i, w := range want {
		if placed[i].X != w.x || placed[i].Y != w.y {
			t.Errorf("placed[%d] at (%v,%v), want (%v,%v)", i, placed[i].X, placed[i].Y, w.x, w.y)
		}
	}
}

func TestGenericPlacementOrdersByRole(t *testing.T) {
	// Sources lead, grounds trail, regardless of declaration order
	n := &circuit.Netlist{Components: []circuit.Component{
		{Ref: "G1", Type: circuit.Ground, Nodes: []string{"GND"}},
		{Ref: "R1", Type: circuit.Resistor, Nodes: []string{"A", "B"}},
		{Ref: "V1", Type: circuit.SourceDC, Nodes: []string{"A", "GND"}},
	}}
	placed := genericPlacer{}.place(n, testConfig(t))

	wantOrder := []string{"V1", "R1", "G1"}
	for i, ref := range wantOrder {
		if placed[i].Ref != ref {
			t.Errorf("placed[%d] = %s, want %s", i, placed[i].Ref, ref)
		}
	}
}

func TestResolvePins(t *testing.T) {
	lib := symbols.Default()
	def, ok := lib.Lookup(circuit.Resistor)
	if !ok {
		t.Fatal("no resistor definition")
	}

	pc := circuit.PlacedComponent{Ref: "R1", Type: circuit.Resistor, X: 250, Y: 150}
	resolvePins(&pc, def)
	if pc.Width != 80 || pc.Height != 30 {
		t.Errorf("footprint = %vx%v", pc.Width, pc.Height)
	}
	if len(pc.Pins) != 2 {
		t.Fatalf("pins = %v", pc.Pins)
	}
	if pc.Pins[0] != (circuit.Point{X: 210, Y: 150}) || pc.Pins[1] != (circuit.Point{X: 290, Y: 150}) {
		t.Errorf("pins = %v", pc.Pins)
	}

	// Rotation swings the pins around the anchor
	rot := circuit.PlacedComponent{Ref: "R1", Type: circuit.Resistor, X: 250, Y: 150, Rotation: circuit.Rot90}
	resolvePins(&rot, def)
	if rot.Pins[0] != (circuit.Point{X: 250, Y: 110}) || rot.Pins[1] != (circuit.Point{X: 250, Y: 190}) {
		t.Errorf("rotated pins = %v", rot.Pins)
	}
}

func TestEngineSeriesEndToEnd(t *testing.T) {
	eng := NewEngine(symbols.Default())
	res, err := eng.Run(rcNetlist(), Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Topology != Series {
		t.Errorf("topology = %v", res.Topology)
	}
	if len(res.Components) != 3 {
		t.Fatalf("components = %d", len(res.Components))
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}

	for _, w := range res.Wires {
		if err := w.Validate(); err != nil {
			t.Errorf("wire: %v", err)
		}
	}

	// Rail connections are unobstructed and pin-aligned, so they come
	// out as direct 2-point wires.
	byNet := make(map[string][]circuit.Wire)
	for _, w := range res.Wires {
		byNet[w.Net] = append(byNet[w.Net], w)
	}
	for _, net := range []string{"VIN", "VOUT"} {
		wires := byNet[net]
		if len(wires) != 1 {
			t.Fatalf("net %s: wires = %v", net, wires)
		}
		if len(wires[0].Path) != 2 {
			t.Errorf("net %s: path = %v, want direct 2-point", net, wires[0].Path)
		}
	}
	if got := byNet["VIN"][0].Path; got[0] != (circuit.Point{X: 30, Y: 150}) || got[1] != (circuit.Point{X: 210, Y: 150}) {
		t.Errorf("VIN path = %v", got)
	}
	if got := byNet["VOUT"][0].Path; got[0] != (circuit.Point{X: 290, Y: 150}) || got[1] != (circuit.Point{X: 480, Y: 150}) {
		t.Errorf("VOUT path = %v", got)
	}

	// The ground return has to detour around the bodies in between
	gnd := byNet["GND"]
	if len(gnd) != 1 {
		t.Fatalf("GND wires = %v", gnd)
	}
	if first, last := gnd[0].Path[0], gnd[0].Path[len(gnd[0].Path)-1]; first != (circuit.Point{X: -30, Y: 150}) || last != (circuit.Point{X: 520, Y: 150}) {
		t.Errorf("GND endpoints = %v..%v", first, last)
	}
	if gnd[0].Length() <= 550 {
		t.Errorf("GND length = %v, expected a detour beyond the straight 550", gnd[0].Length())
	}
}

func TestEngineParallelEndToEnd(t *testing.T) {
	eng := NewEngine(symbols.Default())
	res, err := eng.Run(parallelNetlist(), Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Topology != Parallel {
		t.Errorf("topology = %v", res.Topology)
	}

	// VIN has 3 pins, GND has 4: spanning trees need k-1 wires each
	counts := make(map[string]int)
	for _, w := range res.Wires {
		if err := w.Validate(); err != nil {
			t.Errorf("wire: %v", err)
		}
		counts[w.Net]++
	}
	if counts["VIN"] != 2 {
		t.Errorf("VIN wires = %d, want 2", counts["VIN"])
	}
	if counts["GND"] != 3 {
		t.Errorf("GND wires = %d, want 3", counts["GND"])
	}
}

func TestEngineUnknownComponentType(t *testing.T) {
	n := &circuit.Netlist{
		Components: []circuit.Component{
			{Ref: "V1", Type: circuit.SourceDC, Tag: "VDC", Nodes: []string{"VIN", "GND"}},
			{Ref: "U1", Type: circuit.Unknown, Tag: "XYZ", Nodes: []string{"VIN", "VOUT"}},
			{Ref: "R1", Type: circuit.Resistor, Tag: "R", Nodes: []string{"VOUT", "GND"}},
		},
		Nets: []circuit.Net{
			{Name: "VIN", Pins: []circuit.PinRef{{Ref: "V1", Pin: 0}, {Ref: "U1", Pin: 0}}},
			{Name: "GND", Pins: []circuit.PinRef{{Ref: "V1", Pin: 1}, {Ref: "R1", Pin: 1}}},
			{Name: "VOUT", Pins: []circuit.PinRef{{Ref: "U1", Pin: 1}, {Ref: "R1", Pin: 0}}},
		},
	}
	eng := NewEngine(symbols.Default())
	res, err := eng.Run(n, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The unknown component degrades, the rest still places
	if len(res.Components) != 3 {
		t.Fatalf("components = %d, want 3", len(res.Components))
	}
	var unknown []circuit.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == circuit.DiagUnknownComponentType {
			unknown = append(unknown, d)
		}
	}
	if len(unknown) != 1 || unknown[0].Ref != "U1" {
		t.Errorf("unknown-type diagnostics = %v", unknown)
	}

	// U1 keeps its anchor but contributes no routing endpoints
	for _, pc := range res.Components {
		if pc.Ref == "U1" {
			if pc.Pins != nil {
				t.Errorf("U1 pins = %v, want none", pc.Pins)
			}
		}
	}
	for _, w := range res.Wires {
		if w.Net != "GND" {
			t.Errorf("unexpected wire on net %s", w.Net)
		}
	}
}

func TestEngineMissingPinDefinition(t *testing.T) {
	lib := symbols.Default()
	lib.Set(circuit.Resistor, symbols.TypeDef{
		Width: 80, Height: 30,
		Pins: []circuit.Offset{{DX: -40}},
	})
	eng := NewEngine(lib)

	res, err := eng.Run(rcNetlist(), Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var missing []circuit.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == circuit.DiagMissingPinDefinition {
			missing = append(missing, d)
		}
	}
	if len(missing) != 1 {
		t.Fatalf("missing-pin diagnostics = %v", missing)
	}
	if missing[0].Ref != "R1" || missing[0].Net != "VOUT" {
		t.Errorf("diagnostic = %+v", missing[0])
	}
}

func TestEngineEmptyNetlist(t *testing.T) {
	eng := NewEngine(symbols.Default())

	if _, err := eng.Run(&circuit.Netlist{}, Config{}); !errors.Is(err, circuit.ErrEmptyNetlist) {
		t.Errorf("empty netlist: %v", err)
	}
	if _, err := eng.Run(nil, Config{}); !errors.Is(err, circuit.ErrEmptyNetlist) {
		t.Errorf("nil netlist: %v", err)
	}
}

func TestEngineDeterministic(t *testing.T) {
	eng := NewEngine(symbols.Default())

	a, err := eng.Run(rcNetlist(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := eng.Run(rcNetlist(), Config{})
	if err != nil {
		t.Fatal(err)
	}

	if a.Topology != b.Topology || len(a.Components) != len(b.Components) || len(a.Wires) != len(b.Wires) {
		t.Fatal("repeated runs disagree")
	}
	for i := range a.Wires {
		if len(a.Wires[i].Path) != len(b.Wires[i].Path) {
			t.Fatalf("wire %d differs", i)
		}
		for j := range a.Wires[i].Path {
			if a.Wires[i].Path[j] != b.Wires[i].Path[j] {
				t.Fatalf("wire %d point %d differs", i, j)
			}
		}
	}
}
