package layout

import (
	"math"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// placer arranges the components of one topology class. Implementations
// assign anchors and rotations only; footprints and absolute pins are
// resolved afterward. Placement is a pure function of its inputs.
type placer interface {
	place(n *circuit.Netlist, cfg Config) []circuit.PlacedComponent
}

// placers dispatches topology tags to their strategies.
var placers = map[Topology]placer{
	Series:   seriesPlacer{},
	Parallel: parallelPlacer{},
	Generic:  genericPlacer{},
}

// placerFor returns the strategy for a tag, falling back to the generic
// grid for tags it has never heard of.
func placerFor(t Topology) placer {
	if p, ok := placers[t]; ok {
		return p
	}
	return genericPlacer{}
}

func newPlaced(c circuit.Component, x, y int) circuit.PlacedComponent {
	return circuit.PlacedComponent{
		Ref:      c.Ref,
		Type:     c.Type,
		Tag:      c.Tag,
		Value:    c.Value,
		X:        float64(x),
		Y:        float64(y),
		Rotation: circuit.Rot0,
	}
}

// seriesPlacer lays the chain along a horizontal rail, the way a
// textbook draws an RC filter:
//
//	[V]---[R1]---[R2]---[C1]
//	                      |
//	                    [GND]
//
// The first source anchors the rail at x=0 and each chain member steps
// right by SpacingH. Any additional sources continue the rail, and
// grounds drop one SpacingV below its end.
type seriesPlacer struct{}

func (seriesPlacer) place(n *circuit.Netlist, cfg Config) []circuit.PlacedComponent {
	sources := n.Sources()
	passives := n.Passives()
	grounds := n.Grounds()

	placed := make([]circuit.PlacedComponent, 0, len(n.Components))
	x, y := 0, cfg.RailHeight
	if len(sources) > 0 {
		placed = append(placed, newPlaced(sources[0], x, y))
		for _, comp := range seriesChain(sources[0], passives) {
			x += cfg.SpacingH
			placed = append(placed, newPlaced(comp, x, y))
		}
		for _, comp := range sources[1:] {
			x += cfg.SpacingH
			placed = append(placed, newPlaced(comp, x, y))
		}
	}
	gx, gy := x, y+cfg.SpacingV
	for _, comp := range grounds {
		placed = append(placed, newPlaced(comp, gx, gy))
		gx += cfg.SpacingH
	}
	return placed
}

// seriesChain orders the passives by walking node connectivity from the
// source's driving terminal. Each step takes the first remaining
// passive, in declaration order, that touches the current node, then
// continues from that component's other terminal. Passives the walk
// never reaches are appended in declaration order, so the result always
// contains every passive exactly once.
func seriesChain(source circuit.Component, passives []circuit.Component) []circuit.Component {
	chain := make([]circuit.Component, 0, len(passives))
	remaining := append([]circuit.Component(nil), passives...)
	node := drivingNode(source)

	for len(remaining) > 0 {
		found := -1
		for i, comp := range remaining {
			if len(comp.Nodes) < 2 {
				continue
			}
			if comp.Nodes[0] == node {
				found, node = i, comp.Nodes[1]
				break
			}
			if comp.Nodes[1] == node {
				found, node = i, comp.Nodes[0]
				break
			}
		}
		if found < 0 {
			chain = append(chain, remaining...)
			break
		}
		chain = append(chain, remaining[found])
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return chain
}

// drivingNode returns the node the chain leaves the source from: the
// first non-ground terminal, or the first terminal when all of them are
// grounded.
func drivingNode(source circuit.Component) string {
	for _, n := range source.Nodes {
		if n != circuit.GroundNode {
			return n
		}
	}
	if len(source.Nodes) > 0 {
		return source.Nodes[0]
	}
	return ""
}

// parallelPlacer stacks the shared-rail branches vertically:
//
//	[V]---+---[R1]---+
//	      |          |
//	      +---[R2]---+---[GND]
//
// The first source sits at x=0 on the rail, every passive at
// x=2*SpacingH stepping down by SpacingV, and the first ground one
// SpacingH right of the stack at its vertical midpoint.
type parallelPlacer struct{}

func (parallelPlacer) place(n *circuit.Netlist, cfg Config) []circuit.PlacedComponent {
	sources := n.Sources()
	passives := n.Passives()
	grounds := n.Grounds()

	placed := make([]circuit.PlacedComponent, 0, len(n.Components))
	xPassives := 2 * cfg.SpacingH
	y := cfg.RailHeight
	for i, comp := range sources {
		placed = append(placed, newPlaced(comp, 0, y+i*cfg.SpacingV))
	}
	for i, comp := range passives {
		placed = append(placed, newPlaced(comp, xPassives, y+i*cfg.SpacingV))
	}
	gx := xPassives + cfg.SpacingH
	gy := y + (len(passives)-1)*cfg.SpacingV/2
	for _, comp := range grounds {
		placed = append(placed, newPlaced(comp, gx, gy))
		gx += cfg.SpacingH
	}
	return placed
}

// genericPlacer is the fallback: a row-major grid, sources first, then
// passives, then grounds, with ceil(sqrt(1.5*n)) components per row so
// the grid leans wider than tall.
type genericPlacer struct{}

func (genericPlacer) place(n *circuit.Netlist, cfg Config) []circuit.PlacedComponent {
	ordered := make([]circuit.Component, 0, len(n.Components))
	ordered = append(ordered, n.Sources()...)
	ordered = append(ordered, n.Passives()...)
	ordered = append(ordered, n.Grounds()...)

	cols := int(math.Ceil(math.Sqrt(1.5 * float64(len(ordered)))))
	if cols < 1 {
		cols = 1
	}
	placed := make([]circuit.PlacedComponent, 0, len(ordered))
	for i, comp := range ordered {
		x := (i % cols) * cfg.SpacingH
		y := (i / cols) * cfg.SpacingV
		placed = append(placed, newPlaced(comp, x, y))
	}
	return placed
}
