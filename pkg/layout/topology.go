package layout

import "github.com/Naivedya-sahu/lamp-v2/pkg/circuit"

// Topology labels the circuit shapes the placer knows dedicated
// arrangements for. Everything else falls back to Generic.
type Topology string

const (
	Series   Topology = "SERIES"
	Parallel Topology = "PARALLEL"
	Generic  Topology = "GENERIC"
)

// Classify tags the netlist by connectivity shape.
//
// Components partition into sources, passives and grounds. The decision
// works on a degree histogram over non-ground node names, counting every
// component terminal that touches each node:
//
//   - SERIES: one open chain. Every non-ground node joins exactly two
//     terminals, and there are exactly len(passives)+len(sources)-1 such
//     junction nodes. The source junction is itself degree-2, which is
//     why the junction count includes the sources.
//   - PARALLEL: every passive spans the identical unordered node pair.
//   - GENERIC: everything else, and always when there are no sources or
//     no passives.
//
// The histogram is insensitive to declaration order, so permuting the
// netlist never changes the tag.
func Classify(n *circuit.Netlist) Topology {
	sources := n.Sources()
	passives := n.Passives()
	if len(sources) == 0 || len(passives) == 0 {
		return Generic
	}

	degrees := make(map[string]int)
	for _, c := range n.Components {
		for _, node := range c.Nodes {
			if node == circuit.GroundNode {
				continue
			}
			degrees[node]++
		}
	}
	junctions := 0
	for _, d := range degrees {
		if d == 2 {
			junctions++
		}
	}
	if junctions == len(degrees) && junctions == len(passives)+len(sources)-1 {
		return Series
	}

	if allShareNodePair(passives) {
		return Parallel
	}
	return Generic
}

// allShareNodePair reports whether every passive connects the same
// unordered pair of nodes.
func allShareNodePair(passives []circuit.Component) bool {
	if len(passives) < 2 {
		return false
	}
	a1, a2, ok := nodePair(passives[0])
	if !ok {
		return false
	}
	for _, p := range passives[1:] {
		b1, b2, ok := nodePair(p)
		if !ok {
			return false
		}
		if !(b1 == a1 && b2 == a2) && !(b1 == a2 && b2 == a1) {
			return false
		}
	}
	return true
}

func nodePair(c circuit.Component) (string, string, bool) {
	if len(c.Nodes) != 2 {
		return "", "", false
	}
	return c.Nodes[0], c.Nodes[1], true
}
