// Package netlist parses the SPICE-like card format into the circuit
// data model.
//
// Each card is one line:
//
//	COMP_TYPE REF NODE1 NODE2 [VALUE]
//
// Ground symbols take a single node (GND G1 0). Lines starting with "*"
// are comments and lines starting with "." are directives; both are
// skipped. Node aliases "0" and "gnd" (any case) normalize to "GND".
// Nets are derived from shared node names in declaration order.
//
// # Example
//
//	* RC low-pass
//	VDC V1 VIN GND 5V
//	R R1 VIN VOUT 10k
//	C C1 VOUT GND 100nF
//	GND G1 GND
package netlist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

// netlistFile is the participle grammar root: a sequence of cards
// separated by (possibly blank) lines.
type netlistFile struct {
	Cards []card `parser:"(@@ | EOL)*"`
}

// card is one non-blank line split into whitespace-delimited fields.
// The terminator is optional so the final line may omit its newline.
type card struct {
	Pos    lexer.Position
	Fields []string `parser:"@Field+ EOL?"`
}

var parser = participle.MustBuild[netlistFile](
	participle.Lexer(netlistLexer),
	participle.Elide("Whitespace"),
)

// Parse reads netlist cards from r and returns the assembled netlist.
func Parse(r io.Reader) (*circuit.Netlist, error) {
	file, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return convert(file)
}

// ParseString parses netlist source from a string.
func ParseString(src string) (*circuit.Netlist, error) {
	file, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return convert(file)
}

// ParseFile parses the netlist file at path.
func ParseFile(path string) (*circuit.Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	nl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nl, nil
}

// convert turns raw cards into components and derives the nets.
func convert(file *netlistFile) (*circuit.Netlist, error) {
	nl := &circuit.Netlist{}
	seen := make(map[string]bool)

	for _, c := range file.Cards {
		first := c.Fields[0]
		if strings.HasPrefix(first, "*") || strings.HasPrefix(first, ".") {
			continue
		}

		comp, err := parseCard(c)
		if err != nil {
			return nil, err
		}
		if seen[comp.Ref] {
			return nil, fmt.Errorf("line %d: duplicate reference %s", c.Pos.Line, comp.Ref)
		}
		seen[comp.Ref] = true
		nl.Components = append(nl.Components, comp)
	}

	nl.Nets = buildNets(nl.Components)
	return nl, nil
}

// parseCard validates field arity for the card's type and assembles the
// component. Ground cards carry one node; every other card carries two
// nodes plus an optional value.
func parseCard(c card) (circuit.Component, error) {
	tag := strings.ToUpper(c.Fields[0])
	t := circuit.ParseType(tag)

	var want, max int
	if t == circuit.Ground {
		want, max = 3, 3
	} else {
		want, max = 4, 5
	}
	if len(c.Fields) < want {
		return circuit.Component{}, fmt.Errorf("line %d: %s card needs %d fields, got %d",
			c.Pos.Line, tag, want, len(c.Fields))
	}
	if len(c.Fields) > max {
		return circuit.Component{}, fmt.Errorf("line %d: %s card has trailing fields", c.Pos.Line, tag)
	}

	comp := circuit.Component{
		Ref:  c.Fields[1],
		Type: t,
		Tag:  tag,
	}
	for _, node := range c.Fields[2:want] {
		comp.Nodes = append(comp.Nodes, normalizeNode(node))
	}
	if len(c.Fields) > want {
		comp.Value = c.Fields[want]
	}
	return comp, nil
}

// normalizeNode folds the ground aliases into the canonical ground net.
func normalizeNode(node string) string {
	if node == "0" || strings.EqualFold(node, "gnd") {
		return circuit.GroundNode
	}
	return node
}

// buildNets groups component terminals by node name. Net order is the
// order node names first appear in the component list, so parsing is
// deterministic and routing order follows the source.
func buildNets(comps []circuit.Component) []circuit.Net {
	index := make(map[string]int)
	var nets []circuit.Net

	for _, comp := range comps {
		for pin, node := range comp.Nodes {
			i, ok := index[node]
			if !ok {
				i = len(nets)
				index[node] = i
				nets = append(nets, circuit.Net{Name: node})
			}
			nets[i].Pins = append(nets[i].Pins, circuit.PinRef{Ref: comp.Ref, Pin: pin})
		}
	}
	return nets
}
