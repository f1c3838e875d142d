// Package circuit defines the shared data model for the layout pipeline:
// components, nets, placed geometry, and wires.
//
// Values of these types flow one way through the pipeline. A Netlist is
// produced by the parser and is read-only input to layout; PlacedComponent
// and Wire values are produced once per run and never mutated afterward.
// There is no incremental re-layout.
package circuit

import (
	"errors"
	"fmt"
)

// GroundNode is the canonical name of the ground net. Parsers fold the
// conventional aliases ("0", "gnd" in any case) into it.
const GroundNode = "GND"

var (
	// ErrUnknownReference is returned by [Netlist.Validate] when a net pin
	// references a component that does not exist.
	ErrUnknownReference = errors.New("unknown component reference")

	// ErrEmptyNetlist is returned when a netlist contains no components.
	// This is the only fatal condition in the layout pipeline; everything
	// else degrades to per-component or per-net diagnostics.
	ErrEmptyNetlist = errors.New("empty netlist")
)

// Type is the closed set of component categories the engine understands.
// Raw type tags from netlist sources are folded into this enum once at
// parse time; everything downstream dispatches on Type, never on strings.
type Type int

const (
	// Unknown marks a component whose type tag matched no known category.
	// Unknown components are carried through placement but excluded from
	// pin resolution and routing.
	Unknown Type = iota
	Resistor
	Capacitor
	Inductor
	Diode
	ZenerDiode
	SourceDC
	SourceAC
	SourceCurrent
	Ground
)

// typeNames maps enum values to their canonical tags.
var typeNames = map[Type]string{
	Unknown:       "?",
	Resistor:      "R",
	Capacitor:     "C",
	Inductor:      "L",
	Diode:         "D",
	ZenerDiode:    "ZD",
	SourceDC:      "VDC",
	SourceAC:      "VAC",
	SourceCurrent: "I",
	Ground:        "GND",
}

// typeTags maps raw netlist tags to enum values. Several tags alias the
// same category (V is shorthand for a DC source in the supported format).
var typeTags = map[string]Type{
	"R":   Resistor,
	"C":   Capacitor,
	"L":   Inductor,
	"D":   Diode,
	"ZD":  ZenerDiode,
	"V":   SourceDC,
	"VDC": SourceDC,
	"VAC": SourceAC,
	"I":   SourceCurrent,
	"GND": Ground,
}

// ParseType folds a raw type tag into the closed enum.
// Unrecognized tags return Unknown; the caller keeps the raw tag on the
// Component for diagnostics and labels.
func ParseType(tag string) Type {
	if t, ok := typeTags[tag]; ok {
		return t
	}
	return Unknown
}

// String returns the canonical tag for the type.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "?"
}

// IsSource reports whether the type is a voltage or current source.
func (t Type) IsSource() bool {
	return t == SourceDC || t == SourceAC || t == SourceCurrent
}

// IsGround reports whether the type is a ground symbol.
func (t Type) IsGround() bool { return t == Ground }

// IsPassive reports whether the type participates in topology
// classification as a passive element. Unknown components count as
// passives so that a single bad tag degrades to GENERIC placement
// instead of skewing the chain arithmetic.
func (t Type) IsPassive() bool {
	return !t.IsSource() && !t.IsGround()
}

// Component is one parsed netlist entry. Immutable once parsed.
type Component struct {
	Ref   string   `json:"ref"`             // unique reference designator, e.g. "R1"
	Type  Type     `json:"-"`               // folded category
	Tag   string   `json:"type"`            // raw type tag as written in the source
	Nodes []string `json:"nodes"`           // ordered terminal node names
	Value string   `json:"value,omitempty"` // optional value string, e.g. "10k"
}

// Node returns the node name at terminal index i, or "" if out of range.
func (c Component) Node(i int) string {
	if i < 0 || i >= len(c.Nodes) {
		return ""
	}
	return c.Nodes[i]
}

// PinRef identifies one terminal of one component.
type PinRef struct {
	Ref string `json:"ref"` // component reference
	Pin int    `json:"pin"` // zero-based terminal index
}

// Net is a set of electrically common terminals. The pin order is the
// order terminals were declared in the source, which also fixes the
// routing order for the net's spanning segments.
type Net struct {
	Name string   `json:"name"`
	Pins []PinRef `json:"pins"`
}

// Netlist is the read-only input to the layout engine: the parsed
// components plus the nets derived from their shared node names.
type Netlist struct {
	Components []Component `json:"components"`
	Nets       []Net       `json:"nets"`
}

// Component returns the component with the given reference.
func (n *Netlist) Component(ref string) (Component, bool) {
	for _, c := range n.Components {
		if c.Ref == ref {
			return c, true
		}
	}
	return Component{}, false
}

// Sources returns the components whose type is a source, in declaration order.
func (n *Netlist) Sources() []Component {
	return n.filter(func(c Component) bool { return c.Type.IsSource() })
}

// Passives returns the non-source, non-ground components in declaration order.
func (n *Netlist) Passives() []Component {
	return n.filter(func(c Component) bool { return c.Type.IsPassive() })
}

// Grounds returns the ground components in declaration order.
func (n *Netlist) Grounds() []Component {
	return n.filter(func(c Component) bool { return c.Type.IsGround() })
}

func (n *Netlist) filter(keep func(Component) bool) []Component {
	var out []Component
	for _, c := range n.Components {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks the structural invariants the layout engine relies on:
// at least one component, unique references, and net pins that point at
// existing component terminals.
func (n *Netlist) Validate() error {
	if len(n.Components) == 0 {
		return ErrEmptyNetlist
	}
	seen := make(map[string]bool, len(n.Components))
	for _, c := range n.Components {
		if c.Ref == "" {
			return fmt.Errorf("component with empty reference")
		}
		if seen[c.Ref] {
			return fmt.Errorf("duplicate reference %s", c.Ref)
		}
		seen[c.Ref] = true
	}
	for _, net := range n.Nets {
		for _, p := range net.Pins {
			c, ok := n.Component(p.Ref)
			if !ok {
				return fmt.Errorf("net %s: %w: %s", net.Name, ErrUnknownReference, p.Ref)
			}
			if p.Pin < 0 || p.Pin >= len(c.Nodes) {
				return fmt.Errorf("net %s: pin %d out of range for %s", net.Name, p.Pin, p.Ref)
			}
		}
	}
	return nil
}
