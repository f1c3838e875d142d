package circuit

import "fmt"

// DiagCode identifies a class of non-fatal layout degradation.
type DiagCode string

const (
	// DiagUnknownComponentType marks a component whose type tag has no
	// symbol definition. The component is placed as a zero-size anchor
	// and excluded from routing.
	DiagUnknownComponentType DiagCode = "UNKNOWN_COMPONENT_TYPE"

	// DiagMissingPinDefinition marks a component whose symbol defines
	// fewer pins than its netlist connections use. The missing pins are
	// skipped.
	DiagMissingPinDefinition DiagCode = "MISSING_PIN_DEFINITION"

	// DiagUnroutableFallback marks a net connection that exhausted its
	// search budget and was drawn as an L-shaped path with no obstacle
	// avoidance.
	DiagUnroutableFallback DiagCode = "UNROUTABLE_FALLBACK"
)

// Diagnostic records a degradation the layout engine worked around
// instead of failing. Diagnostics are data, not errors: a layout with
// diagnostics is still a complete, renderable layout.
type Diagnostic struct {
	Code   DiagCode `json:"code"`
	Ref    string   `json:"ref,omitempty"`
	Net    string   `json:"net,omitempty"`
	Detail string   `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Ref != "" && d.Detail != "":
		return fmt.Sprintf("%s %s: %s", d.Code, d.Ref, d.Detail)
	case d.Ref != "":
		return fmt.Sprintf("%s %s", d.Code, d.Ref)
	case d.Net != "" && d.Detail != "":
		return fmt.Sprintf("%s net %s: %s", d.Code, d.Net, d.Detail)
	case d.Net != "":
		return fmt.Sprintf("%s net %s", d.Code, d.Net)
	default:
		return string(d.Code)
	}
}
