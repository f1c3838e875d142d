package layout

import (
	"fmt"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/symbols"
)

// resolvePins fills the placed component's footprint and absolute pin
// positions from its symbol definition. Every relative offset is
// rotated with the exact integer quarter-turn transforms and then
// translated by the anchor, so pin math never drifts.
func resolvePins(pc *circuit.PlacedComponent, def symbols.TypeDef) {
	pc.Width = float64(def.Width)
	pc.Height = float64(def.Height)
	pc.Pins = make([]circuit.Point, len(def.Pins))
	for i, off := range def.Pins {
		r := off.Rotate(pc.Rotation)
		pc.Pins[i] = circuit.Point{X: pc.X + float64(r.DX), Y: pc.Y + float64(r.DY)}
	}
}

// netEndpoints resolves a net's pin references to absolute positions.
// Endpoints on components without resolved pins are dropped silently,
// since those components already carry an UnknownComponentType
// diagnostic. A pin index beyond the symbol's pin list is dropped with
// a MissingPinDefinition diagnostic instead.
func netEndpoints(net circuit.Net, byRef map[string]int, placed []circuit.PlacedComponent) ([]circuit.Point, []circuit.Diagnostic) {
	var pts []circuit.Point
	var diags []circuit.Diagnostic
	for _, pr := range net.Pins {
		i, ok := byRef[pr.Ref]
		if !ok {
			continue
		}
		pc := placed[i]
		if pc.Pins == nil {
			continue
		}
		if pr.Pin < 0 || pr.Pin >= len(pc.Pins) {
			diags = append(diags, circuit.Diagnostic{
				Code:   circuit.DiagMissingPinDefinition,
				Ref:    pr.Ref,
				Net:    net.Name,
				Detail: fmt.Sprintf("pin %d not defined for symbol %s", pr.Pin, pc.Tag),
			})
			continue
		}
		pts = append(pts, pc.Pins[pr.Pin])
	}
	return pts, diags
}
