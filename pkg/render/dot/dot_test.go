package dot

import (
	"strings"
	"testing"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
)

func sampleNetlist() *circuit.Netlist {
	return &circuit.Netlist{
		Components: []circuit.Component{
			{Ref: "V1", Type: circuit.SourceDC, Tag: "VDC", Nodes: []string{"n1", circuit.GroundNode}, Value: "5"},
			{Ref: "R1", Type: circuit.Resistor, Tag: "R", Nodes: []string{"n1", circuit.GroundNode}, Value: "1k"},
			{Ref: "GND1", Type: circuit.Ground, Tag: "GND", Nodes: []string{circuit.GroundNode}},
		},
		Nets: []circuit.Net{
			{Name: "n1", Pins: []circuit.PinRef{{Ref: "V1", Pin: 0}, {Ref: "R1", Pin: 0}}},
			{Name: circuit.GroundNode, Pins: []circuit.PinRef{{Ref: "V1", Pin: 1}, {Ref: "R1", Pin: 1}, {Ref: "GND1", Pin: 0}}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleNetlist(), Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if strings.Contains(dot, "digraph") {
		t.Error("ToDOT() connectivity graph must be undirected")
	}
	if !strings.Contains(dot, `"V1"`) {
		t.Error("ToDOT() output missing node V1")
	}
	if !strings.Contains(dot, `"R1"`) {
		t.Error("ToDOT() output missing node R1")
	}
	if !strings.Contains(dot, `"V1" -- "R1" [label="n1"]`) {
		t.Error("ToDOT() output missing labelled net edge")
	}
}

func TestToDOT_GroundHub(t *testing.T) {
	dot := ToDOT(sampleNetlist(), Options{})

	if !strings.Contains(dot, `"GND" [shape=invtriangle, fillcolor=lightgrey]`) {
		t.Error("ToDOT() missing styled ground hub node")
	}
	if !strings.Contains(dot, `"V1" -- "GND"`) {
		t.Error("ToDOT() missing V1 ground edge")
	}
	if !strings.Contains(dot, `"R1" -- "GND"`) {
		t.Error("ToDOT() missing R1 ground edge")
	}
	// The ground symbol folds into the hub rather than appearing twice.
	if strings.Contains(dot, `"GND1"`) {
		t.Error("ToDOT() should fold ground symbol components into the hub")
	}
}

func TestToDOT_NoGround(t *testing.T) {
	n := &circuit.Netlist{
		Components: []circuit.Component{
			{Ref: "R1", Type: circuit.Resistor, Tag: "R", Nodes: []string{"a", "b"}},
			{Ref: "R2", Type: circuit.Resistor, Tag: "R", Nodes: []string{"b", "a"}},
		},
		Nets: []circuit.Net{
			{Name: "a", Pins: []circuit.PinRef{{Ref: "R1", Pin: 0}, {Ref: "R2", Pin: 1}}},
			{Name: "b", Pins: []circuit.PinRef{{Ref: "R1", Pin: 1}, {Ref: "R2", Pin: 0}}},
		},
	}

	dot := ToDOT(n, Options{})

	if strings.Contains(dot, "invtriangle") {
		t.Error("ToDOT() should not emit a ground hub without a ground net")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleNetlist(), Options{Detailed: true})

	if !strings.Contains(dot, "R1\\nR 1k") {
		t.Errorf("ToDOT() detailed output missing tag and value: %s", dot)
	}
	if !strings.Contains(dot, "V1\\nVDC 5") {
		t.Errorf("ToDOT() detailed output missing source label: %s", dot)
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	c := circuit.Component{Ref: "R1", Tag: "R", Value: "1k"}
	label := fmtLabel(c, false)

	if label != "R1" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "R1")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	c := circuit.Component{Ref: "R1", Tag: "R", Value: "1k"}
	label := fmtLabel(c, true)

	if !strings.HasPrefix(label, "R1\n") {
		t.Errorf("fmtLabel() detailed should start with ref: %q", label)
	}
	if !strings.Contains(label, "R 1k") {
		t.Errorf("fmtLabel() detailed missing tag and value: %q", label)
	}

	noValue := circuit.Component{Ref: "D1", Tag: "D"}
	if got := fmtLabel(noValue, true); got != "D1\nD" {
		t.Errorf("fmtLabel() without value = %q, want %q", got, "D1\nD")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	// Simple DOT that should render
	dot := `graph G { a -- b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	// Invalid DOT syntax
	dot := `not valid DOT {{{`
	_, err := RenderSVG(dot)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderSVG_Netlist(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleNetlist(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	for _, want := range []string{"V1", "R1", "GND"} {
		if !strings.Contains(string(svg), want) {
			t.Errorf("RenderSVG() output missing %q", want)
		}
	}
}
