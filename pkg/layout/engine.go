// Package layout turns a parsed netlist into placed components and
// routed wires.
//
// The pipeline is strictly sequential: classify the topology, place
// components with the strategy for that topology, resolve absolute pin
// positions, then route each net over a grid rasterized from the placed
// bodies. No stage mutates the output of an earlier one, and nothing is
// re-laid-out incrementally. Recoverable problems (unknown component
// types, missing pin definitions, unroutable connections) degrade to
// diagnostics on the result; the only fatal input is an empty netlist.
package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Naivedya-sahu/lamp-v2/pkg/circuit"
	"github.com/Naivedya-sahu/lamp-v2/pkg/route"
	"github.com/Naivedya-sahu/lamp-v2/pkg/symbols"
)

// Engine runs the layout pipeline. The zero value is not usable; build
// one with NewEngine or set both fields.
type Engine struct {
	Library *symbols.Library
	Logger  *log.Logger
}

// NewEngine returns an engine over the given symbol library, logging
// through the default logger until Logger is replaced.
func NewEngine(lib *symbols.Library) *Engine {
	return &Engine{Library: lib, Logger: log.Default()}
}

// Result is the complete layout of one netlist. All slices are in
// deterministic order: components in placement order, wires in net
// declaration order, diagnostics in the order the pipeline found them.
type Result struct {
	Topology    Topology                  `json:"topology"`
	Components  []circuit.PlacedComponent `json:"components"`
	Wires       []circuit.Wire            `json:"wires"`
	Diagnostics []circuit.Diagnostic      `json:"diagnostics,omitempty"`
}

// Run lays out the netlist. It returns circuit.ErrEmptyNetlist when
// there is nothing to place; every other degradation is reported in
// Result.Diagnostics rather than as an error.
func (e *Engine) Run(n *circuit.Netlist, cfg Config) (*Result, error) {
	if n == nil {
		return nil, circuit.ErrEmptyNetlist
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("validate netlist: %w", err)
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	topo := Classify(n)
	logger.Debug("classified topology", "topology", topo, "components", len(n.Components), "nets", len(n.Nets))

	placed := placerFor(topo).place(n, cfg)

	var diags []circuit.Diagnostic
	byRef := make(map[string]int, len(placed))
	for i := range placed {
		byRef[placed[i].Ref] = i
		def, ok := e.Library.Lookup(placed[i].Type)
		if !ok {
			diags = append(diags, circuit.Diagnostic{
				Code:   circuit.DiagUnknownComponentType,
				Ref:    placed[i].Ref,
				Detail: fmt.Sprintf("no symbol definition for type %q", placed[i].Tag),
			})
			continue
		}
		resolvePins(&placed[i], def)
	}

	// Resolve every net's endpoints up front: the grid must cover all
	// of them before the first route is searched.
	endpoints := make([][]circuit.Point, len(n.Nets))
	var all []circuit.Point
	for i, net := range n.Nets {
		pts, pinDiags := netEndpoints(net, byRef, placed)
		diags = append(diags, pinDiags...)
		endpoints[i] = pts
		all = append(all, pts...)
	}

	router, err := route.NewRouter(cfg.Routing, placed, all)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	logger.Debug("grid built", "cells", router.Grid().CellCount(), "blocked", router.Grid().BlockedCount())

	var wires []circuit.Wire
	for i, net := range n.Nets {
		if len(endpoints[i]) < 2 {
			continue
		}
		netWires, netDiags := router.RouteNet(net.Name, endpoints[i])
		wires = append(wires, netWires...)
		diags = append(diags, netDiags...)
	}
	logger.Debug("routing done", "wires", len(wires), "diagnostics", len(diags))

	return &Result{
		Topology:    topo,
		Components:  placed,
		Wires:       wires,
		Diagnostics: diags,
	}, nil
}
