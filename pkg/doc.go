// Package pkg provides the core libraries for lamp schematic layout and
// plotting.
//
// # Overview
//
// Lamp turns circuit netlists into schematic drawings: parsed cards
// become components and nets, the topology decides the placement
// strategy, wires route on an integer grid, and the geometry renders to
// SVG previews and pen plotter programs.
//
// # Architecture
//
// The typical data flow through lamp:
//
//	Netlist source (.cir)
//	         ↓
//	    [netlist] package (cards → components and nets)
//	         ↓
//	    [layout] package (topology classification, placement, pin
//	             resolution; routing via [route])
//	         ↓
//	    [render] package (SVG previews, pen programs, DOT graphs)
//	         ↓
//	    SVG/plot/JSON/DOT output
//
// # Quick Start
//
// Parse a netlist and render an SVG schematic:
//
//	import (
//	    "github.com/Naivedya-sahu/lamp-v2/pkg/layout"
//	    "github.com/Naivedya-sahu/lamp-v2/pkg/netlist"
//	    "github.com/Naivedya-sahu/lamp-v2/pkg/render/svg"
//	)
//
//	// 1. Parse the netlist
//	n, _ := netlist.ParseFile("rc.cir")
//
//	// 2. Compute the layout
//	engine := layout.NewEngine(nil)
//	res, _ := engine.Run(n, layout.Config{})
//
//	// 3. Render to SVG
//	data := svg.Render(res)
//
// # Main Packages
//
// ## Domain Logic
//
// [circuit] - The shared vocabulary: components, nets, placement
// geometry, routed wires, and diagnostics. Every other package speaks
// these types.
//
// [netlist] - Line-oriented card parser built on participle. Cards carry
// a type tag, a reference, node names, and an optional value.
//
// [symbols] - Symbol footprints and exact integer pin offsets, with
// optional TOML overlays for custom symbol geometry.
//
// [layout] - Topology classification (series, parallel, generic),
// rail-based placement, and pin resolution. Produces the layout result
// the renderers consume.
//
// [route] - Orthogonal wire routing: an A* grid search per net pair,
// ordered by a minimum spanning tree over the net's terminals, with
// collinear simplification.
//
// ## Rendering
//
// [render/svg] - Standalone SVG schematic previews.
//
// [render/plot] - Pen plotter programs scaled and centered for a target
// device.
//
// [render/dot] - Graphviz connectivity graphs, placement-free.
//
// ## Infrastructure
//
// [pipeline] - Complete orchestration (parse → layout → render) used by
// the CLI and the HTTP server, with content-hash caching at the layout
// and render boundaries.
//
// [cache] - Cache backends: sharded JSON files for the CLI, Redis for
// serve mode, and a null backend for --no-cache.
//
// [store] - Run persistence for serve mode: in-memory by default,
// MongoDB when configured.
//
// [server] - The HTTP API over chi: POST /api/layout plus run retrieval
// and artifact endpoints.
//
// [lio] - Layout JSON import/export, so 'lamp layout' output feeds
// 'lamp render' without recomputing.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API,
// plus input validation helpers.
//
// [observability] - Pluggable hooks for cache, pipeline, and server
// events. No-op by default.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/route/...    # Specific package
//	go test -run Example       # Examples only
//
// [circuit]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/circuit
// [netlist]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/netlist
// [symbols]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/symbols
// [layout]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/layout
// [route]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/route
// [render]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/render/svg
// [render/plot]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/render/plot
// [render/dot]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/cache
// [store]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/store
// [server]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/server
// [lio]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/lio
// [errors]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/errors
// [observability]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/Naivedya-sahu/lamp-v2/pkg/buildinfo
package pkg
