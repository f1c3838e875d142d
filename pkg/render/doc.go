// Package render provides the output adapters for layout results.
//
// # Overview
//
// A layout result is pure geometry: placed components, resolved pins, and
// routed wires in abstract canvas units. The subpackages turn that
// geometry into concrete outputs:
//
//   - [svg]: browser-viewable schematic previews
//   - [plot]: pen programs for the reMarkable 2 e-paper plotter
//   - [dot]: Graphviz connectivity graphs, independent of placement
//
// # SVG Previews
//
// The [svg] subpackage draws component bodies, reference and value
// labels, pin dots, and wire polylines into a self-contained SVG
// document. It is the default `lamp render` output and the serve API's
// preview format.
//
//	data := svg.Render(result, svg.WithPadding(80))
//
// # Pen Programs
//
// The [plot] subpackage fits the layout onto the device screen and emits
// the plotter's line protocol, one command per line:
//
//	pen down 500 500
//	pen move 900 500
//	pen up
//
// Fitting scales the drawing to the screen minus margins, capped so small
// circuits are not blown up past recognition, and centers it.
//
// # Connectivity Graphs
//
// The [dot] subpackage renders the netlist as a node-link graph for
// checking connectivity independent of placement, rasterized in-process
// via Graphviz.
//
//	d := dot.ToDOT(netlist, dot.Options{})
//	svg, err := dot.RenderSVG(d)
//
// [svg]: github.com/Naivedya-sahu/lamp-v2/pkg/render/svg
// [plot]: github.com/Naivedya-sahu/lamp-v2/pkg/render/plot
// [dot]: github.com/Naivedya-sahu/lamp-v2/pkg/render/dot
package render
