// Package lio provides JSON import and export for layout results.
//
// # Overview
//
// A layout result is the complete output of the layout engine: topology
// classification, placed components with resolved pins, routed wires, and
// any diagnostics. Serializing it decouples the pipeline stages:
//
//   - `lamp layout` writes a .layout.json that `lamp render` and
//     `lamp plot` consume without re-running placement and routing
//   - The serve API returns the same document, so stored runs can be
//     re-rendered later
//   - Round-trip preservation: export, re-import, and render identically
//
// # JSON Format
//
//	{
//	  "topology": "SERIES",
//	  "components": [
//	    {"ref": "R1", "type": "R", "value": "1k", "x": 250, "y": 150,
//	     "rotation": 0, "width": 80, "height": 30,
//	     "pins": [{"x": 210, "y": 150}, {"x": 290, "y": 150}]}
//	  ],
//	  "wires": [
//	    {"net": "VIN", "path": [{"x": 30, "y": 150}, {"x": 210, "y": 150}]}
//	  ],
//	  "diagnostics": []
//	}
//
// # Import
//
// Use [ImportJSON] to read a result from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate what the engine guarantees of
// its own output: unique component references, valid rotations, and wire
// paths that satisfy the orthogonal polyline invariants. Errors are
// wrapped with context naming the offending component or wire.
//
// # Export
//
// Use [ExportJSON] to write a result to a file, or [WriteJSON] to write
// to any io.Writer. Output is indented for diffability.
package lio
