// Package io reads and writes graph snapshots as JSON, TOML or YAML files.
//
// # Overview
//
// A saved graph is a [graph.Snapshot]: the node list with positions, the link
// list with direction and distance mode, and the optional start and end
// markers. The same structure is used by every format:
//
//	{
//	  "nodes": [
//	    {"id": 0, "x": 0, "y": 0},
//	    {"id": 1, "x": 3, "y": 4}
//	  ],
//	  "links": [
//	    {"start": 0, "end": 1, "direction": "bidirectional",
//	     "distance_type": "auto", "distance": 5}
//	  ],
//	  "start": 0,
//	  "end": 1
//	}
//
// Auto distances in a file are informational; they are recomputed from the
// node positions on load. UserDefined distances are kept as written.
//
// # Formats
//
// [FormatFromPath] picks the format from the file extension (.json, .toml,
// .yaml or .yml). [Read] and [Write] work on any reader or writer; [Import]
// and [Export] open the file for you.
//
//	s, err := io.Import("maze.yaml")
//	g, report, err := io.Load("maze.json", graph.PolicyDrop)
//	err = io.Export(g, "maze.toml")
//
// # Integrity
//
// [Load] builds a graph through [graph.FromSnapshot] and therefore applies the
// caller's [graph.Policy] to links that reference missing nodes. Decoding
// errors are always fatal.
package io
