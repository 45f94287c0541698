// Package pkg provides the core libraries for Pathfinder, a shortest-path
// engine for graphs of positioned nodes.
//
// # Overview
//
// A Pathfinder graph is a set of nodes placed on a 2D canvas and joined by
// links. A link is one-way or two-way, and its distance is either the
// Euclidean length between its endpoints, a user defined value, or blocked.
// Dijkstra or A* then finds the cheapest route from the start node to the end
// node. The pkg directory is organized into these areas:
//
//  1. [geom], [graph] - The model: points, nodes, links and snapshots
//  2. [pathfind] - Search: Dijkstra, A*, path extraction and an editing session
//  3. [pattern], [io] - Building graphs: generators and JSON/TOML/YAML files
//  4. [pipeline], [cache], [store] - Orchestration, result caching, persistence
//  5. [render] - Drawing graphs through Graphviz
//  6. [server], [client] - The HTTP API and its client
//
// # Architecture
//
// The typical data flow:
//
//	graph file / store / pattern generator
//	         ↓
//	    [graph] package (nodes, links, start and end markers)
//	         ↓
//	    [pathfind] package (search state, then the extracted path)
//	         ↓
//	    [pipeline] package (cached Result or rendered Artifact)
//	         ↓
//	    CLI output, JSON response, SVG/PNG/PDF/DOT
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pathfinder/pkg/geom"
//	    "github.com/matzehuels/pathfinder/pkg/graph"
//	    "github.com/matzehuels/pathfinder/pkg/pathfind"
//	)
//
//	g := graph.New()
//	a := g.AddNode(geom.Pt(0, 0))
//	b := g.AddNode(geom.Pt(30, 40))
//	_ = g.AddLink(a, b, graph.Bidirectional)
//	g.SetStart(a)
//	g.SetEnd(b)
//
//	st, _ := pathfind.AStar(context.Background(), g)
//	res, _ := pathfind.Extract(g, st)
//	fmt.Println(res.Path, res.Distance) // [0 1] 50
//
// # Main Packages
//
// [geom] - Points and the Euclidean distance every Auto link uses.
//
// [graph] - The mutable graph. Links live in an arena indexed per node, so
// neighbour iteration is proportional to the degree. [graph.Snapshot] is the
// persisted form; [graph.FromSnapshot] rebuilds a graph under a policy for
// dangling references.
//
// [pathfind] - [pathfind.Dijkstra] and [pathfind.AStar] write a per-run
// [pathfind.State] and never touch the graph. [pathfind.Extract] turns a
// solved state into a [pathfind.PathResult]. [pathfind.Session] is the
// editing facade with connect and move intents.
//
// [pattern] - Grid and concentric-ring generators sized to a canvas.
//
// [io] - Snapshot files in JSON, TOML and YAML.
//
// [pipeline] - [pipeline.Runner] solves and renders with caching and
// observability hooks. Used by the CLI and the HTTP server alike.
//
// [cache] - File, Redis and null caches plus cache key derivation.
//
// [store] - Named graph persistence: memory and file in the base package,
// Redis, MongoDB and PostgreSQL in subpackages.
//
// [render] - Output formats and SVG conversion; [render/nodelink] draws the
// graph at its node positions with the path highlighted.
//
// [server] - chi based HTTP API over the pipeline and a store.
//
// [client] - Go client for the HTTP API.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for solver, cache, store and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip Graphviz rendering
//
// Backend tests run against real servers when PATHFINDER_TEST_REDIS_URL,
// PATHFINDER_TEST_MONGO_URL or PATHFINDER_TEST_POSTGRES_URL is set.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/geom
// [graph]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/graph
// [pathfind]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/pathfind
// [pattern]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/pattern
// [io]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/server
// [client]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/client
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathfinder/pkg/observability
package pkg
