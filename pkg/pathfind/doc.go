// Package pathfind computes shortest paths over a [graph.Graph] with Dijkstra
// or A*.
//
// # Overview
//
// A run starts from the graph's start marker and searches toward its end
// marker. The engine never mutates the graph; every piece of per-run scratch
// (visited flag, score, predecessor) lives in a [State] that [Run] creates,
// fills and returns. Re-running after the graph changed is always safe.
//
//	st, err := pathfind.Dijkstra(ctx, g)
//	if errors.Is(err, pathfind.ErrMissingEndpoints) {
//	    // ask the user to pick a start and an end node
//	}
//	res, err := pathfind.Extract(g, st)
//	if res.Outcome == pathfind.Solved {
//	    fmt.Println(res.Path, res.Distance)
//	}
//
// # Algorithm
//
// Both algorithms share one loop:
//
//  1. Reset state; fail with [ErrMissingEndpoints] unless start and end exist.
//  2. Give the start node score 0 and make it current.
//  3. Relax every traversable link of current: candidate = score(current) +
//     distance. A strictly smaller candidate replaces the neighbour's score
//     and predecessor.
//  4. Mark current visited.
//  5. Select the unvisited node with the smallest key as the next current.
//     Ties go to the node inserted into the graph first.
//  6. Stop when nothing reachable is left.
//
// For Dijkstra the key is the score. For A* the score stays the path cost
// from the start and the key adds the Euclidean distance from the node to the
// end, so a neighbour's key is score(current) + distance +
// heuristic(neighbour, end). The run stops as soon as the end node is
// selected in step 5.
//
// Blocking links and unidirectional links walked backwards are never
// traversed (see [graph.Traversable]).
//
// # A* Termination
//
// Stopping when the end node is selected, not when it is first reached, keeps
// A* optimal whenever the heuristic never overestimates, which holds for
// Auto distances. [WithEarlyExit] restores the legacy behaviour: the
// heuristic is added into the score itself, so it accumulates along a path,
// and the run stops as soon as a relaxation touches the end node. It is
// faster on dense graphs but may report a longer path.
//
// # Results
//
// [Extract] follows predecessors back from the end node and sums the link
// distances along the way. A chain that does not lead back to the start is
// reported as [ErrInconsistentPath]. An unreachable end node is a normal
// outcome ([Unreachable]), not an error.
//
// # Concurrency
//
// Runs are synchronous. Because scratch state is per run, concurrent runs over
// the same graph are safe as long as nothing mutates it. The context passed to
// [Run] is checked once per iteration.
package pathfind
