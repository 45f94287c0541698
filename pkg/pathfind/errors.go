package pathfind

import "errors"

var (
	// ErrMissingEndpoints is returned by [Run] when the graph has no start or
	// no end node. Only the state reset has happened at that point.
	ErrMissingEndpoints = errors.New("start and end nodes must be set")

	// ErrInconsistentPath is returned by [Extract] when the predecessor chain
	// does not lead back to the start node. It indicates corrupted or
	// mismatched search state.
	ErrInconsistentPath = errors.New("inconsistent path")

	// ErrIterationLimit is returned by [Run] when [WithMaxIterations] is set
	// and the search needed more iterations.
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrInvalidHeuristic is returned by [Run] when an A* heuristic yields
	// NaN or a negative estimate.
	ErrInvalidHeuristic = errors.New("invalid heuristic")

	// ErrUnknownAlgorithm is returned by [ParseAlgorithm] and [Run] for an
	// unsupported algorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)
