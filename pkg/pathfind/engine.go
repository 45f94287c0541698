package pathfind

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

// Heuristic estimates the remaining distance between two positions.
type Heuristic func(from, to geom.Point) float64

// Options tunes a run. The zero value is valid.
type Options struct {
	// EarlyExit switches A* to legacy scoring: the heuristic of every node
	// is folded into its score, and the run stops at the first relaxation
	// that reaches the end node instead of waiting for it to be selected.
	EarlyExit bool

	// MaxIterations caps the number of selected nodes. Zero means no cap.
	MaxIterations int

	// Heuristic replaces the Euclidean distance used by A*. It must return
	// a non-negative number.
	Heuristic Heuristic
}

// Option configures [Run].
type Option func(*Options)

// WithEarlyExit enables legacy A*: candidate = score(current) + distance +
// heuristic(neighbour, end), stopping on the first relaxation of the end node.
// Dijkstra ignores it.
func WithEarlyExit() Option {
	return func(o *Options) { o.EarlyExit = true }
}

// WithMaxIterations aborts a run with [ErrIterationLimit] after n iterations.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithHeuristic sets the A* heuristic. A run fails with [ErrInvalidHeuristic]
// as soon as h returns NaN or a negative value.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// Dijkstra runs Dijkstra's algorithm over g. See [Run].
func Dijkstra(ctx context.Context, g *graph.Graph, opts ...Option) (*State, error) {
	return Run(ctx, g, AlgorithmDijkstra, opts...)
}

// AStar runs A* over g. See [Run].
func AStar(ctx context.Context, g *graph.Graph, opts ...Option) (*State, error) {
	return Run(ctx, g, AlgorithmAStar, opts...)
}

// Run searches g from its start node to its end node and returns the filled
// state. The graph is only read.
//
// A returned error leaves the state as far as the run got: reset only for
// [ErrMissingEndpoints], partially explored for context cancellation,
// [ErrIterationLimit] and [ErrInvalidHeuristic]. The Outcome of such a state
// is Pending.
func Run(ctx context.Context, g *graph.Graph, alg Algorithm, opts ...Option) (*State, error) {
	if alg != AlgorithmDijkstra && alg != AlgorithmAStar {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
	o := Options{Heuristic: geom.Distance}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Heuristic == nil {
		o.Heuristic = geom.Distance
	}

	st := NewState(g)
	st.Algorithm = alg
	if !st.Ready() {
		return st, ErrMissingEndpoints
	}

	r := &runner{g: g, st: st, alg: alg, opts: o, goal: g.Position(st.End)}
	if err := r.run(ctx); err != nil {
		return st, err
	}

	if math.IsInf(st.entries[st.End].Score, 1) {
		st.Outcome = Unreachable
	} else {
		st.Outcome = Solved
	}
	return st, nil
}

type runner struct {
	g    *graph.Graph
	st   *State
	alg  Algorithm
	opts Options
	goal geom.Point
	open frontier
}

func (r *runner) heuristic(id int) (float64, error) {
	h := r.opts.Heuristic(r.g.Position(id), r.goal)
	if math.IsNaN(h) || h < 0 {
		return 0, fmt.Errorf("%w: %v for node %d", ErrInvalidHeuristic, h, id)
	}
	return h, nil
}

// step returns the score and selection key id gets when reached with path
// cost g. Dijkstra selects on the score. A* selects on score plus heuristic,
// except in legacy mode where the heuristic is part of the score itself.
func (r *runner) step(id int, g float64) (score, key float64, err error) {
	if r.alg != AlgorithmAStar {
		return g, g, nil
	}
	h, err := r.heuristic(id)
	if err != nil {
		return 0, 0, err
	}
	if r.opts.EarlyExit {
		return g + h, g + h, nil
	}
	return g, g + h, nil
}

func (r *runner) enqueue(id int, e *Entry) {
	r.open.push(item{id: id, key: e.Key, rank: r.st.rank[id]})
}

func (r *runner) run(ctx context.Context) error {
	st := r.st
	start := st.entries[st.Start]
	start.Score = 0
	start.Key = 0
	if r.alg == AlgorithmAStar && !r.opts.EarlyExit {
		h, err := r.heuristic(st.Start)
		if err != nil {
			return err
		}
		start.Key = h
	}
	r.enqueue(st.Start, start)

	for r.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		it := r.open.pop()
		cur := st.entries[it.id]
		if cur.Visited || it.key != cur.Key {
			continue
		}
		if r.opts.MaxIterations > 0 && st.Iterations >= r.opts.MaxIterations {
			return fmt.Errorf("%w: %d", ErrIterationLimit, r.opts.MaxIterations)
		}
		st.Iterations++

		if r.alg == AlgorithmAStar && !r.opts.EarlyExit && it.id == st.End {
			cur.Visited = true
			return nil
		}

		reached, err := r.relax(it.id, cur)
		cur.Visited = true
		if err != nil || reached {
			return err
		}
	}
	return nil
}

// relax updates every neighbour reachable from id. It reports whether the
// run should stop because early exit is on and the end node was touched.
func (r *runner) relax(id int, cur *Entry) (bool, error) {
	st := r.st
	reached := false
	for l, nb := range r.g.Neighbors(id) {
		if !graph.Traversable(l, id) {
			continue
		}
		e := st.entries[nb]
		candidate, key, err := r.step(nb, cur.Score+l.Distance)
		if err != nil {
			return false, err
		}
		if candidate < e.Score {
			e.Score = candidate
			e.Previous = id
			e.Key = key
			if !e.Visited {
				r.enqueue(nb, e)
			}
		}
		if r.alg == AlgorithmAStar && r.opts.EarlyExit && nb == st.End {
			reached = true
		}
	}
	return reached, nil
}
