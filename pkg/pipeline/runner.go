package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pathfinder/pkg/cache"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/observability"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/render"
	"github.com/matzehuels/pathfinder/pkg/render/nodelink"
)

// Runner executes solves and renders with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner as long as they do not share a graph
// that is being mutated.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind default expiry when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// GraphHash is the content hash of g's snapshot.
func GraphHash(g *graph.Graph) (string, error) {
	return cache.HashJSON(g.Snapshot())
}

// Solve searches g with the configured algorithm and extracts the path.
// g is only read.
func (r *Runner) Solve(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SolveKey(hash, opts.SolveKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "solve")
			res.RunID = uuid.NewString()
			res.CacheHit = true
			r.Logger.Debug("solve cache hit", "graph", short(hash), "algorithm", res.Algorithm)
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, "solve")
	}

	res, err := r.search(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.GraphHash = hash

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLSolve)); err == nil {
			observability.Cache().OnCacheSet(ctx, "solve", len(data))
		}
	}
	return res, nil
}

func (r *Runner) cachedResult(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (r *Runner) search(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	alg := opts.algorithm.String()
	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, alg, g.NodeCount(), g.LinkCount())

	start := time.Now()
	st, err := pathfind.Run(ctx, g, opts.algorithm, opts.PathfindOptions()...)
	var pr pathfind.PathResult
	if err == nil {
		pr, err = pathfind.Extract(g, st)
	}
	elapsed := time.Since(start)

	iterations := 0
	if st != nil {
		iterations = st.Iterations
	}
	hooks.OnSolveComplete(ctx, alg, pr.Outcome.String(), iterations, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", alg, err)
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Algorithm:  opts.algorithm,
		Outcome:    pr.Outcome,
		Path:       pr.Path,
		Distance:   pr.Distance,
		Iterations: st.Iterations,
		Visited:    st.VisitedCount(),
		Nodes:      g.NodeCount(),
		Links:      g.LinkCount(),
		Duration:   elapsed,
	}
	r.Logger.Info("solved",
		"algorithm", alg,
		"outcome", res.Outcome,
		"distance", res.Distance,
		"iterations", res.Iterations,
		"duration", elapsed)
	return res, nil
}

// Render draws g in the requested format. With ShowPath the graph is solved
// first (through the cache) and the path is highlighted; a graph without
// start or end is drawn without a path.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts RenderOptions) (*Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, err
	}
	art := &Artifact{Format: opts.Format, ContentType: render.ContentType(opts.Format)}

	if opts.ShowPath {
		res, err := r.Solve(ctx, g, opts.Solve)
		switch {
		case errors.Is(err, pathfind.ErrMissingEndpoints):
		case err != nil:
			return nil, err
		default:
			art.Path = res.Path
		}
	}

	key := r.Keyer.RenderKey(hash, opts.RenderKeyOpts())
	if !opts.Solve.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			art.Data, art.CacheHit = data, true
			return art, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	start := time.Now()
	data, err := nodelink.Render(ctx, g, opts.Format, nodelink.Options{Path: art.Path, Distances: opts.Distances})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	art.Data = data
	r.Logger.Info("rendered", "format", opts.Format, "bytes", len(data), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLRender)); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return art, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
