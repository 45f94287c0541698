package pipeline

import (
	"context"
	"errors"
	"io"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathfinder/pkg/cache"
	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/observability"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/render"
)

// memCache is an in-memory cache.Cache that counts calls.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func quiet() *log.Logger { return log.New(io.Discard) }

// triangle builds 0-(3)-1-(4)-2 with a direct 0-2 link of user distance 10.
func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(3, 0))
	c := g.AddNode(geom.Pt(3, 4))
	for _, l := range []struct {
		s, e int
		opts []graph.LinkOption
	}{
		{a, b, nil},
		{b, c, nil},
		{a, c, []graph.LinkOption{graph.WithUserDistance(10)}},
	} {
		if err := g.AddLink(l.s, l.e, graph.Bidirectional, l.opts...); err != nil {
			t.Fatal(err)
		}
	}
	g.SetStart(a)
	g.SetEnd(c)
	return g
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Algorithm != DefaultAlgorithm {
		t.Errorf("Algorithm = %q, want %q", opts.Algorithm, DefaultAlgorithm)
	}

	opts = Options{Algorithm: "A*"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Algorithm != "astar" {
		t.Errorf("Algorithm = %q, want normalized astar", opts.Algorithm)
	}

	bad := Options{Algorithm: "bfs"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, pathfind.ErrUnknownAlgorithm) {
		t.Errorf("err = %v, want ErrUnknownAlgorithm", err)
	}

	neg := Options{MaxIterations: -1}
	if err := neg.ValidateAndSetDefaults(); err == nil {
		t.Error("negative max_iterations should fail")
	}
}

func TestRenderOptionsValidateAndSetDefaults(t *testing.T) {
	opts := RenderOptions{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Format != render.FormatSVG {
		t.Errorf("Format = %q, want svg", opts.Format)
	}
	if opts.Solve.Algorithm != DefaultAlgorithm {
		t.Errorf("Solve.Algorithm = %q", opts.Solve.Algorithm)
	}

	bad := RenderOptions{Format: "gif"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, render.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestRenderKeyOptsIncludesSolveOnlyWithPath(t *testing.T) {
	opts := RenderOptions{Format: "dot"}
	_ = opts.ValidateAndSetDefaults()
	if opts.RenderKeyOpts().Solve != nil {
		t.Error("solve options keyed without ShowPath")
	}
	opts.ShowPath = true
	if k := opts.RenderKeyOpts(); k.Solve == nil || k.Solve.Algorithm != DefaultAlgorithm {
		t.Errorf("RenderKeyOpts() = %+v", k)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSolve(t *testing.T) {
	for _, alg := range pathfind.Algorithms {
		t.Run(alg, func(t *testing.T) {
			r := NewRunner(nil, nil, quiet())
			res, err := r.Solve(context.Background(), triangle(t), Options{Algorithm: alg})
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if !res.Solved() {
				t.Fatalf("Outcome = %v, want solved", res.Outcome)
			}
			if !slices.Equal(res.Path, []int{0, 1, 2}) {
				t.Errorf("Path = %v, want [0 1 2]", res.Path)
			}
			if math.Abs(res.Distance-7) > 1e-9 {
				t.Errorf("Distance = %v, want 7", res.Distance)
			}
			if res.RunID == "" || res.GraphHash == "" {
				t.Error("missing run id or graph hash")
			}
			if res.Nodes != 3 || res.Links != 3 {
				t.Errorf("Nodes/Links = %d/%d, want 3/3", res.Nodes, res.Links)
			}
			if res.CacheHit {
				t.Error("first solve reported a cache hit")
			}
		})
	}
}

func TestSolveUnreachable(t *testing.T) {
	g := graph.New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(1, 0))
	g.SetStart(a)
	g.SetEnd(b)

	res, err := NewRunner(nil, nil, quiet()).Solve(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Outcome != pathfind.Unreachable || len(res.Path) != 0 {
		t.Errorf("got %v %v, want unreachable without path", res.Outcome, res.Path)
	}
}

func TestSolveMissingEndpoints(t *testing.T) {
	g := graph.New()
	g.AddNode(geom.Pt(0, 0))

	_, err := NewRunner(nil, nil, quiet()).Solve(context.Background(), g, Options{})
	if !errors.Is(err, pathfind.ErrMissingEndpoints) {
		t.Errorf("err = %v, want ErrMissingEndpoints", err)
	}
}

func TestSolveCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quiet())
	g := triangle(t)
	ctx := context.Background()

	first, err := r.Solve(ctx, g, Options{Algorithm: "astar"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Solve(ctx, g, Options{Algorithm: "astar"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second solve missed the cache")
	}
	if second.RunID == first.RunID {
		t.Error("cache hit reused the run id")
	}
	if !slices.Equal(first.Path, second.Path) || first.Distance != second.Distance {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}

	other, err := r.Solve(ctx, g, Options{Algorithm: "dijkstra"})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("different algorithm hit the astar entry")
	}

	refreshed, err := r.Solve(ctx, g, Options{Algorithm: "astar", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh still read the cache")
	}
}

func TestSolveCacheInvalidatedByEdit(t *testing.T) {
	r := NewRunner(newMemCache(), nil, quiet())
	g := triangle(t)
	ctx := context.Background()

	if _, err := r.Solve(ctx, g, Options{}); err != nil {
		t.Fatal(err)
	}
	g.RemoveLink(0, 1)

	res, err := r.Solve(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("edited graph hit the old entry")
	}
	if !slices.Equal(res.Path, []int{0, 2}) || res.Distance != 10 {
		t.Errorf("got %v %v, want [0 2] 10", res.Path, res.Distance)
	}
}

func TestSolveIterationLimit(t *testing.T) {
	_, err := NewRunner(nil, nil, quiet()).Solve(context.Background(), triangle(t), Options{MaxIterations: 1})
	if !errors.Is(err, pathfind.ErrIterationLimit) {
		t.Errorf("err = %v, want ErrIterationLimit", err)
	}
}

type recordingSolver struct {
	mu      sync.Mutex
	started []string
	done    []string
}

func (r *recordingSolver) OnSolveStart(_ context.Context, alg string, _, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, alg)
}

func (r *recordingSolver) OnSolveComplete(_ context.Context, alg, outcome string, _ int, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, alg+":"+outcome)
}

func TestSolveHooks(t *testing.T) {
	rec := &recordingSolver{}
	observability.SetSolverHooks(rec)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil, nil, quiet()).Solve(context.Background(), triangle(t), Options{Algorithm: "astar"}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(rec.started, []string{"astar"}) {
		t.Errorf("started = %v", rec.started)
	}
	if !slices.Equal(rec.done, []string{"astar:solved"}) {
		t.Errorf("done = %v", rec.done)
	}
}

func TestRenderDOT(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quiet())
	g := triangle(t)
	ctx := context.Background()

	art, err := r.Render(ctx, g, RenderOptions{Format: "dot", ShowPath: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if art.ContentType != "text/vnd.graphviz" {
		t.Errorf("ContentType = %q", art.ContentType)
	}
	if !slices.Equal(art.Path, []int{0, 1, 2}) {
		t.Errorf("Path = %v", art.Path)
	}
	if !strings.Contains(string(art.Data), "digraph G") {
		t.Errorf("not DOT: %s", art.Data)
	}

	again, err := r.Render(ctx, g, RenderOptions{Format: "dot", ShowPath: true})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheHit || string(again.Data) != string(art.Data) {
		t.Error("second render missed the cache")
	}
}

func TestRenderWithoutEndpoints(t *testing.T) {
	g := graph.New()
	g.AddNode(geom.Pt(0, 0))

	art, err := NewRunner(nil, nil, quiet()).Render(context.Background(), g, RenderOptions{Format: "dot", ShowPath: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if art.Path != nil {
		t.Errorf("Path = %v, want none", art.Path)
	}
}
