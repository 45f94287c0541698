// Package pipeline runs path searches and renders graphs with caching.
//
// The CLI and the HTTP server both go through a [Runner] so they share
// validation, cache keys and instrumentation.
//
// # Stages
//
//  1. Solve: hash the graph snapshot, look the result up in the cache, run
//     the search and extract the path on a miss
//  2. Render: draw the graph, optionally with the solved path highlighted,
//     and cache the image
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Solve(ctx, g, pipeline.Options{Algorithm: "astar"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Distance, res.Path)
//
//	art, err := runner.Render(ctx, g, pipeline.RenderOptions{Format: "svg", ShowPath: true})
//
// # Caching
//
// Results are keyed by the SHA-256 of the graph snapshot plus every option
// that changes the output (see [cache.Keyer]). Set Options.Refresh to skip
// the cache read and overwrite the entry.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/pathfinder/pkg/cache"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/render"
)

// DefaultAlgorithm is used when Options.Algorithm is empty.
const DefaultAlgorithm = "dijkstra"

// Options configures a solve.
type Options struct {
	Algorithm     string `json:"algorithm,omitempty"`
	EarlyExit     bool   `json:"early_exit,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`

	// Refresh bypasses the cache read.
	Refresh bool `json:"refresh,omitempty"`

	algorithm pathfind.Algorithm
	validated bool
}

// Result is the outcome of a solve.
type Result struct {
	RunID      string             `json:"run_id"`
	GraphHash  string             `json:"graph_hash"`
	Algorithm  pathfind.Algorithm `json:"algorithm"`
	Outcome    pathfind.Outcome   `json:"outcome"`
	Path       []int              `json:"path,omitempty"`
	Distance   float64            `json:"distance"`
	Iterations int                `json:"iterations"`
	Visited    int                `json:"visited"`
	Nodes      int                `json:"nodes"`
	Links      int                `json:"links"`
	Duration   time.Duration      `json:"duration"`
	CacheHit   bool               `json:"cache_hit"`
}

// Solved reports whether a path was found.
func (r *Result) Solved() bool { return r.Outcome == pathfind.Solved }

// RenderOptions configures a render.
type RenderOptions struct {
	Format    string `json:"format,omitempty"`
	ShowPath  bool   `json:"show_path,omitempty"`
	Distances bool   `json:"distances,omitempty"`

	// Solve configures the search used for ShowPath.
	Solve Options `json:"solve"`

	validated bool
}

// Artifact is a rendered image.
type Artifact struct {
	Format      string
	ContentType string
	Data        []byte
	Path        []int // highlighted path, if any
	CacheHit    bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	alg, err := pathfind.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return err
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must not be negative, got %d", o.MaxIterations)
	}
	o.algorithm = alg
	o.Algorithm = alg.String()
	o.validated = true
	return nil
}

// PathfindOptions converts o to engine options.
func (o *Options) PathfindOptions() []pathfind.Option {
	var opts []pathfind.Option
	if o.EarlyExit {
		opts = append(opts, pathfind.WithEarlyExit())
	}
	if o.MaxIterations > 0 {
		opts = append(opts, pathfind.WithMaxIterations(o.MaxIterations))
	}
	return opts
}

// SolveKeyOpts returns the cache key options of o.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		Algorithm:     o.Algorithm,
		EarlyExit:     o.EarlyExit,
		MaxIterations: o.MaxIterations,
	}
}

// ValidateAndSetDefaults checks the options and applies defaults.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = f
	if err := o.Solve.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// RenderKeyOpts returns the cache key options of o.
func (o *RenderOptions) RenderKeyOpts() cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{
		Format:    o.Format,
		ShowPath:  o.ShowPath,
		Distances: o.Distances,
	}
	if o.ShowPath {
		s := o.Solve.SolveKeyOpts()
		k.Solve = &s
	}
	return k
}
