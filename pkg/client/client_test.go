package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/server"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(server.New(nil, nil, server.WithLogger(logger)).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithHTTPClient(srv.Client()))
}

// detour is a line 0-1-2 plus a user defined shortcut 0-2 of 10; the line
// costs 5 + 5.
func detour(t *testing.T) graph.Snapshot {
	t.Helper()
	g := graph.New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(3, 4))
	c := g.AddNode(geom.Pt(6, 0))
	require.NoError(t, g.AddLink(a, b, graph.Bidirectional))
	require.NoError(t, g.AddLink(b, c, graph.Bidirectional))
	require.NoError(t, g.AddLink(a, c, graph.Bidirectional, graph.WithUserDistance(10.5)))
	g.SetStart(a)
	g.SetEnd(c)
	return g.Snapshot()
}

func TestHealth(t *testing.T) {
	require.NoError(t, newClient(t).Health(context.Background()))
}

func TestSolve(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	for _, alg := range []string{"dijkstra", "astar"} {
		res, err := c.Solve(ctx, detour(t), pipeline.Options{Algorithm: alg})
		require.NoError(t, err, alg)
		assert.Equal(t, pathfind.Solved, res.Outcome)
		assert.Equal(t, alg, res.Algorithm.String())
		assert.Equal(t, []int{0, 1, 2}, res.Path)
		assert.InDelta(t, 10, res.Distance, 1e-9)
		assert.NotEmpty(t, res.RunID)
	}
}

func TestSolveErrorCodes(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	s := detour(t)
	s.Start = nil
	_, err := c.Solve(ctx, s, pipeline.Options{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeMissingEndpoints), "got %v", err)

	_, err = c.Solve(ctx, detour(t), pipeline.Options{Algorithm: "bfs"})
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidAlgorithm), "got %v", err)
}

func TestGraphs(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	infos, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	info, err := c.Put(ctx, "detour", detour(t))
	require.NoError(t, err)
	assert.Equal(t, "detour", info.Name)
	assert.Equal(t, 3, info.Nodes)
	assert.Equal(t, 3, info.Links)

	got, err := c.Get(ctx, "detour")
	require.NoError(t, err)
	assert.Len(t, got.Nodes, 3)
	require.NotNil(t, got.End)
	assert.Equal(t, 2, *got.End)

	res, err := c.SolveStored(ctx, "detour", pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Path)

	infos, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	require.NoError(t, c.Delete(ctx, "detour"))
	_, err = c.Get(ctx, "detour")
	assert.True(t, errs.Is(err, errs.ErrCodeGraphNotFound), "got %v", err)
	err = c.Delete(ctx, "detour")
	assert.True(t, errs.Is(err, errs.ErrCodeGraphNotFound), "got %v", err)

	_, err = c.Put(ctx, "bad name!", detour(t))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidName), "got %v", err)
}

func TestRender(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	opts := pipeline.RenderOptions{Format: "dot", ShowPath: true, Distances: true}

	art, err := c.Render(ctx, detour(t), opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(art.Data), "digraph"))
	assert.Contains(t, string(art.Data), `label="10.5"`)
	assert.NotEmpty(t, art.ContentType)
	assert.False(t, art.CacheHit)

	_, err = c.Put(ctx, "detour", detour(t))
	require.NoError(t, err)
	art, err = c.RenderStored(ctx, "detour", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(art.Data), "digraph"))

	_, err = c.Render(ctx, detour(t), pipeline.RenderOptions{Format: "bmp"})
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat), "got %v", err)
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"INVALID_INPUT","error":"nope"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, WithHTTPClient(srv.Client())).Health(context.Background())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
	assert.Equal(t, "nope", errs.UserMessage(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHeaders(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithHeader("Authorization", "Bearer t"))
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, "Bearer t", got)
}

func TestGraphPath(t *testing.T) {
	assert.Equal(t, "/v1/graphs/maze", graphPath("maze"))
	assert.Equal(t, "/v1/graphs/maze/solve", graphPath("maze", "solve"))
}
