// Package storetest provides a conformance suite shared by every
// [store.Store] implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// Sample returns a small solved-ready snapshot: a triangle with one
// user-defined link and both markers set.
func Sample(t testing.TB) graph.Snapshot {
	t.Helper()
	g := graph.New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(3, 4))
	c := g.AddNode(geom.Pt(6, 0))
	require.NoError(t, g.AddLink(a, b, graph.Bidirectional))
	require.NoError(t, g.AddLink(b, c, graph.Unidirectional, graph.WithUserDistance(2.5)))
	require.NoError(t, g.AddLink(a, c, graph.Bidirectional, graph.WithDistanceType(graph.Blocking)))
	g.SetStart(a)
	g.SetEnd(c)
	return g.Snapshot()
}

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		infos, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)

		_, err = s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.True(t, errs.Is(err, errs.ErrCodeGraphNotFound))
	})

	t.Run("put get", func(t *testing.T) {
		want := Sample(t)
		require.NoError(t, s.Put(ctx, "triangle", want))

		got, err := s.Get(ctx, "triangle")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("put replaces", func(t *testing.T) {
		snap := Sample(t)
		snap.Links = snap.Links[:1]
		require.NoError(t, s.Put(ctx, "triangle", snap))

		got, err := s.Get(ctx, "triangle")
		require.NoError(t, err)
		assert.Len(t, got.Links, 1)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "alpha", Sample(t)))

		infos, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "alpha", infos[0].Name)
		assert.Equal(t, "triangle", infos[1].Name)
		assert.Equal(t, 3, infos[0].Nodes)
		assert.Equal(t, 3, infos[0].Links)
		assert.Equal(t, 1, infos[1].Links)
		assert.False(t, infos[0].UpdatedAt.IsZero())
	})

	t.Run("invalid name", func(t *testing.T) {
		err := s.Put(ctx, "../escape", Sample(t))
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidName), "err = %v", err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "alpha"))
		require.NoError(t, s.Delete(ctx, "triangle"))
		assert.ErrorIs(t, s.Delete(ctx, "triangle"), store.ErrNotFound)

		infos, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})
}
