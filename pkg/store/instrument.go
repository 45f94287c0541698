package store

import (
	"context"
	"time"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/observability"
)

// Instrument reports every call on s to the registered store hooks under the
// given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{inner: s, backend: backend}
}

type instrumented struct {
	inner   Store
	backend string
}

func (s *instrumented) report(ctx context.Context, op, name string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, name, time.Since(start), err)
}

func (s *instrumented) List(ctx context.Context) ([]Info, error) {
	start := time.Now()
	infos, err := s.inner.List(ctx)
	s.report(ctx, "list", "", start, err)
	return infos, err
}

func (s *instrumented) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	start := time.Now()
	snap, err := s.inner.Get(ctx, name)
	s.report(ctx, "get", name, start, err)
	return snap, err
}

func (s *instrumented) Put(ctx context.Context, name string, snap graph.Snapshot) error {
	start := time.Now()
	err := s.inner.Put(ctx, name, snap)
	s.report(ctx, "put", name, start, err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, name)
	s.report(ctx, "delete", name, start, err)
	return err
}

func (s *instrumented) Close() error { return s.inner.Close() }
