package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/pathfinder/pkg/graph"
)

type memEntry struct {
	snap      graph.Snapshot
	updatedAt time.Time
}

// Memory is an in-memory Store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	graphs map[string]memEntry
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{graphs: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) List(ctx context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, 0, len(m.graphs))
	for name, e := range m.graphs {
		infos = append(infos, NewInfo(name, e.snap, e.updatedAt))
	}
	SortInfos(infos)
	return infos, nil
}

func (m *Memory) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.graphs[name]
	if !ok {
		return graph.Snapshot{}, NotFound(name)
	}
	return Clone(e.snap), nil
}

func (m *Memory) Put(ctx context.Context, name string, s graph.Snapshot) error {
	if err := CheckName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.graphs[name] = memEntry{snap: Clone(s), updatedAt: m.now()}
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.graphs[name]; !ok {
		return NotFound(name)
	}
	delete(m.graphs, name)
	return nil
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
