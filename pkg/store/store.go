// Package store persists named graphs.
//
// A [Store] maps a graph name to a [graph.Snapshot]. Names are validated with
// [errors.ValidateGraphName] because they end up as file names and database
// keys. Implementations:
//
//   - [Memory]: in-process map for tests and ephemeral servers
//   - [FileStore]: one JSON file per graph, for the CLI
//   - redisstore, mongostore and pgstore subpackages for shared deployments
//
// # Usage
//
//	st, err := store.NewFileStore("")  // Uses ~/.config/pathfinder/graphs/
//	if err != nil {
//	    return err
//	}
//	if err := st.Put(ctx, "maze", g.Snapshot()); err != nil {
//	    return err
//	}
//	snap, err := st.Get(ctx, "maze")
//	if errors.Is(err, store.ErrNotFound) {
//	    // no graph under that name
//	}
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

// ErrNotFound is returned by Get and Delete for an unknown name. It carries
// the GRAPH_NOT_FOUND code.
var ErrNotFound = errs.New(errs.ErrCodeGraphNotFound, "graph not found")

// Store persists graph snapshots by name.
type Store interface {
	// List returns every stored graph ordered by name.
	List(ctx context.Context) ([]Info, error)
	// Get returns the snapshot stored under name.
	Get(ctx context.Context, name string) (graph.Snapshot, error)
	// Put creates or replaces the snapshot stored under name.
	Put(ctx context.Context, name string, s graph.Snapshot) error
	// Delete removes name.
	Delete(ctx context.Context, name string) error
	// Close releases backend resources.
	Close() error
}

// Info summarises a stored graph.
type Info struct {
	Name      string    `json:"name" bson:"name"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	Links     int       `json:"links" bson:"links"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewInfo describes s stored under name at t.
func NewInfo(name string, s graph.Snapshot, t time.Time) Info {
	return Info{Name: name, Nodes: len(s.Nodes), Links: len(s.Links), UpdatedAt: t.UTC()}
}

// SortInfos orders infos by name.
func SortInfos(infos []Info) {
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
}

// NotFound wraps ErrNotFound with the missing name.
func NotFound(name string) error {
	return fmt.Errorf("%q: %w", name, ErrNotFound)
}

// CheckName validates name for use as a storage key.
func CheckName(name string) error {
	return errs.ValidateGraphName(name)
}

// Clone deep-copies s so that stored and returned snapshots never share
// memory with the caller.
func Clone(s graph.Snapshot) graph.Snapshot {
	out := graph.Snapshot{
		Nodes: slices.Clone(s.Nodes),
		Links: slices.Clone(s.Links),
	}
	if s.Start != nil {
		v := *s.Start
		out.Start = &v
	}
	if s.End != nil {
		v := *s.End
		out.End = &v
	}
	return out
}
