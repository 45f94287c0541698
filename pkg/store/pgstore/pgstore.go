// Package pgstore stores graphs in PostgreSQL using pgx. Each graph is one
// row holding the snapshot as JSONB.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/store"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pathfinder_graphs (
    name       TEXT PRIMARY KEY,
    snapshot   JSONB NOT NULL,
    nodes      INTEGER NOT NULL DEFAULT 0,
    links      INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Store implements store.Store on a pgx connection pool.
type Store struct {
	db *pgxpool.Pool
}

// Open connects to the database at url, pings it and creates the schema.
func Open(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := New(pool)
	if err := s.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New creates a Store backed by the given pool. The store closes the pool on
// Close.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CreateSchema creates the graphs table if it doesn't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DropSchema drops the graphs table.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS pathfinder_graphs`)
	return err
}

func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, nodes, links, updated_at FROM pathfinder_graphs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer rows.Close()

	var infos []store.Info
	for rows.Next() {
		var info store.Info
		if err := rows.Scan(&info.Name, &info.Nodes, &info.Links, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan graph: %w", err)
		}
		info.UpdatedAt = info.UpdatedAt.UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	return infos, nil
}

func (s *Store) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	if err := store.CheckName(name); err != nil {
		return graph.Snapshot{}, err
	}
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT snapshot FROM pathfinder_graphs WHERE name = $1`, name,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return graph.Snapshot{}, store.NotFound(name)
	}
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("get graph: %w", err)
	}
	var snap graph.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode graph %q: %w", name, err)
	}
	return snap, nil
}

func (s *Store) Put(ctx context.Context, name string, snap graph.Snapshot) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO pathfinder_graphs (name, snapshot, nodes, links, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET snapshot = EXCLUDED.snapshot, nodes = EXCLUDED.nodes,
		    links = EXCLUDED.links, updated_at = EXCLUDED.updated_at`,
		name, raw, len(snap.Nodes), len(snap.Links), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put graph: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	ct, err := s.db.Exec(ctx, `DELETE FROM pathfinder_graphs WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete graph: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return store.NotFound(name)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

var _ store.Store = (*Store)(nil)
