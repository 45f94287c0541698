// Package redisstore stores graphs in Redis, one JSON document per key.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/pathfinder/pkg/cache"
	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// DefaultPrefix namespaces graph keys.
const DefaultPrefix = "pathfinder:graph:"

type document struct {
	Snapshot  graph.Snapshot `json:"snapshot"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store implements store.Store on a Redis client.
type Store struct {
	client *redis.Client
	prefix string
}

// Open connects to url (redis:// or rediss://) and pings the server,
// retrying transient failures.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(fmt.Errorf("connect to redis: %w", err))
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return New(client, DefaultPrefix), nil
}

// New wraps an existing client. The store closes it on Close.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string { return s.prefix + name }

func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	var infos []store.Info
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		name := strings.TrimPrefix(iter.Val(), s.prefix)
		doc, err := s.load(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			continue // deleted between SCAN and GET
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, store.NewInfo(name, doc.Snapshot, doc.UpdatedAt))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	store.SortInfos(infos)
	return infos, nil
}

func (s *Store) load(ctx context.Context, name string) (document, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return document{}, store.NotFound(name)
	}
	if err != nil {
		return document{}, fmt.Errorf("redis get: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("decode graph %q: %w", name, err)
	}
	return doc, nil
}

func (s *Store) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	if err := store.CheckName(name); err != nil {
		return graph.Snapshot{}, err
	}
	doc, err := s.load(ctx, name)
	if err != nil {
		return graph.Snapshot{}, err
	}
	return doc.Snapshot, nil
}

func (s *Store) Put(ctx context.Context, name string, snap graph.Snapshot) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	data, err := json.Marshal(document{Snapshot: snap, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return store.NotFound(name)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error { return s.client.Close() }

var _ store.Store = (*Store)(nil)
