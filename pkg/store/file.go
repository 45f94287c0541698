package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/pathfinder/pkg/graph"
	pio "github.com/matzehuels/pathfinder/pkg/io"
)

const fileExt = ".json"

// FileStore keeps each graph as a JSON snapshot file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/pathfinder/graphs/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "pathfinder", "graphs")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create graph dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory holding the graph files.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) graphPath(name string) string {
	return filepath.Join(s.baseDir, name+fileExt)
}

func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read graph dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), fileExt)
		if CheckName(name) != nil {
			continue
		}
		snap, err := s.read(name)
		if err != nil {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, NewInfo(name, snap, fi.ModTime()))
	}
	SortInfos(infos)
	return infos, nil
}

func (s *FileStore) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	if err := CheckName(name); err != nil {
		return graph.Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (graph.Snapshot, error) {
	data, err := os.ReadFile(s.graphPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return graph.Snapshot{}, NotFound(name)
	}
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("read graph file: %w", err)
	}
	snap, err := pio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("parse graph %q: %w", name, err)
	}
	return snap, nil
}

func (s *FileStore) Put(ctx context.Context, name string, snap graph.Snapshot) error {
	if err := CheckName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := pio.WriteJSON(snap, &buf); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write graph file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write graph file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write graph file: %w", err)
	}
	return os.Rename(tmp.Name(), s.graphPath(name))
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.graphPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return NotFound(name)
	}
	if err != nil {
		return fmt.Errorf("remove graph file: %w", err)
	}
	return nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
