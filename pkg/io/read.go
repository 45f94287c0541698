package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pathfinder/pkg/graph"
)

// ReadJSON decodes a JSON snapshot from r. Unknown fields are rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (graph.Snapshot, error) {
	var s graph.Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode json: %w", err)
	}
	return s, nil
}

// ReadTOML decodes a TOML snapshot from r.
func ReadTOML(r io.Reader) (graph.Snapshot, error) {
	var s graph.Snapshot
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode toml: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return graph.Snapshot{}, fmt.Errorf("decode toml: unknown key %q", undec[0].String())
	}
	return s, nil
}

// ReadYAML decodes a YAML snapshot from r.
func ReadYAML(r io.Reader) (graph.Snapshot, error) {
	var s graph.Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode yaml: %w", err)
	}
	return s, nil
}

// Read decodes a snapshot in format f from r.
func Read(r io.Reader, f Format) (graph.Snapshot, error) {
	switch f {
	case JSON:
		return ReadJSON(r)
	case TOML:
		return ReadTOML(r)
	case YAML:
		return ReadYAML(r)
	}
	return graph.Snapshot{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Import reads the snapshot stored at path. The format follows the file
// extension.
func Import(path string) (graph.Snapshot, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return graph.Snapshot{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	s, err := Read(file, f)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ImportJSON reads a JSON snapshot file regardless of its extension.
func ImportJSON(path string) (graph.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadJSON(file)
}

// Load imports path and builds a graph from it under policy.
func Load(path string, policy graph.Policy) (*graph.Graph, graph.LoadReport, error) {
	s, err := Import(path)
	if err != nil {
		return nil, graph.LoadReport{}, err
	}
	g, report, err := graph.FromSnapshot(s, policy)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}
	return g, report, nil
}
