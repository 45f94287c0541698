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

// WriteJSON encodes s as indented JSON.
func WriteJSON(s graph.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteTOML encodes s as TOML.
func WriteTOML(s graph.Snapshot, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// WriteYAML encodes s as YAML.
func WriteYAML(s graph.Snapshot, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Write encodes s in format f.
func Write(s graph.Snapshot, w io.Writer, f Format) error {
	switch f {
	case JSON:
		return WriteJSON(s, w)
	case TOML:
		return WriteTOML(s, w)
	case YAML:
		return WriteYAML(s, w)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Export writes g to path in the format implied by the extension.
func Export(g *graph.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g.Snapshot(), file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ExportJSON writes g to path as JSON regardless of the extension.
func ExportJSON(g *graph.Graph, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteJSON(g.Snapshot(), file)
}
