package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a snapshot file encoding.
type Format int

const (
	JSON Format = iota
	TOML
	YAML
)

// ErrUnknownFormat is returned for unsupported extensions and format names.
var ErrUnknownFormat = errors.New("unknown graph file format")

var formatNames = map[Format]string{JSON: "json", TOML: "toml", YAML: "yaml"}

// String returns the lower-case format name.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat accepts "json", "toml", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath derives the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return JSON, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
