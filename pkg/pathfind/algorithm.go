package pathfind

import (
	"fmt"
	"strings"
)

// Algorithm selects the search strategy.
type Algorithm int

const (
	// AlgorithmDijkstra explores by distance from the start.
	AlgorithmDijkstra Algorithm = iota
	// AlgorithmAStar explores by distance from the start plus the straight
	// line distance to the end.
	AlgorithmAStar
)

// Algorithms lists the supported algorithm names.
var Algorithms = []string{"dijkstra", "astar"}

// String returns "dijkstra" or "astar".
func (a Algorithm) String() string {
	switch a {
	case AlgorithmDijkstra:
		return "dijkstra"
	case AlgorithmAStar:
		return "astar"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm accepts "dijkstra", "astar" and "a*" in any case.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dijkstra", "":
		return AlgorithmDijkstra, nil
	case "astar", "a*", "a-star":
		return AlgorithmAStar, nil
	}
	return AlgorithmDijkstra, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if a != AlgorithmDijkstra && a != AlgorithmAStar {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
