package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

var (
	// ErrUnknownNode is returned by link operations when an endpoint id does
	// not exist in the graph. No mutation is performed.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDataIntegrity is returned by [FromSnapshot] when a record set refers
	// to a node that is not part of it, or repeats a node id.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrUnknownLink is returned by [Graph.SetLinkDistance] when no link is
	// stored for the requested ordered pair.
	ErrUnknownLink = errors.New("unknown link")

	// ErrInvalidDistance is returned when a user defined distance is negative
	// or not a finite number.
	ErrInvalidDistance = errors.New("invalid distance")
)

// NoNode is the id used for "no node": an unset start or end marker, or the
// predecessor of a node that has none.
const NoNode = -1

// Direction controls which way a link may be traversed.
type Direction int

const (
	// Bidirectional links may be traversed from either endpoint.
	Bidirectional Direction = iota
	// Unidirectional links may only be traversed from Start toward End.
	Unidirectional
)

var directionNames = map[Direction]string{
	Bidirectional:  "bidirectional",
	Unidirectional: "unidirectional",
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	s, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// returned by String plus the short forms "bi" and "uni".
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bidirectional", "bi", "":
		*d = Bidirectional
	case "unidirectional", "uni":
		*d = Unidirectional
	default:
		return fmt.Errorf("invalid direction %q", text)
	}
	return nil
}

// DistanceType controls how a link's distance is computed and whether the
// search may use the link at all.
type DistanceType int

const (
	// Auto distances always equal the Euclidean distance between endpoints.
	Auto DistanceType = iota
	// Blocking links are stored and exported but never traversed.
	Blocking
	// UserDefined distances are set by the caller and survive node movement.
	UserDefined
)

var distanceTypeNames = map[DistanceType]string{
	Auto:        "auto",
	Blocking:    "blocking",
	UserDefined: "user",
}

// String returns the lower-case name of the distance type.
func (t DistanceType) String() string {
	if s, ok := distanceTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("distance_type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t DistanceType) MarshalText() ([]byte, error) {
	s, ok := distanceTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("invalid distance type %d", int(t))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DistanceType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "auto", "":
		*t = Auto
	case "blocking", "blocked":
		*t = Blocking
	case "user", "userdefined", "user_defined":
		*t = UserDefined
	default:
		return fmt.Errorf("invalid distance type %q", text)
	}
	return nil
}

// Node is a positioned vertex. Nodes are handed out by value; use the Graph
// methods to change them.
type Node struct {
	ID  int
	Pos geom.Point
}

// Link is a weighted connection between two nodes. Start and End record the
// endpoints in the order they were given to [Graph.AddLink].
type Link struct {
	Start     int
	End       int
	Direction Direction
	Type      DistanceType
	Distance  float64
}

// Other returns the endpoint opposite to id. For a link that does not touch
// id the result is End.
func (l Link) Other(id int) int {
	if l.End == id {
		return l.Start
	}
	return l.End
}

// Touches reports whether id is one of the link's endpoints.
func (l Link) Touches(id int) bool { return l.Start == id || l.End == id }

// Traversable reports whether the search may move along l away from the node
// from: Blocking links never qualify, and a Unidirectional link only
// qualifies when leaving its Start.
func Traversable(l Link, from int) bool {
	if l.Type == Blocking {
		return false
	}
	return l.Direction == Bidirectional || l.Start == from
}
