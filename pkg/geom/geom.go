package geom

import (
	"fmt"
	"math"
)

// Point is a position on the 2D canvas.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y" bson:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// String returns "(x, y)" with trailing zeros trimmed.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Distance returns the Euclidean distance between a and b.
// It is used both for Auto link distances and for the A* heuristic.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
