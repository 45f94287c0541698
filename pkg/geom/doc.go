// Package geom provides the 2D coordinate type shared by the graph model and
// the path search heuristic.
//
// Positions are stored as float64 so that both integer canvas coordinates and
// computed layouts (see the pattern package) round-trip without loss.
package geom
