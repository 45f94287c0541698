// Package pattern generates ready-made node layouts sized to a canvas.
//
// [Grid] fills the canvas with a centred lattice and links every node to its
// right and lower neighbour. [Circular] places concentric rings around the
// canvas centre, each half the radius of the previous one, and links
// consecutive nodes of a ring. All generated links are Bidirectional with
// Auto distances.
//
// Node pitch is the node size plus padding (25 and 50 by default), the same
// spacing an editor uses when drawing nodes by hand.
//
// Generators either build a new graph or, with [WithGraph], append to an
// existing one so that patterns can be combined:
//
//	g, err := pattern.Grid(800, 600)
//	_, err = pattern.Circular(800, 600, pattern.WithGraph(g), pattern.WithRings(3))
package pattern
