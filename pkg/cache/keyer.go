package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// SolveKey is the key of a solve result for the graph with the given
	// snapshot hash.
	SolveKey(graphHash string, opts SolveKeyOpts) string
	// RenderKey is the key of a rendered image.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// SolveKeyOpts are the solve options that change the result.
type SolveKeyOpts struct {
	Algorithm     string `json:"algorithm"`
	EarlyExit     bool   `json:"early_exit,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`
}

// RenderKeyOpts are the render options that change the image.
type RenderKeyOpts struct {
	Format    string        `json:"format"`
	ShowPath  bool          `json:"show_path,omitempty"`
	Distances bool          `json:"distances,omitempty"`
	Solve     *SolveKeyOpts `json:"solve,omitempty"` // set when ShowPath is
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SolveKey returns "solve:<graphHash>:<hash(opts)>".
func (DefaultKeyer) SolveKey(graphHash string, opts SolveKeyOpts) string {
	return hashKey(fmt.Sprintf("solve:%s", graphHash), opts)
}

// RenderKey returns "render:<graphHash>:<hash(opts)>".
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey(fmt.Sprintf("render:%s", graphHash), opts)
}

var _ Keyer = DefaultKeyer{}
