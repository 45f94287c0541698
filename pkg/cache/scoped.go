package cache

// ScopedKeyer wraps a Keyer with a prefix. Servers sharing one Redis use it to
// keep their entries apart:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SolveKey generates a prefixed key for solve results.
func (k *ScopedKeyer) SolveKey(graphHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(graphHash, opts)
}

// RenderKey generates a prefixed key for rendered images.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
