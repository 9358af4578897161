package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share
// one cache backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "game-assets:")
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

// OutputKey generates a prefixed key for upgraded output.
func (k *ScopedKeyer) OutputKey(sourceHash string, opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(sourceHash, opts)
}
