package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The preview server scopes keys by release so that a new version with
// changed art never serves images rendered by an older one.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Scope()+":")
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

// DocumentKey generates a prefixed key for composed documents.
func (k *ScopedKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(opts)
}

// ImageKey generates a prefixed key for captured images.
func (k *ScopedKeyer) ImageKey(opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(opts)
}
