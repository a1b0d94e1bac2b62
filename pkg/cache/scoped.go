package cache

// ScopedKeyer prepends a fixed prefix to every key of an inner Keyer.
// The HTTP service uses it to keep its entries apart from CLI runs sharing
// the same Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "svc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls
// back to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(statsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(statsHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
