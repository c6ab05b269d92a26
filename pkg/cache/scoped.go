package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by payload
// format version so that changing how images are prepared invalidates old
// entries without a manual "cache clear".
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

// ImageKey generates a prefixed image payload key.
func (k *ScopedKeyer) ImageKey(contentHash string, opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(contentHash, opts)
}
