package cache

// ScopedKeyer namespaces every key from an inner Keyer with a fixed
// prefix, so several deployments can share one Redis instance without
// their entries colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner falls back to the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey prefixes the inner layout key.
func (k *ScopedKeyer) LayoutKey(netlistHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(netlistHash, opts)
}

// ArtifactKey prefixes the inner artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// GraphKey prefixes the inner graph key.
func (k *ScopedKeyer) GraphKey(netlistHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(netlistHash, opts)
}
