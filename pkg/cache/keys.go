package cache

// RenderKeyOpts are the render settings that change a diagram's output.
type RenderKeyOpts struct {
	Format     string `json:"format"`
	Detailed   bool   `json:"detailed"`
	References bool   `json:"references"`
}

// Keyer derives cache keys for rendered diagrams.
type Keyer interface {
	RenderKey(metadataHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey keys a diagram by the hash of its metadata document and opts.
func (DefaultKeyer) RenderKey(metadataHash string, opts RenderKeyOpts) string {
	return hashKey("render", metadataHash, opts)
}

// ScopedKeyer prefixes every key so several producers can share one store
// without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) RenderKey(metadataHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(metadataHash, opts)
}
