package cache

// Key types, reported to cache hooks.
const (
	KeyTypeDocument = "svg"
	KeyTypeImage    = "png"
)

// DocumentKeyOpts identifies a composed document.
type DocumentKeyOpts struct {
	Width, Height int
	Inline        bool   // palette inlined for engines without CSS variables
	Generator     string // label written into the header comment
}

// ImageKeyOpts identifies a captured image.
type ImageKeyOpts struct {
	Width, Height int
	Engine        string
	Generator     string
}

// Keyer derives cache keys for preview artifacts.
type Keyer interface {
	DocumentKey(opts DocumentKeyOpts) string
	ImageKey(opts ImageKeyOpts) string
}

// DefaultKeyer hashes the key options under a per-type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "svg:<hash>".
func (DefaultKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return hashKey(KeyTypeDocument, opts.Width, opts.Height, opts.Inline, opts.Generator)
}

// ImageKey returns "png:<hash>".
func (DefaultKeyer) ImageKey(opts ImageKeyOpts) string {
	return hashKey(KeyTypeImage, opts.Width, opts.Height, opts.Engine, opts.Generator)
}
