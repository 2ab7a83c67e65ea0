package variant

import "github.com/matzehuels/bannerkit/pkg/errors"

// Registry is an ordered, immutable set of variants.
type Registry struct {
	variants []Variant
	byName   map[string]int
}

// NewRegistry creates a registry from vs, preserving order.
// It rejects invalid variants and duplicate names.
func NewRegistry(vs ...Variant) (*Registry, error) {
	r := &Registry{
		variants: make([]Variant, 0, len(vs)),
		byName:   make(map[string]int, len(vs)),
	}
	for _, v := range vs {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[v.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate variant %q", v.Name)
		}
		r.byName[v.Name] = len(r.variants)
		r.variants = append(r.variants, v)
	}
	return r, nil
}

// Default returns the registry of shipped variants: [Horizontal], then [Vertical].
func Default() *Registry {
	r, err := NewRegistry(Horizontal, Vertical)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the variants in registration order.
// The returned slice is a copy and may be modified by the caller.
func (r *Registry) List() []Variant {
	out := make([]Variant, len(r.variants))
	copy(out, r.variants)
	return out
}

// Lookup returns the variant registered under name.
func (r *Registry) Lookup(name string) (Variant, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Variant{}, false
	}
	return r.variants[i], true
}

// Len returns the number of registered variants.
func (r *Registry) Len() int {
	return len(r.variants)
}

// Names returns the variant names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.variants))
	for i, v := range r.variants {
		names[i] = v.Name
	}
	return names
}
