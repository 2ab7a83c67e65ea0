// Package variant holds the fixed set of vector layout templates a banner can
// be built from.
//
// A [Variant] is a plain value: an intrinsic width and height plus static art
// markup. Its [Variant.Fragment] method is the content generator: it places
// the art at an origin and scales it to a requested size by wrapping it in a
// nested <svg> element whose viewBox is the intrinsic size. Because the
// viewBox and the target box share an aspect ratio whenever the caller scales
// uniformly, no distortion or cropping occurs.
//
// Two variants ship with bannerkit:
//
//   - [Horizontal]: icon left, two-line wordmark right (716×200)
//   - [Vertical]: icon above, two-line wordmark below (420×380)
//
// The art never hardcodes colors. Fills reference palette bindings by name
// (var(--background-color), var(--text-color), var(--icon-color),
// var(--icon-inner-color)), which the compose package defines once per
// document.
//
// # Registry
//
// A [Registry] is an ordered, immutable list of variants. Order matters only
// for tie-breaking during selection: the first registered variant wins.
//
//	reg := variant.Default()
//	for _, v := range reg.List() {
//	    fmt.Println(v.Name, v.Width, v.Height)
//	}
package variant
