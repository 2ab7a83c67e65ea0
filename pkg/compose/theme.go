package compose

import (
	"strings"
)

// Binding is a named palette slot. Value is either a color or a reference to
// another slot written as var(--name).
type Binding struct {
	Name  string
	Value string
}

// Theme is an ordered set of palette bindings.
type Theme struct {
	Bindings []Binding
}

// DefaultTheme is the fixed bannerkit palette. The icon's inner cross aliases
// the background so the two always match.
var DefaultTheme = Theme{
	Bindings: []Binding{
		{Name: "background-color", Value: "#303030"},
		{Name: "text-color", Value: "#ffffff"},
		{Name: "icon-color", Value: "#759b23"},
		{Name: "icon-inner-color", Value: Ref("background-color")},
	},
}

// Ref returns the var() expression referring to the named slot.
func Ref(name string) string {
	return "var(--" + name + ")"
}

// Lookup returns the raw value bound to name.
func (t Theme) Lookup(name string) (string, bool) {
	for _, b := range t.Bindings {
		if b.Name == name {
			return b.Value, true
		}
	}
	return "", false
}

// Resolve follows aliases until it reaches a concrete value. Unknown names
// and alias cycles resolve to the empty string.
func (t Theme) Resolve(name string) string {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		v, ok := t.Lookup(name)
		if !ok {
			return ""
		}
		ref, isRef := parseRef(v)
		if !isRef {
			return v
		}
		name = ref
	}
	return ""
}

// Inline replaces every var(--name) reference to a bound slot in s with its
// resolved value.
func (t Theme) Inline(s string) string {
	pairs := make([]string, 0, 2*len(t.Bindings))
	for _, b := range t.Bindings {
		pairs = append(pairs, Ref(b.Name), t.Resolve(b.Name))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func parseRef(v string) (string, bool) {
	if !strings.HasPrefix(v, "var(--") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len("var(--") : len(v)-1], true
}
