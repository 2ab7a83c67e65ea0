// Package compose wraps a placed layout variant in a complete, themed SVG
// document sized to its target canvas.
//
// The document has a fixed shape: a generator comment, the root <svg>, a
// <style> block binding the palette to CSS custom properties on :root, a
// background rect covering the whole canvas, and the variant fragment
// positioned by the fit plan. Composition is pure; identical inputs produce
// byte-identical documents.
//
// Renderers without CSS custom property support get the same document with
// every var(--…) reference replaced by its color, see [WithInlinePalette].
package compose

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/bannerkit/pkg/fit"
	"github.com/matzehuels/bannerkit/pkg/manifest"
)

// DefaultGenerator labels documents in their header comment.
const DefaultGenerator = "bannerkit"

const indent = "  "

// Document is a composed SVG ready to be written and rendered.
type Document struct {
	Name    string // Banner name from the manifest
	Width   int    // Target pixel width
	Height  int    // Target pixel height
	Variant string // Name of the selected variant
	Content []byte
}

// Bytes returns the document markup.
func (d Document) Bytes() []byte { return d.Content }

// String returns the document markup as a string.
func (d Document) String() string { return string(d.Content) }

// Option configures composition.
type Option func(*composer)

type composer struct {
	theme     Theme
	inline    bool
	generator string
}

// WithInlinePalette resolves palette references to literal colors and omits
// the <style> block.
func WithInlinePalette() Option { return func(c *composer) { c.inline = true } }

// WithGenerator sets the label written in the header comment.
func WithGenerator(label string) Option { return func(c *composer) { c.generator = label } }

// Compose builds the document for canvas c using plan p.
func Compose(c manifest.Canvas, p fit.Plan, opts ...Option) Document {
	cp := composer{theme: DefaultTheme, generator: DefaultGenerator}
	for _, opt := range opts {
		opt(&cp)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!-- Generated by %s, do not edit manually -->\n", commentSafe(cp.generator))
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.Width, c.Height, c.Width, c.Height)

	if !cp.inline {
		renderStyle(&buf, cp.theme)
	}
	fmt.Fprintf(&buf, `%s<rect width="%d" height="%d" fill="%s" />`+"\n",
		indent, c.Width, c.Height, Ref("background-color"))

	for _, line := range strings.Split(p.Fragment(), "\n") {
		if line != "" {
			buf.WriteString(indent)
			buf.WriteString(line)
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")

	content := buf.Bytes()
	if cp.inline {
		content = []byte(cp.theme.Inline(buf.String()))
	}

	return Document{
		Name:    c.Name,
		Width:   c.Width,
		Height:  c.Height,
		Variant: p.Variant.Name,
		Content: content,
	}
}

func renderStyle(buf *bytes.Buffer, t Theme) {
	buf.WriteString(indent + "<style>\n")
	buf.WriteString(indent + indent + ":root {\n")
	for _, b := range t.Bindings {
		fmt.Fprintf(buf, "%s--%s: %s;\n", strings.Repeat(indent, 3), b.Name, b.Value)
	}
	buf.WriteString(indent + indent + "}\n")
	buf.WriteString(indent + "</style>\n")
}

// commentSafe keeps a label from terminating the XML comment early.
func commentSafe(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
