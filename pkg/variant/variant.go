package variant

import (
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/bannerkit/pkg/errors"
)

//go:embed art/horizontal.frag
var horizontalArt string

//go:embed art/vertical.frag
var verticalArt string

// Names of the shipped variants.
const (
	NameHorizontal = "horizontal"
	NameVertical   = "vertical"
)

var (
	// Horizontal is the wide layout: icon on the left, wordmark on the right.
	Horizontal = New(NameHorizontal, 716, 200, horizontalArt)

	// Vertical is the tall layout: icon on top, wordmark underneath.
	Vertical = New(NameVertical, 420, 380, verticalArt)
)

// Variant is a vector layout template with a known intrinsic size.
type Variant struct {
	Name   string  // Registry key, also reported in plans
	Width  float64 // Intrinsic width in user units (the viewBox width)
	Height float64 // Intrinsic height in user units (the viewBox height)

	body string
}

// New creates a variant from its intrinsic size and inner art markup.
// The markup is placed inside a viewBox of "0 0 width height".
func New(name string, width, height float64, body string) Variant {
	return Variant{Name: name, Width: width, Height: height, body: body}
}

// Aspect returns the intrinsic width-to-height ratio.
func (v Variant) Aspect() float64 {
	return v.Width / v.Height
}

// Body returns the raw art markup.
func (v Variant) Body() string {
	return v.body
}

// Validate reports whether the variant can be scaled.
func (v Variant) Validate() error {
	if v.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "variant name is required")
	}
	if !(v.Width > 0) || !(v.Height > 0) || math.IsInf(v.Width, 0) || math.IsInf(v.Height, 0) {
		return errors.New(errors.ErrCodeInvalidInput,
			"variant %q: intrinsic size must be positive, got %vx%v", v.Name, v.Width, v.Height)
	}
	return nil
}

// Fragment renders the variant positioned at (x, y) and scaled to w×h.
// The result is a self-contained nested <svg> element.
func (v Variant) Fragment(x, y, w, h float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %s %s" x="%s" y="%s" width="%s" height="%s">`+"\n",
		FormatNumber(v.Width), FormatNumber(v.Height),
		FormatNumber(x), FormatNumber(y), FormatNumber(w), FormatNumber(h))
	for _, line := range strings.Split(strings.TrimRight(v.body, "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("</svg>")
	return b.String()
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return fmt.Sprintf("%s (%sx%s)", v.Name, FormatNumber(v.Width), FormatNumber(v.Height))
}

// FormatNumber formats v with the shortest decimal representation that
// round-trips, so documents are byte-stable across runs.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
