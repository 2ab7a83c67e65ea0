package fit

import (
	"math"

	"github.com/matzehuels/bannerkit/pkg/errors"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// marginDivisor sets the minimum margin as a fraction of the shorter side.
const marginDivisor = 8

// Plan describes how one variant is placed on a canvas.
type Plan struct {
	Variant variant.Variant

	CanvasWidth  float64
	CanvasHeight float64

	MinMargin       float64 // Reserved on every side
	AvailableWidth  float64 // CanvasWidth minus both minimum margins
	AvailableHeight float64 // CanvasHeight minus both minimum margins

	Scale  float64 // Uniform scale applied to the intrinsic size
	X, Y   float64 // Top-left corner of the scaled variant
	Width  float64 // Scaled width
	Height float64 // Scaled height

	TotalMargin float64 // 2·X + 2·Y, lower is better
}

// MinMargin returns the margin reserved on every side of a w×h canvas.
func MinMargin(w, h float64) float64 {
	return math.Min(w, h) / marginDivisor
}

// Place fits v into a w×h canvas and returns the resulting plan.
func Place(v variant.Variant, w, h float64) Plan {
	m := MinMargin(w, h)
	availW := w - 2*m
	availH := h - 2*m

	r := math.Min(availW/v.Width, availH/v.Height)
	sw := v.Width * r
	sh := v.Height * r

	x := (w - sw) / 2
	y := (h - sh) / 2

	return Plan{
		Variant:         v,
		CanvasWidth:     w,
		CanvasHeight:    h,
		MinMargin:       m,
		AvailableWidth:  availW,
		AvailableHeight: availH,
		Scale:           r,
		X:               x,
		Y:               y,
		Width:           sw,
		Height:          sh,
		TotalMargin:     2*x + 2*y,
	}
}

// Evaluate places every variant on a w×h canvas, in registry order.
func Evaluate(vs []variant.Variant, w, h float64) []Plan {
	plans := make([]Plan, len(vs))
	for i, v := range vs {
		plans[i] = Place(v, w, h)
	}
	return plans
}

// Select returns the plan with the smallest total margin.
// Ties go to the variant that appears first in vs. Select panics if vs is empty.
func Select(vs []variant.Variant, w, h float64) Plan {
	if len(vs) == 0 {
		panic("fit: Select called with no variants")
	}
	best, _ := Best(Evaluate(vs, w, h))
	return best
}

// Best returns the minimal-margin plan among candidates and its index.
// It returns -1 when candidates is empty.
func Best(candidates []Plan) (Plan, int) {
	idx := -1
	var best Plan
	for i, p := range candidates {
		if idx < 0 || p.TotalMargin < best.TotalMargin {
			best, idx = p, i
		}
	}
	return best, idx
}

// Valid reports whether the plan can be composed. Plans for degenerate
// canvases have no usable interior and fail with ErrCodeInvalidCanvas.
func (p Plan) Valid() error {
	if err := errors.ValidateCanvasSize(p.CanvasWidth, p.CanvasHeight); err != nil {
		return err
	}
	if !(p.AvailableWidth > 0) || !(p.AvailableHeight > 0) {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"canvas %vx%v leaves no room inside the minimum margin", p.CanvasWidth, p.CanvasHeight)
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"variant %s cannot be scaled into %vx%v (scale %v)", p.Variant.Name, p.CanvasWidth, p.CanvasHeight, p.Scale)
	}
	return nil
}

// Fragment renders the plan's variant at its placement.
func (p Plan) Fragment() string {
	return p.Variant.Fragment(p.X, p.Y, p.Width, p.Height)
}
