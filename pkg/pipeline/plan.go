package pipeline

import (
	"context"

	"github.com/matzehuels/bannerkit/pkg/compose"
	"github.com/matzehuels/bannerkit/pkg/fit"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/observability"
	"github.com/matzehuels/bannerkit/pkg/raster"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// PlanAll selects and composes every canvas without rendering.
func PlanAll(reg *variant.Registry, canvases []manifest.Canvas, opts ...compose.Option) ([]Planned, error) {
	if err := manifest.Validate(canvases); err != nil {
		return nil, err
	}
	out := make([]Planned, 0, len(canvases))
	for _, c := range canvases {
		p, err := PlanOne(context.Background(), reg, c, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// PlanOne selects the best variant for c and composes its document.
// Degenerate canvases fail with a configuration error.
func PlanOne(ctx context.Context, reg *variant.Registry, c manifest.Canvas, opts ...compose.Option) (Planned, error) {
	if err := c.Validate(); err != nil {
		return Planned{}, err
	}
	w, h := c.Size()
	candidates := fit.Evaluate(reg.List(), w, h)
	best, _ := fit.Best(candidates)
	if err := best.Valid(); err != nil {
		return Planned{}, err
	}
	observability.Pipeline().OnSelect(ctx, c.Name, best.Variant.Name, best.TotalMargin)

	return Planned{
		Canvas:     c,
		Plan:       best,
		Candidates: candidates,
		Document:   compose.Compose(c, best, opts...),
	}, nil
}

// ComposeOptions returns the compose options matching engine's capabilities.
func ComposeOptions(engine raster.Engine, generator string) []compose.Option {
	var opts []compose.Option
	if generator != "" {
		opts = append(opts, compose.WithGenerator(generator))
	}
	if engine != nil && !engine.CSSVariables() {
		opts = append(opts, compose.WithInlinePalette())
	}
	return opts
}
