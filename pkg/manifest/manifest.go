// Package manifest defines the ordered list of banners a run produces.
//
// Each [Canvas] names one output and its exact pixel size. Order is
// significant: banners are generated in manifest order and reports list them
// the same way.
package manifest

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/bannerkit/pkg/errors"
)

// Canvas is one requested banner.
type Canvas struct {
	Name   string `toml:"name" json:"name"`
	Width  int    `toml:"width" json:"width"`
	Height int    `toml:"height" json:"height"`
}

// Size returns the canvas dimensions as floats for layout math.
func (c Canvas) Size() (w, h float64) {
	return float64(c.Width), float64(c.Height)
}

// String implements fmt.Stringer.
func (c Canvas) String() string {
	return fmt.Sprintf("%s (%dx%d)", c.Name, c.Width, c.Height)
}

// Validate checks that the canvas has a safe name and a size between one
// pixel and errors.MaxCanvasSide on each side.
func (c Canvas) Validate() error {
	if err := errors.ValidateArtifactName(c.Name); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"banner %q: size must be positive, got %dx%d", c.Name, c.Width, c.Height)
	}
	if c.Width > errors.MaxCanvasSide || c.Height > errors.MaxCanvasSide {
		return errors.New(errors.ErrCodeInvalidCanvas,
			"banner %q: size %dx%d exceeds the maximum of %d per side",
			c.Name, c.Width, c.Height, errors.MaxCanvasSide)
	}
	return nil
}

// Default returns the shipped banner set.
func Default() []Canvas {
	return []Canvas{
		{Name: "github-social-preview", Width: 1280, Height: 640},
		{Name: "chrome-small-promo", Width: 440, Height: 280},
		{Name: "chrome-large-promo", Width: 920, Height: 680},
		{Name: "chrome-marquee-promo", Width: 1400, Height: 560},
	}
}

// Validate checks every canvas and rejects duplicate names, since two banners
// with one name would overwrite each other's output.
func Validate(canvases []Canvas) error {
	if len(canvases) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no banners")
	}
	seen := make(map[string]bool, len(canvases))
	for i, c := range canvases {
		if err := c.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "banner #%d", i+1)
		}
		if seen[c.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate banner name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Filter keeps the canvases whose name matches any of the glob patterns,
// preserving manifest order. No patterns means no filtering.
func Filter(canvases []Canvas, patterns []string) ([]Canvas, error) {
	if len(patterns) == 0 {
		return canvases, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid banner pattern %q", p)
		}
	}

	var out []Canvas
	for _, c := range canvases {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, c.Name); ok {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// Lookup returns the canvas named name.
func Lookup(canvases []Canvas, name string) (Canvas, bool) {
	for _, c := range canvases {
		if c.Name == name {
			return c, true
		}
	}
	return Canvas{}, false
}
