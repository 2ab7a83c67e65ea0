// Package pipeline runs the banner generation batch.
//
// The batch is strictly sequential. For every canvas in the manifest it:
//
//  1. Select: evaluates every layout variant and picks the one with the
//     smallest total margin
//  2. Compose: wraps the placed variant in the themed SVG document
//  3. Render: writes the document, rasterizes it at the exact canvas size,
//     and verifies the captured image
//
// One renderer session is opened per run and released when the run ends,
// successfully or not. The first failure aborts the batch; banners rendered
// before it stay on disk. Nothing is retried.
//
// # Usage
//
//	engine, _ := raster.Lookup("chrome")
//	runner := pipeline.NewRunner(engine, variant.Default(), logger)
//	result, err := runner.Run(ctx, manifest.Default(), pipeline.Options{
//	    OutDir: "media/banners",
//	})
//
// Selection and composition without rendering (dry runs, reports):
//
//	planned, err := pipeline.PlanAll(variant.Default(), manifest.Default())
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannerkit/pkg/compose"
	"github.com/matzehuels/bannerkit/pkg/errors"
	"github.com/matzehuels/bannerkit/pkg/fit"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/raster"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutDir is where banners are written when no directory is given.
	DefaultOutDir = "media/banners"

	// DefaultGenerator labels generated documents.
	DefaultGenerator = compose.DefaultGenerator
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a generation run.
type Options struct {
	// OutDir receives <name>.svg and <name>.png for every banner.
	OutDir string `json:"out_dir"`

	// Only restricts the run to banners whose name matches one of these
	// globs. Manifest order is preserved.
	Only []string `json:"only,omitempty"`

	// Generator is written into each document's header comment.
	Generator string `json:"generator,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if o.Generator == "" {
		o.Generator = DefaultGenerator
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	if o.OutDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	if _, err := manifest.Filter(nil, o.Only); err != nil {
		return err
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Planned is the selection and composition outcome for one canvas.
type Planned struct {
	Canvas     manifest.Canvas
	Plan       fit.Plan   // winning placement
	Candidates []fit.Plan // every variant's placement, registry order
	Document   compose.Document
}

// Entry records one rendered banner.
type Entry struct {
	Artifact   raster.Artifact
	Plan       fit.Plan
	RenderTime time.Duration
}

// Result contains the outputs of a generation run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// Engine is the renderer that produced the images.
	Engine string

	// Artifacts lists rendered banners in manifest order. On failure it
	// holds the banners completed before the failing one.
	Artifacts []Entry

	// Stats contains timing and count information.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Banners    int // banners selected for the run
	Rendered   int
	PlanTime   time.Duration // selection and composition, summed
	RenderTime time.Duration // renderer round trips, summed
	Duration   time.Duration // whole run, session start included
}
