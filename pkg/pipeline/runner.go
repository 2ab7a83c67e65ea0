package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/observability"
	"github.com/matzehuels/bannerkit/pkg/raster"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// Runner executes generation runs with one engine and variant registry.
//
// The Runner is stateless beyond its dependencies; every Run opens and
// closes its own renderer session.
type Runner struct {
	Engine   raster.Engine
	Registry *variant.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner.
// A nil engine uses headless Chrome, a nil registry the shipped variants.
func NewRunner(engine raster.Engine, reg *variant.Registry, logger *log.Logger) *Runner {
	if engine == nil {
		engine = raster.NewChrome()
	}
	if reg == nil {
		reg = variant.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Engine:   engine,
		Registry: reg,
		Logger:   logger,
	}
}

// Run generates every banner in canvases (after the Only filter), in order.
// On failure the returned Result holds the banners completed so far.
func (r *Runner) Run(ctx context.Context, canvases []manifest.Canvas, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	if err := manifest.Validate(canvases); err != nil {
		return nil, err
	}
	selected, err := manifest.Filter(canvases, opts.Only)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "no banners match %v", opts.Only)
	}

	result = &Result{
		RunID:  uuid.NewString(),
		Engine: r.Engine.Name(),
	}
	result.Stats.Banners = len(selected)
	logger = logger.With("run", result.RunID[:8])

	start := time.Now()
	observability.Pipeline().OnRunStart(ctx, result.RunID, len(selected))
	defer func() {
		result.Stats.Duration = time.Since(start)
		observability.Pipeline().OnRunComplete(ctx, result.RunID, result.Stats.Rendered, result.Stats.Duration, err)
	}()

	if err := bkio.EnsureDir(opts.OutDir); err != nil {
		return result, errors.Wrap(errors.ErrCodeIO, err, "prepare output directory")
	}

	session, err := r.Engine.Open(ctx)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeEngineUnavailable, err, "open %s session", r.Engine.Name())
		}
		return result, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("closing renderer session", "engine", r.Engine.Name(), "error", cerr)
		}
	}()
	logger.Debug("renderer ready", "engine", r.Engine.Name(), "duration", time.Since(start).Round(time.Millisecond))

	driver := raster.NewDriver(session, logger)
	composeOpts := ComposeOptions(r.Engine, opts.Generator)

	for _, c := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		planStart := time.Now()
		planned, err := PlanOne(ctx, r.Registry, c, composeOpts...)
		if err != nil {
			return result, fmt.Errorf("banner %s: %w", c.Name, err)
		}
		result.Stats.PlanTime += time.Since(planStart)

		logger.Info("generating banner",
			"name", c.Name,
			"size", fmt.Sprintf("%dx%d", c.Width, c.Height),
			"variant", planned.Plan.Variant.Name)

		paths := bkio.ArtifactPaths(opts.OutDir, c.Name)
		renderStart := time.Now()
		art, err := driver.Render(ctx, planned.Document, paths.SVG, paths.PNG)
		if err != nil {
			return result, fmt.Errorf("banner %s: %w", c.Name, err)
		}
		elapsed := time.Since(renderStart)
		result.Stats.RenderTime += elapsed

		result.Artifacts = append(result.Artifacts, Entry{
			Artifact:   art,
			Plan:       planned.Plan,
			RenderTime: elapsed,
		})
		result.Stats.Rendered++
	}

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
