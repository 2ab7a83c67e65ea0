package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerkit/internal/config"
	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/pipeline"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// generateOptions holds flags for the generate command.
type generateOptions struct {
	outDir string
	engine string
	only   []string
	dryRun bool
	watch  bool
	report string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every banner in the manifest to SVG and PNG",
		Long: `Render every banner in the manifest.

For each banner the best-fitting layout variant is selected, a vector document
is written to <out>/<name>.svg, and the renderer captures it to <out>/<name>.png
at exactly the banner's size. Existing files are overwritten.`,
		Example: `  # Regenerate the full manifest
  bannerkit generate

  # Only the Chrome Web Store promos, rendered with rsvg-convert
  bannerkit generate --only 'chrome-*' --engine rsvg

  # Show what would be generated
  bannerkit generate --dry-run

  # Regenerate whenever bannerkit.toml changes
  bannerkit generate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)

			if !opts.watch {
				return c.runGenerate(ctx, cfg, opts)
			}
			return watchFile(ctx, c.configPath, c.Logger, func(ctx context.Context) error {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				return c.runGenerate(ctx, cfg, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "renderer: chrome or rsvg (default from config)")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "only banners whose name matches these globs")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "select and compose without writing files")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the config file changes")
	cmd.Flags().StringVar(&opts.report, "report", "", "write a JSON run report to this file")

	return cmd
}

// runGenerate performs one generation run.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, opts generateOptions) error {
	logger := loggerFromContext(ctx)

	engine, err := newEngine(cfg, opts.engine)
	if err != nil {
		return err
	}

	if opts.dryRun {
		canvases, err := manifest.Filter(cfg.Banners, opts.only)
		if err != nil {
			return err
		}
		if len(canvases) == 0 {
			return errors.New(errors.ErrCodeInvalidManifest, "no banners match %v", opts.only)
		}
		planned, err := pipeline.PlanAll(variant.Default(), canvases, pipeline.ComposeOptions(engine, cfg.Generator)...)
		if err != nil {
			return err
		}
		fmt.Println(planTable(planned))
		printInfo("Dry run: %d banners, nothing written", len(planned))
		return nil
	}

	runOpts := pipeline.Options{
		OutDir:    cfg.OutDir,
		Only:      opts.only,
		Generator: cfg.Generator,
		Logger:    logger,
	}
	if opts.outDir != "" {
		runOpts.OutDir = opts.outDir
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(engine, variant.Default(), logger)
	result, err := runner.Run(ctx, cfg.Banners, runOpts)
	if result != nil {
		for _, e := range result.Artifacts {
			printFile(e.Artifact.SVGPath)
			printFile(e.Artifact.PNGPath)
		}
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d banners", result.Stats.Rendered))

	printSuccess("Generated %d banners in %s", result.Stats.Rendered, runOpts.OutDir)
	printRunStats(result.Stats, result.Engine)

	if opts.report != "" {
		if err := bkio.ExportJSON(newRunReport(result), opts.report); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write report")
		}
		printFile(opts.report)
	}
	return nil
}
