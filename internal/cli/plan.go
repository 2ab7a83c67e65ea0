package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/pipeline"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// customCanvasName names the ad-hoc canvas given by --width/--height.
const customCanvasName = "custom"

// planOptions holds flags for the plan command.
type planOptions struct {
	width  int
	height int
	only   []string
	json   bool
}

// planCommand creates the plan command.
func (c *CLI) planCommand() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which layout variant each banner selects",
		Long: `Show the selection for every banner in the manifest: the winning variant,
its scale and offset, and the total margin every candidate would leave.
Nothing is written and no renderer is started.`,
		Example: `  bannerkit plan
  bannerkit plan --width 1200 --height 630
  bannerkit plan --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			canvases, err := planCanvases(cfg.Banners, opts)
			if err != nil {
				return err
			}
			planned, err := pipeline.PlanAll(variant.Default(), canvases, pipeline.ComposeOptions(nil, cfg.Generator)...)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), planned, opts.json)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "plan a single ad-hoc canvas of this width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "plan a single ad-hoc canvas of this height")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "only banners whose name matches these globs")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the plan as JSON")

	return cmd
}

// planCanvases picks the canvases to plan: the ad-hoc one when a size was
// given, otherwise the filtered manifest.
func planCanvases(banners []manifest.Canvas, opts planOptions) ([]manifest.Canvas, error) {
	if opts.width != 0 || opts.height != 0 {
		if opts.width == 0 || opts.height == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--width and --height must be given together")
		}
		return []manifest.Canvas{{Name: customCanvasName, Width: opts.width, Height: opts.height}}, nil
	}

	canvases, err := manifest.Filter(banners, opts.only)
	if err != nil {
		return nil, err
	}
	if len(canvases) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "no banners match %v", opts.only)
	}
	return canvases, nil
}

func writePlan(w io.Writer, planned []pipeline.Planned, asJSON bool) error {
	if asJSON {
		return bkio.WriteJSON(newPlanEntries(planned), w)
	}
	_, err := fmt.Fprintln(w, planTable(planned))
	return err
}
