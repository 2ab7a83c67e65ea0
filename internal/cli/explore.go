package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerkit/pkg/fit"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// Explorer step sizes and bounds, in pixels.
const (
	exploreFineStep   = 10
	exploreCoarseStep = 100
	exploreMinSize    = 1
	exploreMaxSize    = 10000
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Resize a canvas interactively and watch the selection change",
		Long: `Open an interactive view of the best-fit selector. Arrow keys resize the
canvas, n cycles through the manifest banners, and the table shows every
candidate placement with the winner highlighted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m := newExploreModel(variant.Default(), cfg.Banners)
			if width > 0 && height > 0 {
				m = m.resize(width, height)
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "initial canvas width")
	cmd.Flags().IntVar(&height, "height", 0, "initial canvas height")

	return cmd
}

// =============================================================================
// exploreModel - Interactive selector view
// =============================================================================

// exploreModel is the bubbletea model behind the explore command.
type exploreModel struct {
	reg     *variant.Registry
	presets []manifest.Canvas
	preset  int // index into presets, -1 after a manual resize

	width, height int
	step          int

	candidates []fit.Plan
	best       int
}

func newExploreModel(reg *variant.Registry, presets []manifest.Canvas) exploreModel {
	m := exploreModel{reg: reg, presets: presets, step: exploreFineStep, width: 1280, height: 640, preset: -1}
	if len(presets) > 0 {
		m.preset = 0
		m.width, m.height = presets[0].Width, presets[0].Height
	}
	m.evaluate()
	return m
}

func (m exploreModel) resize(w, h int) exploreModel {
	m.width = clampSize(w)
	m.height = clampSize(h)
	m.preset = -1
	m.evaluate()
	return m
}

func (m *exploreModel) evaluate() {
	m.candidates = fit.Evaluate(m.reg.List(), float64(m.width), float64(m.height))
	_, m.best = fit.Best(m.candidates)
}

func clampSize(v int) int {
	return min(max(v, exploreMinSize), exploreMaxSize)
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.resize(m.width-m.step, m.height), nil
	case "right", "l":
		return m.resize(m.width+m.step, m.height), nil
	case "down", "j":
		return m.resize(m.width, m.height-m.step), nil
	case "up", "k":
		return m.resize(m.width, m.height+m.step), nil
	case "tab":
		if m.step == exploreFineStep {
			m.step = exploreCoarseStep
		} else {
			m.step = exploreFineStep
		}
	case "n":
		if len(m.presets) > 0 {
			next := (m.preset + 1) % len(m.presets)
			m = m.resize(m.presets[next].Width, m.presets[next].Height)
			m.preset = next
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	title := "Explore"
	if m.preset >= 0 {
		title += " " + m.presets[m.preset].Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("←/→ width  ↑/↓ height  tab step (%d)  n next banner  q quit", m.step)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Canvas %s  min margin %s\n",
		StyleHighlight.Render(fmt.Sprintf("%d×%d", m.width, m.height)),
		StyleNumber.Render(fmt.Sprintf("%.2f", fit.MinMargin(float64(m.width), float64(m.height))))))

	b.WriteString(candidateTable(m.candidates, m.best))
	b.WriteString("\n")

	if m.best >= 0 {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + StyleValue.Render(m.candidates[m.best].Variant.Name))
		b.WriteString("\n")
	}
	return b.String()
}
