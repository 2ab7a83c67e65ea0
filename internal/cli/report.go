package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bannerkit/pkg/fit"
	"github.com/matzehuels/bannerkit/pkg/pipeline"
	"github.com/matzehuels/bannerkit/pkg/raster"
	"github.com/matzehuels/bannerkit/pkg/variant"
)

// =============================================================================
// Table Styles
// =============================================================================

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableWinnerStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	tableLoserStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// =============================================================================
// Tables
// =============================================================================

// planTable renders the winning variant of every planned banner, with the
// total margin each candidate would leave.
func planTable(planned []pipeline.Planned) string {
	rows := make([][]string, 0, len(planned))
	for _, p := range planned {
		rows = append(rows, []string{
			p.Canvas.Name,
			sizeLabel(float64(p.Canvas.Width), float64(p.Canvas.Height)),
			p.Plan.Variant.Name,
			fmt.Sprintf("%.3f", p.Plan.Scale),
			fmt.Sprintf("%.1f, %.1f", p.Plan.X, p.Plan.Y),
			marginSummary(p.Candidates),
		})
	}

	return newTable("Banner", "Size", "Variant", "Scale", "Offset", "Total margin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 2 {
				return tableWinnerStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// candidateTable renders every candidate placement for one canvas, with the
// winner at index best highlighted.
func candidateTable(candidates []fit.Plan, best int) string {
	rows := make([][]string, 0, len(candidates))
	for _, p := range candidates {
		rows = append(rows, []string{
			p.Variant.Name,
			sizeLabel(p.Variant.Width, p.Variant.Height),
			fmt.Sprintf("%.3f", p.Scale),
			fmt.Sprintf("%.1f×%.1f", p.Width, p.Height),
			fmt.Sprintf("%.1f, %.1f", p.X, p.Y),
			fmt.Sprintf("%.2f", p.TotalMargin),
		})
	}

	return newTable("Variant", "Intrinsic", "Scale", "Placed", "Offset", "Total margin").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row == best:
				return tableWinnerStyle
			default:
				return tableLoserStyle
			}
		}).
		Render()
}

// variantTable lists the registered variants.
func variantTable(vs []variant.Variant) string {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{v.Name, sizeLabel(v.Width, v.Height), fmt.Sprintf("%.3f", v.Aspect())})
	}
	return newTable("Variant", "Intrinsic size", "Aspect").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func sizeLabel(w, h float64) string {
	return variant.FormatNumber(w) + "×" + variant.FormatNumber(h)
}

func marginSummary(candidates []fit.Plan) string {
	parts := make([]string, len(candidates))
	for i, p := range candidates {
		parts[i] = fmt.Sprintf("%s %.2f", p.Variant.Name, p.TotalMargin)
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// JSON Reports
// =============================================================================

// planEntry is the JSON form of one selection outcome.
type planEntry struct {
	Banner      string           `json:"banner"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Variant     string           `json:"variant"`
	Scale       float64          `json:"scale"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`
	TotalMargin float64          `json:"total_margin"`
	Candidates  []candidateEntry `json:"candidates"`
}

type candidateEntry struct {
	Variant     string  `json:"variant"`
	Scale       float64 `json:"scale"`
	TotalMargin float64 `json:"total_margin"`
}

func newPlanEntry(p pipeline.Planned) planEntry {
	e := planEntry{
		Banner:      p.Canvas.Name,
		Width:       p.Canvas.Width,
		Height:      p.Canvas.Height,
		Variant:     p.Plan.Variant.Name,
		Scale:       p.Plan.Scale,
		X:           p.Plan.X,
		Y:           p.Plan.Y,
		TotalMargin: p.Plan.TotalMargin,
		Candidates:  make([]candidateEntry, len(p.Candidates)),
	}
	for i, c := range p.Candidates {
		e.Candidates[i] = candidateEntry{Variant: c.Variant.Name, Scale: c.Scale, TotalMargin: c.TotalMargin}
	}
	return e
}

func newPlanEntries(planned []pipeline.Planned) []planEntry {
	out := make([]planEntry, len(planned))
	for i, p := range planned {
		out[i] = newPlanEntry(p)
	}
	return out
}

// variantEntry is the JSON form of a registered variant.
type variantEntry struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func newVariantEntries(vs []variant.Variant) []variantEntry {
	out := make([]variantEntry, len(vs))
	for i, v := range vs {
		out[i] = variantEntry{Name: v.Name, Width: v.Width, Height: v.Height}
	}
	return out
}

// runReport is written by generate --report.
type runReport struct {
	RunID      string            `json:"run_id"`
	Engine     string            `json:"engine"`
	Artifacts  []raster.Artifact `json:"artifacts"`
	DurationMS int64             `json:"duration_ms"`
}

func newRunReport(r *pipeline.Result) runReport {
	arts := make([]raster.Artifact, len(r.Artifacts))
	for i, e := range r.Artifacts {
		arts[i] = e.Artifact
	}
	return runReport{
		RunID:      r.RunID,
		Engine:     r.Engine,
		Artifacts:  arts,
		DurationMS: r.Stats.Duration.Milliseconds(),
	}
}
