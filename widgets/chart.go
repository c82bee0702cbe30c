package widgets

import (
	"fmt"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gridscope/internal/api"
)

var traceColors = []lipgloss.Color{
	"#fab387", "#89b4fa", "#a6e3a1", "#f38ba8", "#cba6f7", "#94e2d5",
}

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	chartAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

// Chart renders one backend {data, layout} spec. Scatter/line traces go
// through a braille time-series chart, bar traces through a horizontal bar
// list. An empty spec renders a placeholder instead of axes.
type Chart struct {
	Spec api.ChartSpec
}

func (c Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	title := c.Spec.Layout.Title
	if len(c.Spec.Data) == 0 {
		if title == "" {
			title = "Chart"
		}
		return chartTitleStyle.Render(title) + "\n(no data)"
	}
	if c.Spec.Data[0].Type == "bar" {
		return renderBars(c.Spec, width, height)
	}
	return renderLines(c.Spec, width, height)
}

func renderLines(spec api.ChartSpec, width, height int) string {
	bodyHeight := height
	header := ""
	if spec.Layout.Title != "" {
		header = chartTitleStyle.Render(ansi.Truncate(spec.Layout.Title, width, "")) + "\n"
		bodyHeight--
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	chart := tslc.New(width, bodyHeight)
	chart.AxisStyle = chartAxisStyle
	chart.LabelStyle = chartLabelStyle

	var minT, maxT time.Time
	var maxV float64
	for ti, tr := range spec.Data {
		name := tr.Name
		if name == "" {
			name = fmt.Sprintf("series-%d", ti)
		}
		chart.SetDataSetStyle(name, lipgloss.NewStyle().Foreground(traceColors[ti%len(traceColors)]))
		for i, x := range tr.X {
			if i >= len(tr.Y) {
				break
			}
			ts, ok := parseChartTime(x, i)
			if !ok {
				continue
			}
			if minT.IsZero() || ts.Before(minT) {
				minT = ts
			}
			if ts.After(maxT) {
				maxT = ts
			}
			if tr.Y[i] > maxV {
				maxV = tr.Y[i]
			}
			chart.PushDataSet(name, tslc.TimePoint{Time: ts, Value: tr.Y[i]})
		}
	}
	if minT.IsZero() {
		return chartTitleStyle.Render("Chart") + "\n(no data)"
	}
	if maxV <= 0 {
		maxV = 1
	}
	chart.SetTimeRange(minT, maxT)
	chart.SetViewTimeRange(minT, maxT)
	chart.SetYRange(0, maxV)
	chart.SetViewYRange(0, maxV)
	chart.DrawBrailleAll()
	return header + chart.View()
}

// renderBars keeps the simple label+bar form for categorical specs.
func renderBars(spec api.ChartSpec, width, height int) string {
	tr := spec.Data[0]
	maxV := 0.0
	for _, v := range tr.Y {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	lines := make([]string, 0, len(tr.X)+1)
	if spec.Layout.Title != "" {
		lines = append(lines, chartTitleStyle.Render(ansi.Truncate(spec.Layout.Title, width, "")))
	}
	labelW := 14
	barW := width - labelW - 10
	if barW < 4 {
		barW = 4
	}
	barStyle := lipgloss.NewStyle().Foreground(traceColors[0])
	for i, label := range tr.X {
		if i >= len(tr.Y) || len(lines) >= height {
			break
		}
		w := int((tr.Y[i] / maxV) * float64(barW))
		if w < 1 && tr.Y[i] > 0 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			padCell(ansi.Truncate(label, labelW, ""), labelW),
			barStyle.Render(strings.Repeat("█", w)),
			chartLabelStyle.Render(compactValue(tr.Y[i]))))
	}
	return strings.Join(lines, "\n")
}

func compactValue(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// parseChartTime accepts the date shapes the backend emits; purely
// categorical X values fall back to index spacing so a spec without real
// dates still plots.
func parseChartTime(x string, index int) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.Parse(layout, x); err == nil {
			return ts, true
		}
	}
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(index) * 24 * time.Hour), true
}
