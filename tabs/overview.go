package tabs

import (
	"context"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/anim"
	"gridscope/internal/api"
	"gridscope/internal/format"
	"gridscope/widgets"
)

const counterDuration = 800 * time.Millisecond

type overviewPayload struct {
	summary api.Summary
	charts  map[string]api.ChartSpec
}

type overviewTickMsg struct{}

// OverviewTab shows the dataset summary with animated counters plus the
// backend's overview charts.
type OverviewTab struct {
	reg       *widgets.Registry
	summary   api.Summary
	chartKeys []string
	have      bool

	buildings   *anim.Tween
	consumption *anim.Tween
	dataPoints  *anim.Tween
}

func NewOverviewTab() *OverviewTab {
	return &OverviewTab{
		reg:         widgets.NewRegistry(),
		buildings:   anim.New(0, 0, counterDuration, anim.QuartEaseOut),
		consumption: anim.New(0, 0, counterDuration, anim.QuartEaseOut),
		dataPoints:  anim.New(0, 0, counterDuration, anim.QuartEaseOut),
	}
}

func (t *OverviewTab) ID() core.TabID  { return core.TabOverview }
func (t *OverviewTab) Title() string   { return "Overview" }
func (t *OverviewTab) Scope() string   { return "tab:overview" }
func (t *OverviewTab) InvalidateSize() { t.reg.InvalidateSize() }

func (t *OverviewTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabOverview)
	session := m.Session()
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		var payload overviewPayload
		err := session.Retry.Do(ctx, func(ctx context.Context) error {
			summary, err := session.API.Summary(ctx)
			if err != nil {
				return err
			}
			charts, err := session.API.OverviewCharts(ctx)
			if err != nil {
				return err
			}
			payload = overviewPayload{summary: summary, charts: charts}
			return nil
		})
		return core.DataLoadedMsg{Tab: core.TabOverview, Gen: gen, Data: payload, Err: err}
	}
}

func (t *OverviewTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		payload, ok := msg.Data.(overviewPayload)
		if !ok {
			return nil
		}
		now := time.Now()
		t.summary = payload.summary
		t.have = true
		t.buildings.Retarget(now, float64(payload.summary.TotalBuildings))
		t.consumption.Retarget(now, payload.summary.TotalConsumption)
		t.dataPoints.Retarget(now, float64(payload.summary.TotalDataPoints))

		keys := make([]string, 0, len(payload.charts))
		for k := range payload.charts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.chartKeys = keys
		for _, k := range keys {
			t.reg.Upsert("overview:"+k, widgets.Chart{Spec: payload.charts[k]})
		}
		return overviewTick()
	case overviewTickMsg:
		if t.buildings.Running() || t.consumption.Running() || t.dataPoints.Running() {
			return overviewTick()
		}
		return nil
	}
	return nil
}

func overviewTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return overviewTickMsg{}
	})
}

func (t *OverviewTab) Build(m *core.Model) widgets.Widget {
	counters := framed{
		title: "Summary",
		badge: loadBadge(m, core.TabOverview),
		inner: textWidget{text: t.counterText(m)},
	}
	if len(t.chartKeys) == 0 {
		return widgets.VStack{Widgets: []widgets.Widget{counters}}
	}
	charts := make([]widgets.Widget, 0, len(t.chartKeys))
	for _, k := range t.chartKeys {
		charts = append(charts, framed{title: k, inner: registryWidget{reg: t.reg, id: "overview:" + k}})
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{counters, widgets.HStack{Widgets: charts, Gap: 1}},
		Ratios:  []float64{0.3, 0.7},
	}
}

func (t *OverviewTab) counterText(m *core.Model) string {
	if !t.have {
		return "Waiting for backend…"
	}
	now := time.Now()
	cov := t.summary.GeographicCoverage
	lines := fmt.Sprintf(
		"Buildings:    %s\nConsumption:  %s\nAvg/building: %s\nData points:  %s\nCoverage:     %.2f..%.2f N, %.2f..%.2f E\nLast update:  %s",
		format.Number(t.buildings.Value(now), "", 0),
		format.Number(t.consumption.Value(now), "kWh", 1),
		format.Number(t.summary.AvgConsumption, "kWh", 1),
		format.Number(t.dataPoints.Value(now), "", 0),
		cov.South, cov.North, cov.West, cov.East,
		format.Datetime(m.Session().LastUpdate, format.DatetimeDefault),
	)
	return lines
}
