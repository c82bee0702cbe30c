package tabs

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/api"
	"gridscope/internal/export"
	"gridscope/widgets"
)

var consumptionRanges = []string{"7d", "30d", "90d", "1y"}

var buildingTypes = []string{"all", "residential", "commercial", "industrial", "office"}

// ConsumptionTab plots the consumption time series. Range and type are
// discrete controls: every change refetches immediately.
type ConsumptionTab struct {
	reg       *widgets.Registry
	rangeIdx  int
	typeIdx   int
	charts    map[string]api.ChartSpec
	chartKeys []string
	have      bool
}

func NewConsumptionTab(defaultRange, defaultType string) *ConsumptionTab {
	t := &ConsumptionTab{reg: widgets.NewRegistry()}
	for i, r := range consumptionRanges {
		if r == defaultRange {
			t.rangeIdx = i
		}
	}
	for i, bt := range buildingTypes {
		if bt == defaultType {
			t.typeIdx = i
		}
	}
	return t
}

func (t *ConsumptionTab) ID() core.TabID  { return core.TabConsumption }
func (t *ConsumptionTab) Title() string   { return "Consumption" }
func (t *ConsumptionTab) Scope() string   { return "tab:consumption" }
func (t *ConsumptionTab) InvalidateSize() { t.reg.InvalidateSize() }

func (t *ConsumptionTab) Range() string        { return consumptionRanges[t.rangeIdx] }
func (t *ConsumptionTab) BuildingType() string { return buildingTypes[t.typeIdx] }

func (t *ConsumptionTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabConsumption)
	session := m.Session()
	query := api.ConsumptionQuery{Range: t.Range(), Type: t.BuildingType()}
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		var charts map[string]api.ChartSpec
		err := session.Retry.Do(ctx, func(ctx context.Context) error {
			var err error
			charts, err = session.API.ConsumptionCharts(ctx, query)
			return err
		})
		return core.DataLoadedMsg{Tab: core.TabConsumption, Gen: gen, Data: charts, Err: err}
	}
}

func (t *ConsumptionTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		charts, ok := msg.Data.(map[string]api.ChartSpec)
		if !ok {
			return nil
		}
		t.charts = charts
		t.have = true
		keys := make([]string, 0, len(charts))
		for k := range charts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.chartKeys = keys
		for _, k := range keys {
			t.reg.Upsert("consumption:"+k, widgets.Chart{Spec: charts[k]})
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			t.rangeIdx = (t.rangeIdx + len(consumptionRanges) - 1) % len(consumptionRanges)
			return core.RefreshTabCmd(core.TabConsumption)
		case "]":
			t.rangeIdx = (t.rangeIdx + 1) % len(consumptionRanges)
			return core.RefreshTabCmd(core.TabConsumption)
		case "f":
			t.typeIdx = (t.typeIdx + 1) % len(buildingTypes)
			return core.RefreshTabCmd(core.TabConsumption)
		case "e":
			return t.exportCSV(m)
		}
	}
	return nil
}

func (t *ConsumptionTab) exportCSV(m *core.Model) tea.Cmd {
	if !t.have {
		return core.StatusCmd("Nothing to export yet")
	}
	traces := make([]api.Trace, 0, 4)
	for _, k := range t.chartKeys {
		traces = append(traces, t.charts[k].Data...)
	}
	name := fmt.Sprintf("consumption-%s.csv", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		if err := export.WriteConsumptionCSV(f, traces); err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + name}
	}
}

func (t *ConsumptionTab) Build(m *core.Model) widgets.Widget {
	header := framed{
		title: "Controls",
		inner: textWidget{text: fmt.Sprintf(
			"Range: %s   ([ / ] to cycle)\nType:  %s   (f to cycle)\ne exports the plotted series as CSV",
			t.Range(), t.BuildingType(),
		)},
	}
	if len(t.chartKeys) == 0 {
		empty := framed{title: "Consumption", badge: loadBadge(m, core.TabConsumption), inner: textWidget{text: "No chart yet"}}
		return widgets.VStack{Widgets: []widgets.Widget{header, empty}, Ratios: []float64{0.25, 0.75}}
	}
	charts := make([]widgets.Widget, 0, len(t.chartKeys))
	for _, k := range t.chartKeys {
		charts = append(charts, framed{
			title: k,
			badge: loadBadge(m, core.TabConsumption),
			inner: registryWidget{reg: t.reg, id: "consumption:" + k},
		})
	}
	var body widgets.Widget = charts[0]
	if len(charts) > 1 {
		body = widgets.HStack{Widgets: charts, Gap: 1}
	}
	return widgets.VStack{Widgets: []widgets.Widget{header, body}, Ratios: []float64{0.22, 0.78}}
}
