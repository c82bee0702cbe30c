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
	"gridscope/internal/format"
	"gridscope/widgets"
)

const (
	densityStep     = 5
	densityDebounce = 400 * time.Millisecond
)

type buildingsPayload struct {
	markers api.MapData
	heat    api.HeatmapData
	zones   api.ZoneData
	stats   api.MapStats
}

type densityDebounceMsg struct {
	seq int
}

// BuildingsTab shows the marker map with the heatmap overlay, zone analysis
// and coverage statistics. The density slider debounces to one fetch per
// settled change; the type filter fetches immediately.
type BuildingsTab struct {
	reg      *widgets.Registry
	density  int
	typeIdx  int
	showHeat bool
	data     buildingsPayload
	have     bool

	// Monotonic key-press sequence; only the latest debounce tick fetches.
	debounceSeq int
}

func NewBuildingsTab(defaultDensity int, defaultType string) *BuildingsTab {
	t := &BuildingsTab{reg: widgets.NewRegistry(), density: defaultDensity}
	if t.density < 0 || t.density > 100 {
		t.density = api.DefaultDensity
	}
	for i, bt := range buildingTypes {
		if bt == defaultType {
			t.typeIdx = i
		}
	}
	return t
}

func (t *BuildingsTab) ID() core.TabID  { return core.TabBuildings }
func (t *BuildingsTab) Title() string   { return "Buildings" }
func (t *BuildingsTab) Scope() string   { return "tab:buildings" }
func (t *BuildingsTab) InvalidateSize() { t.reg.InvalidateSize() }

func (t *BuildingsTab) Density() int         { return t.density }
func (t *BuildingsTab) BuildingType() string { return buildingTypes[t.typeIdx] }

func (t *BuildingsTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabBuildings)
	session := m.Session()
	query := api.BuildingsQuery{Density: t.density, Type: t.BuildingType()}
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		var payload buildingsPayload
		err := session.Retry.Do(ctx, func(ctx context.Context) error {
			var err error
			if payload.markers, err = session.API.Buildings(ctx, query); err != nil {
				return err
			}
			if payload.heat, err = session.API.ConsumptionHeatmap(ctx); err != nil {
				return err
			}
			if payload.zones, err = session.API.MapZones(ctx); err != nil {
				return err
			}
			payload.stats, err = session.API.MapStatistics(ctx)
			return err
		})
		return core.DataLoadedMsg{Tab: core.TabBuildings, Gen: gen, Data: payload, Err: err}
	}
}

func (t *BuildingsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		payload, ok := msg.Data.(buildingsPayload)
		if !ok {
			return nil
		}
		t.data = payload
		t.have = true
		t.upsertWidgets()
		return nil
	case densityDebounceMsg:
		if msg.seq != t.debounceSeq {
			// A later key press superseded this timer.
			return nil
		}
		return core.RefreshTabCmd(core.TabBuildings)
	case tea.KeyMsg:
		switch msg.String() {
		case "+", "=":
			return t.nudgeDensity(densityStep)
		case "-", "_":
			return t.nudgeDensity(-densityStep)
		case "f":
			t.typeIdx = (t.typeIdx + 1) % len(buildingTypes)
			return core.RefreshTabCmd(core.TabBuildings)
		case "h":
			t.showHeat = !t.showHeat
			if t.have {
				t.upsertWidgets()
			}
			return nil
		case "e":
			return t.exportCSV()
		}
	}
	return nil
}

func (t *BuildingsTab) nudgeDensity(delta int) tea.Cmd {
	next := t.density + delta
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	if next == t.density {
		return nil
	}
	t.density = next
	t.debounceSeq++
	seq := t.debounceSeq
	return tea.Tick(densityDebounce, func(time.Time) tea.Msg {
		return densityDebounceMsg{seq: seq}
	})
}

func (t *BuildingsTab) upsertWidgets() {
	t.reg.Upsert("buildings:map", widgets.GeoMap{
		Markers:    t.data.markers.Markers,
		HeatPoints: t.data.heat.Points,
		ShowHeat:   t.showHeat,
		Legend:     widgets.MapLegend(len(t.data.markers.Markers), t.showHeat, t.density, t.BuildingType()),
	})
	t.reg.Upsert("buildings:zones", t.zonesTable())
}

func (t *BuildingsTab) zonesTable() widgets.Table {
	rows := make([][]string, 0, len(t.data.zones.Zones))
	for _, z := range t.data.zones.Zones {
		rows = append(rows, []string{
			z.Name,
			fmt.Sprintf("%d", z.BuildingCount),
			format.Number(z.TotalConsumption, "kWh", 1),
			z.DensityLevel,
		})
	}
	return widgets.Table{
		Headers: []string{"Zone", "Buildings", "Consumption", "Density"},
		Rows:    rows,
	}
}

func (t *BuildingsTab) exportCSV() tea.Cmd {
	if !t.have {
		return core.StatusCmd("Nothing to export yet")
	}
	markers := append([]api.Marker(nil), t.data.markers.Markers...)
	name := fmt.Sprintf("buildings-%s.csv", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		if err := export.WriteBuildingsCSV(f, markers); err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + name}
	}
}

func (t *BuildingsTab) Build(m *core.Model) widgets.Widget {
	controls := framed{
		title: "Controls",
		inner: textWidget{text: fmt.Sprintf(
			"Density: %d%%  (+ / - to adjust)\nType:    %s  (f to cycle)\nHeatmap: %s  (h toggles)\ne exports markers as CSV",
			t.density, t.BuildingType(), onOff(t.showHeat),
		)},
	}
	mapPane := framed{
		title: "Building Map",
		badge: loadBadge(m, core.TabBuildings),
		inner: registryWidget{reg: t.reg, id: "buildings:map"},
	}
	zonesPane := framed{
		title: "Zones",
		inner: registryWidget{reg: t.reg, id: "buildings:zones"},
	}
	statsPane := framed{
		title: "Coverage",
		inner: textWidget{text: t.statsText()},
	}
	right := widgets.VStack{
		Widgets: []widgets.Widget{controls, zonesPane, statsPane},
		Ratios:  []float64{0.3, 0.4, 0.3},
	}
	return widgets.HStack{
		Widgets: []widgets.Widget{mapPane, right},
		Ratios:  []float64{0.62, 0.38},
		Gap:     1,
	}
}

func (t *BuildingsTab) statsText() string {
	if !t.have {
		return "No statistics yet"
	}
	s := t.data.stats
	out := fmt.Sprintf("Buildings: %d\nValid coordinates: %d\nCoverage: %s",
		s.TotalBuildings, s.ValidCoordinates, format.Percentage(s.CoveragePercent, 1))
	types := make([]string, 0, len(s.ByType))
	for bt := range s.ByType {
		types = append(types, bt)
	}
	sort.Strings(types)
	for _, bt := range types {
		out += fmt.Sprintf("\n  %s: %d", bt, s.ByType[bt])
	}
	return out
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
