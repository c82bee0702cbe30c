package tabs

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/api"
	"gridscope/internal/export"
	"gridscope/internal/format"
	"gridscope/widgets"
)

type dataPayload struct {
	summary api.Summary
}

type ingestResultMsg struct {
	info api.DataInfo
	err  error
}

type ragResultMsg struct {
	update api.RAGUpdate
	err    error
}

// DataTab manages the backend dataset: ingestion trigger, summary, knowledge
// base reindex and bulk CSV exports.
type DataTab struct {
	host     PaneHost
	summary  *summaryPane
	lastInfo api.DataInfo
}

func NewDataTab() *DataTab {
	sp := &summaryPane{}
	help := NewStaticPane("actions", "Actions", "pane:data:actions",
		"l  load dataset on the backend\nu  rebuild the knowledge base index\ne  export summary JSON\nc  export consumption CSV\nb  export buildings CSV", 12)
	return &DataTab{
		host:    NewPaneHost(sp, help),
		summary: sp,
	}
}

func (t *DataTab) ID() core.TabID          { return core.TabData }
func (t *DataTab) Title() string           { return "Data" }
func (t *DataTab) Scope() string           { return "tab:data" }
func (t *DataTab) ActivePaneTitle() string { return t.host.ActivePaneTitle() }

func (t *DataTab) HandlePaneKey(m *core.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	return t.host.HandlePaneKey(m, msg)
}

func (t *DataTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabData)
	session := m.Session()
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		var summary api.Summary
		err := session.Retry.Do(ctx, func(ctx context.Context) error {
			var err error
			summary, err = session.API.Summary(ctx)
			return err
		})
		return core.DataLoadedMsg{Tab: core.TabData, Gen: gen, Data: dataPayload{summary: summary}, Err: err}
	}
}

func (t *DataTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		if payload, ok := msg.Data.(dataPayload); ok {
			t.summary.set(payload.summary, m.Session().DatasetLoaded)
		}
		return nil
	case ingestResultMsg:
		if msg.err != nil {
			return tea.Batch(core.ErrorCmd(msg.err), m.Toast("Load failed: "+msg.err.Error(), core.ToastError))
		}
		t.lastInfo = msg.info
		return func() tea.Msg { return core.DatasetReloadedMsg{} }
	case ragResultMsg:
		if msg.err != nil {
			return tea.Batch(core.ErrorCmd(msg.err), m.Toast("Reindex failed: "+msg.err.Error(), core.ToastError))
		}
		return m.Toast(fmt.Sprintf("Indexed %d documents", msg.update.Indexed), core.ToastSuccess)
	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			return t.loadDataset(m)
		case "u":
			return t.updateIndex(m)
		case "e":
			return t.exportSummary()
		case "c":
			return t.exportConsumption(m)
		case "b":
			return t.exportBuildings(m)
		}
	}
	return nil
}

func (t *DataTab) loadDataset(m *core.Model) tea.Cmd {
	session := m.Session()
	return tea.Batch(core.StatusCmd("Loading dataset…"), func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		info, err := session.API.LoadData(ctx)
		return ingestResultMsg{info: info, err: err}
	})
}

func (t *DataTab) updateIndex(m *core.Model) tea.Cmd {
	session := m.Session()
	return tea.Batch(core.StatusCmd("Rebuilding index…"), func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		update, err := session.API.UpdateRAG(ctx)
		return ragResultMsg{update: update, err: err}
	})
}

func (t *DataTab) exportSummary() tea.Cmd {
	if !t.summary.have {
		return core.StatusCmd("Nothing to export yet")
	}
	s := t.summary.summary
	name := fmt.Sprintf("summary-%s.json", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		err = export.WriteSettingsJSON(f, map[string]any{
			"total_buildings":   s.TotalBuildings,
			"total_consumption": s.TotalConsumption,
			"avg_consumption":   s.AvgConsumption,
			"total_data_points": s.TotalDataPoints,
		})
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + name}
	}
}

// exportConsumption fetches the default-range series fresh so the dump does
// not depend on the consumption tab having been visited.
func (t *DataTab) exportConsumption(m *core.Model) tea.Cmd {
	session := m.Session()
	name := fmt.Sprintf("consumption-%s.csv", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		charts, err := session.API.ConsumptionCharts(ctx, api.ConsumptionQuery{})
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		traces := make([]api.Trace, 0, 4)
		for _, spec := range charts {
			traces = append(traces, spec.Data...)
		}
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

func (t *DataTab) exportBuildings(m *core.Model) tea.Cmd {
	session := m.Session()
	name := fmt.Sprintf("buildings-%s.csv", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		data, err := session.API.Buildings(ctx, api.BuildingsQuery{Density: api.DefaultDensity, Type: api.DefaultType})
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		f, err := os.Create(name)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		if err := export.WriteBuildingsCSV(f, data.Markers); err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + name}
	}
}

func (t *DataTab) Build(m *core.Model) widgets.Widget {
	return widgets.HStack{
		Widgets: []widgets.Widget{t.host.BuildPane("summary"), t.host.BuildPane("actions")},
		Ratios:  []float64{0.6, 0.4},
		Gap:     1,
	}
}

// summaryPane shows the dataset aggregates.
type summaryPane struct {
	summary api.Summary
	have    bool
	loaded  bool
}

func (p *summaryPane) set(s api.Summary, datasetLoaded bool) {
	p.summary = s
	p.have = true
	p.loaded = datasetLoaded
}

func (p *summaryPane) ID() string      { return "summary" }
func (p *summaryPane) Title() string   { return "Dataset" }
func (p *summaryPane) Scope() string   { return "pane:data:summary" }
func (p *summaryPane) Focusable() bool { return false }
func (p *summaryPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	return p, nil
}

func (p *summaryPane) View(width, height int, selected, focused bool) string {
	content := "No summary yet; press l to load the dataset."
	if p.have {
		content = widgets.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Buildings", fmt.Sprintf("%d", p.summary.TotalBuildings)},
				{"Total consumption", format.Number(p.summary.TotalConsumption, "kWh", 1)},
				{"Avg per building", format.Number(p.summary.AvgConsumption, "kWh", 1)},
				{"Data points", fmt.Sprintf("%d", p.summary.TotalDataPoints)},
			},
		}.Render(width-4, height-2)
	}
	return widgets.Pane{Title: p.Title(), Height: height, Content: content, Selected: selected, Focused: focused}.Render(width, height)
}
