package tabs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/api"
	"gridscope/internal/config"
	"gridscope/internal/prefs"
	"gridscope/internal/realtime"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{BaseURL: "http://127.0.0.1:8080", Timeout: time.Second},
		UI:     config.UIConfig{Density: 100, BuildingType: "all", TimeRange: "7d", Theme: "dark"},
		Retry:  config.RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond},
	}
}

func testModel(t *testing.T, tab core.Tab) *core.Model {
	t.Helper()
	reg := core.NewTabRegistry()
	if err := reg.Register(tab); err != nil {
		t.Fatalf("register: %v", err)
	}
	session := core.NewSession(api.New("http://127.0.0.1:1", time.Second), nil, testConfig(), &prefs.Store{Dir: t.TempDir()})
	m := core.NewModel(session, reg, core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil))
	return &m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildingsDensityDebounce(t *testing.T) {
	tab := NewBuildingsTab(50, "all")
	m := testModel(t, tab)

	// Two quick presses: only the second timer may fetch.
	cmd1 := tab.Update(m, keyMsg("+"))
	if cmd1 == nil {
		t.Fatalf("density nudge should arm a debounce timer")
	}
	_ = tab.Update(m, keyMsg("+"))
	if tab.Density() != 60 {
		t.Fatalf("density = %d, want 60", tab.Density())
	}

	// First timer fires with a superseded sequence: no fetch.
	if cmd := tab.Update(m, densityDebounceMsg{seq: 1}); cmd != nil {
		t.Fatalf("superseded debounce tick must not fetch")
	}
	// Latest timer fires: refresh requested.
	cmd := tab.Update(m, densityDebounceMsg{seq: 2})
	if cmd == nil {
		t.Fatalf("settled debounce tick should fetch")
	}
	if msg, ok := cmd().(core.RefreshTabMsg); !ok || msg.Tab != core.TabBuildings {
		t.Fatalf("expected RefreshTabMsg for buildings, got %#v", cmd())
	}
}

func TestBuildingsDensityClamps(t *testing.T) {
	tab := NewBuildingsTab(100, "all")
	m := testModel(t, tab)
	if cmd := tab.Update(m, keyMsg("+")); cmd != nil {
		t.Fatalf("nudge past 100 should be a no-op")
	}
	if tab.Density() != 100 {
		t.Fatalf("density = %d, want 100", tab.Density())
	}
}

func TestBuildingsHeatmapToggleNoFetch(t *testing.T) {
	tab := NewBuildingsTab(100, "all")
	m := testModel(t, tab)
	if cmd := tab.Update(m, keyMsg("h")); cmd != nil {
		t.Fatalf("heatmap toggle must not trigger a fetch")
	}
}

func TestBuildingsTypeFilterFetchesImmediately(t *testing.T) {
	tab := NewBuildingsTab(100, "all")
	m := testModel(t, tab)
	cmd := tab.Update(m, keyMsg("f"))
	if cmd == nil {
		t.Fatalf("type change should refresh immediately")
	}
	if msg, ok := cmd().(core.RefreshTabMsg); !ok || msg.Tab != core.TabBuildings {
		t.Fatalf("expected RefreshTabMsg, got %#v", cmd())
	}
	if tab.BuildingType() != "residential" {
		t.Fatalf("type = %q, want residential", tab.BuildingType())
	}
}

func TestConsumptionRangeCycles(t *testing.T) {
	tab := NewConsumptionTab("7d", "all")
	m := testModel(t, tab)
	cmd := tab.Update(m, keyMsg("]"))
	if cmd == nil {
		t.Fatalf("range change should refresh immediately")
	}
	if tab.Range() != "30d" {
		t.Fatalf("range = %q, want 30d", tab.Range())
	}
	_ = tab.Update(m, keyMsg("["))
	_ = tab.Update(m, keyMsg("["))
	if tab.Range() != "1y" {
		t.Fatalf("range after wrap = %q, want 1y", tab.Range())
	}
}

func TestTypeFilterCycleReachesEveryType(t *testing.T) {
	tab := NewConsumptionTab("7d", "all")
	m := testModel(t, tab)
	want := []string{"all", "residential", "commercial", "industrial", "office"}
	seen := map[string]bool{tab.BuildingType(): true}
	for i := 0; i < len(want); i++ {
		_ = tab.Update(m, keyMsg("f"))
		seen[tab.BuildingType()] = true
	}
	for _, bt := range want {
		if !seen[bt] {
			t.Fatalf("type %q unreachable via cycling; saw %v", bt, seen)
		}
	}
	if tab.BuildingType() != "all" {
		t.Fatalf("full cycle should wrap back to all, got %q", tab.BuildingType())
	}
}

func TestConsumptionStoresChartsOnLoad(t *testing.T) {
	tab := NewConsumptionTab("7d", "all")
	m := testModel(t, tab)
	charts := map[string]api.ChartSpec{
		"daily": {Data: []api.Trace{{Type: "scatter", Name: "kWh", X: []string{"2024-01-01"}, Y: []float64{42}}}},
	}
	_ = tab.Update(m, core.DataLoadedMsg{Tab: core.TabConsumption, Data: charts})
	out := tab.Build(m).Render(80, 24)
	if !strings.Contains(out, "daily") {
		t.Fatalf("chart pane missing from build output")
	}
}

func TestAnalysisCompleteEventAppendsEntry(t *testing.T) {
	tab := NewAnalysisTab()
	m := testModel(t, tab)
	payload, _ := json.Marshal(realtime.AnalysisPayload{Question: "q", Analysis: "industrial zones dominate"})
	_ = tab.Update(m, core.RealtimeEventMsg{Event: realtime.Event{Type: realtime.EventAnalysisComplete, Payload: payload}})
	if len(tab.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(tab.entries))
	}
	e := tab.entries[0]
	if e.Role != "assistant" || e.Content != "industrial zones dominate" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.ID == "" {
		t.Fatalf("entry should carry a uuid")
	}
}

func TestAnalysisErrorEvent(t *testing.T) {
	tab := NewAnalysisTab()
	m := testModel(t, tab)
	payload, _ := json.Marshal(realtime.ErrorPayload{Error: "model overloaded"})
	_ = tab.Update(m, core.RealtimeEventMsg{Event: realtime.Event{Type: realtime.EventAnalysisError, Payload: payload}})
	if len(tab.entries) != 1 || !tab.entries[0].IsErr {
		t.Fatalf("expected one error entry, got %+v", tab.entries)
	}
	if tab.waiting {
		t.Fatalf("error should clear the waiting flag")
	}
}

func TestAnalysisDisconnectUnblocksPrompt(t *testing.T) {
	tab := NewAnalysisTab()
	m := testModel(t, tab)
	tab.input.SetValue("why is zone 3 spiking")
	if cmd := tab.Update(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("submit should produce a command")
	}
	if !tab.waiting {
		t.Fatalf("submit should set the waiting flag")
	}

	_ = tab.Update(m, core.ConnectionMsg{Connected: false})
	if tab.waiting {
		t.Fatalf("disconnect should clear the waiting flag")
	}
	last := tab.entries[len(tab.entries)-1]
	if !last.IsErr {
		t.Fatalf("disconnect should leave an inline error entry, got %+v", last)
	}

	tab.input.SetValue("try again")
	if cmd := tab.Update(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("resubmit after disconnect should not be blocked")
	}
}

func TestAnalysisEmptySubmitIsNoop(t *testing.T) {
	tab := NewAnalysisTab()
	m := testModel(t, tab)
	if cmd := tab.Update(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("empty question should not submit")
	}
	if len(tab.entries) != 0 {
		t.Fatalf("empty question appended an entry")
	}
}

func TestSettingsImportMergesPartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	tab := NewSettingsTab()
	tab.chat.Model = "mistral"
	tab.chat.HistoryLimit = 50
	m := testModel(t, tab)

	// Only temperature present: everything else must keep its value.
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte(`{"temperature": 1.5}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = tab.Update(m, keyMsg("i"))
	if tab.chat.Temperature != 1.5 {
		t.Fatalf("temperature = %v, want 1.5", tab.chat.Temperature)
	}
	if tab.chat.Model != "mistral" || tab.chat.HistoryLimit != 50 {
		t.Fatalf("missing keys overwrote prior values: %+v", tab.chat)
	}
}

func TestSettingsImportRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	tab := NewSettingsTab()
	before := tab.chat
	m := testModel(t, tab)
	if err := os.WriteFile(filepath.Join(dir, settingsFile), []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := tab.Update(m, keyMsg("i"))
	if cmd == nil {
		t.Fatalf("bad JSON should surface an error command")
	}
	if tab.chat != before {
		t.Fatalf("bad JSON modified settings: %+v", tab.chat)
	}
}

func TestSettingsTemperatureClamps(t *testing.T) {
	tab := NewSettingsTab()
	m := testModel(t, tab)
	tab.chat.Temperature = 1.95
	_ = tab.Update(m, keyMsg("+"))
	_ = tab.Update(m, keyMsg("+"))
	if tab.chat.Temperature != 2 {
		t.Fatalf("temperature = %v, want clamp at 2", tab.chat.Temperature)
	}
}

func TestOverviewLoadStartsCounters(t *testing.T) {
	tab := NewOverviewTab()
	m := testModel(t, tab)
	payload := overviewPayload{
		summary: api.Summary{TotalBuildings: 120, TotalConsumption: 4800, TotalDataPoints: 9000},
		charts:  map[string]api.ChartSpec{},
	}
	cmd := tab.Update(m, core.DataLoadedMsg{Tab: core.TabOverview, Data: payload})
	if cmd == nil {
		t.Fatalf("load should start the counter ticker")
	}
	if !tab.buildings.Running() {
		t.Fatalf("buildings counter not animating")
	}
	// After the duration the counter settles on the target.
	got := tab.buildings.Value(time.Now().Add(2 * counterDuration))
	if got != 120 {
		t.Fatalf("settled counter = %v, want 120", got)
	}
}

func TestPaneHostSelection(t *testing.T) {
	m := testModel(t, NewOverviewTab())
	host := NewPaneHost(
		NewStaticPane("a", "A", "pane:x:a", "left", 5),
		NewStaticPane("b", "B", "pane:x:b", "right", 5),
	)
	handled, _ := host.HandlePaneKey(m, keyMsg("x"))
	if handled {
		t.Fatalf("unbound key should pass through")
	}
	handled, _ = host.HandlePaneKey(m, tea.KeyMsg{Type: tea.KeyRight})
	if !handled {
		t.Fatalf("arrow key should move selection")
	}
	if host.ActivePaneTitle() != "B" {
		t.Fatalf("active pane = %q, want B", host.ActivePaneTitle())
	}
}
