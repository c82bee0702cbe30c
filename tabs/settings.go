package tabs

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/export"
	"gridscope/internal/prefs"
	"gridscope/widgets"
)

const settingsFile = "gridscope-settings.json"

type settingsPayload struct {
	theme string
	chat  prefs.ChatConfig
}

// SettingsTab edits the theme and the chat knobs. Changes persist to the
// preference store immediately; export/import go through a JSON file in the
// working directory.
type SettingsTab struct {
	theme string
	chat  prefs.ChatConfig
}

func NewSettingsTab() *SettingsTab {
	return &SettingsTab{theme: "dark", chat: prefs.DefaultChatConfig()}
}

func (t *SettingsTab) ID() core.TabID { return core.TabSettings }
func (t *SettingsTab) Title() string  { return "Settings" }
func (t *SettingsTab) Scope() string  { return "tab:settings" }

// Fetch reads the persisted preferences; there is no backend call here.
func (t *SettingsTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabSettings)
	store := m.Session().Prefs
	fallback := m.Session().Config.UI.Theme
	return func() tea.Msg {
		payload := settingsPayload{theme: fallback, chat: prefs.DefaultChatConfig()}
		if store != nil {
			payload.theme = store.LoadTheme(fallback)
			payload.chat = store.LoadChatConfig()
		}
		return core.DataLoadedMsg{Tab: core.TabSettings, Gen: gen, Data: payload}
	}
}

func (t *SettingsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		if payload, ok := msg.Data.(settingsPayload); ok {
			t.theme = payload.theme
			t.chat = payload.chat
			core.SetTheme(t.theme)
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			return t.toggleTheme(m)
		case "+", "=":
			return t.nudgeTemperature(m, 0.1)
		case "-", "_":
			return t.nudgeTemperature(m, -0.1)
		case "[":
			return t.nudgeHistory(m, -5)
		case "]":
			return t.nudgeHistory(m, 5)
		case "c":
			t.chat.ShowContext = !t.chat.ShowContext
			return t.saveChat(m)
		case "e":
			return t.exportSettings(m)
		case "i":
			return t.importSettings(m)
		}
	}
	return nil
}

func (t *SettingsTab) toggleTheme(m *core.Model) tea.Cmd {
	if t.theme == "dark" {
		t.theme = "light"
	} else {
		t.theme = "dark"
	}
	core.SetTheme(t.theme)
	if store := m.Session().Prefs; store != nil {
		if err := store.SaveTheme(t.theme); err != nil {
			return core.ErrorCmd(err)
		}
	}
	return m.Toast("Theme: "+t.theme, core.ToastInfo)
}

func (t *SettingsTab) nudgeTemperature(m *core.Model, delta float64) tea.Cmd {
	next := t.chat.Temperature + delta
	if next < 0 {
		next = 0
	}
	if next > 2 {
		next = 2
	}
	t.chat.Temperature = next
	return t.saveChat(m)
}

func (t *SettingsTab) nudgeHistory(m *core.Model, delta int) tea.Cmd {
	next := t.chat.HistoryLimit + delta
	if next < 5 {
		next = 5
	}
	if next > 100 {
		next = 100
	}
	t.chat.HistoryLimit = next
	return t.saveChat(m)
}

func (t *SettingsTab) saveChat(m *core.Model) tea.Cmd {
	if store := m.Session().Prefs; store != nil {
		if err := store.SaveChatConfig(t.chat); err != nil {
			return core.ErrorCmd(err)
		}
	}
	return nil
}

func (t *SettingsTab) exportSettings(m *core.Model) tea.Cmd {
	cfg := m.Session().Config
	dump := map[string]any{
		"theme":         t.theme,
		"model":         t.chat.Model,
		"temperature":   t.chat.Temperature,
		"show_context":  t.chat.ShowContext,
		"history_limit": t.chat.HistoryLimit,
		"density":       cfg.UI.Density,
		"building_type": cfg.UI.BuildingType,
		"time_range":    cfg.UI.TimeRange,
	}
	return func() tea.Msg {
		f, err := os.Create(settingsFile)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		if err := export.WriteSettingsJSON(f, dump); err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + settingsFile}
	}
}

// importSettings merges the JSON file over current values: keys that are
// absent keep their prior value, a parse failure only reports an error.
func (t *SettingsTab) importSettings(m *core.Model) tea.Cmd {
	raw, err := os.ReadFile(settingsFile)
	if err != nil {
		return tea.Batch(core.ErrorCmd(err), m.Toast("Import failed", core.ToastError))
	}
	merged := struct {
		Theme        *string  `json:"theme"`
		Model        *string  `json:"model"`
		Temperature  *float64 `json:"temperature"`
		ShowContext  *bool    `json:"show_context"`
		HistoryLimit *int     `json:"history_limit"`
	}{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return tea.Batch(core.ErrorCmd(err), m.Toast("Import failed: invalid JSON", core.ToastError))
	}
	if merged.Theme != nil {
		t.theme = *merged.Theme
		core.SetTheme(t.theme)
		if store := m.Session().Prefs; store != nil {
			_ = store.SaveTheme(t.theme)
		}
	}
	if merged.Model != nil {
		t.chat.Model = *merged.Model
	}
	if merged.Temperature != nil {
		t.chat.Temperature = *merged.Temperature
	}
	if merged.ShowContext != nil {
		t.chat.ShowContext = *merged.ShowContext
	}
	if merged.HistoryLimit != nil {
		t.chat.HistoryLimit = *merged.HistoryLimit
	}
	return tea.Batch(t.saveChat(m), m.Toast("Settings imported", core.ToastSuccess))
}

func (t *SettingsTab) Build(m *core.Model) widgets.Widget {
	appearance := framed{
		title: "Appearance",
		inner: textWidget{text: fmt.Sprintf("Theme: %s\n\nt toggles dark/light", t.theme)},
	}
	chat := framed{
		title: "Chat",
		inner: textWidget{text: fmt.Sprintf(
			"Model:         %s\nTemperature:   %.1f  (+ / -)\nShow context:  %s  (c toggles)\nHistory limit: %d  ([ / ])",
			t.chat.Model, t.chat.Temperature, onOff(t.chat.ShowContext), t.chat.HistoryLimit,
		)},
	}
	files := framed{
		title: "Files",
		inner: textWidget{text: "e  export settings to " + settingsFile + "\ni  import settings from " + settingsFile},
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{appearance, chat, files},
		Ratios:  []float64{0.3, 0.4, 0.3},
	}
}
