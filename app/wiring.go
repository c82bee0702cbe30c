// Package app assembles the tabs, commands and modals into a runnable model.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/internal/config"
	"gridscope/screens"
	"gridscope/tabs"
)

func Tabs(cfg config.Config) []core.Tab {
	return []core.Tab{
		tabs.NewOverviewTab(),
		tabs.NewConsumptionTab(cfg.UI.TimeRange, cfg.UI.BuildingType),
		tabs.NewBuildingsTab(cfg.UI.Density, cfg.UI.BuildingType),
		tabs.NewAnalysisTab(),
		tabs.NewDataTab(),
		tabs.NewSettingsTab(),
	}
}

func ConfigureModel(m *core.Model) {
	if m == nil {
		return
	}
	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewCommandScreen(scope,
			func(query string) []screens.CommandOption {
				results := model.CommandRegistry().Search(query, scope, model)
				out := make([]screens.CommandOption, 0, len(results))
				for _, r := range results {
					out = append(out, screens.CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
				}
				return out
			},
			func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} },
		)
	}
	RegisterCommands(m.CommandRegistry())
}

func RegisterCommands(reg *core.CommandRegistry) {
	switchCmd := func(id core.TabID, name, desc string) core.Command {
		return core.Command{
			ID:          "switch-" + string(id),
			Name:        name,
			Description: desc,
			Scopes:      []string{"*"},
			Execute: func(m *core.Model) tea.Cmd {
				return core.SwitchTabCmd(id)
			},
		}
	}
	reg.Register(switchCmd(core.TabOverview, "Go to overview", "Dataset summary and charts"))
	reg.Register(switchCmd(core.TabConsumption, "Go to consumption", "Time-series consumption chart"))
	reg.Register(switchCmd(core.TabBuildings, "Go to buildings", "Building map and zones"))
	reg.Register(switchCmd(core.TabAnalysis, "Go to analysis", "Ask the energy analyst"))
	reg.Register(switchCmd(core.TabData, "Go to data", "Dataset management"))
	reg.Register(switchCmd(core.TabSettings, "Go to settings", "Theme and chat settings"))

	reg.Register(core.Command{
		ID:          "refresh-active",
		Name:        "Refresh active tab",
		Description: "Refetch the current tab's data",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			return core.RefreshTabCmd(m.ActiveTab())
		},
	})
	reg.Register(core.Command{
		ID:          "reload-dataset",
		Name:        "Reload dataset",
		Description: "Mark every tab stale and refetch",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			return func() tea.Msg { return core.DatasetReloadedMsg{} }
		},
	})
	reg.Register(core.Command{
		ID:          "toggle-theme",
		Name:        "Toggle theme",
		Description: "Switch between dark and light",
		Scopes:      []string{"*"},
		Execute: func(m *core.Model) tea.Cmd {
			next := "dark"
			if core.CurrentTheme().Name == "dark" {
				next = "light"
			}
			core.SetTheme(next)
			if store := m.Session().Prefs; store != nil {
				if err := store.SaveTheme(next); err != nil {
					return core.ErrorCmd(err)
				}
			}
			return core.StatusCmd("Theme: " + next)
		},
	})
}
