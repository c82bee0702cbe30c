package core

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		// Plain letters stay out of tab:analysis so they can be typed into
		// the question prompt; ctrl+c always quits via the router.
		{Keys: []string{"q", "ctrl+c"}, Action: "quit", Description: "quit", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"r"}, Action: "refresh", Description: "refresh tab", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"ctrl+r"}, Action: "refresh", Description: "refresh tab", Scopes: []string{"tab:analysis"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"left"}, Action: "pane-nav", Description: "pane prev", Scopes: []string{"*"}},
		{Keys: []string{"right"}, Action: "pane-nav", Description: "pane next", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: "pane-focus", Description: "focus pane", Scopes: []string{"*"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "overview", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "consumption", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"3"}, Action: "switch-tab-3", Description: "buildings", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"4"}, Action: "switch-tab-4", Description: "analysis", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"5"}, Action: "switch-tab-5", Description: "data", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"6"}, Action: "switch-tab-6", Description: "settings", Scopes: []string{"tab:overview", "tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"esc"}, Action: "leave-analysis", Description: "back to overview", Scopes: []string{"tab:analysis"}},
		{Keys: []string{"h"}, Action: "toggle-heatmap", Description: "heatmap", Scopes: []string{"tab:buildings"}},
		{Keys: []string{"e"}, Action: "export", Description: "export", Scopes: []string{"tab:consumption", "tab:buildings", "tab:data", "tab:settings"}},
		{Keys: []string{"ctrl+e"}, Action: "export", Description: "export transcript", Scopes: []string{"tab:analysis"}},
		{Keys: []string{"t"}, Action: "toggle-theme", Description: "theme", Scopes: []string{"tab:settings"}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:command"}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:command"}},
	}
}
