package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/app"
	"gridscope/core"
	"gridscope/internal/api"
	"gridscope/internal/config"
	"gridscope/internal/prefs"
	"gridscope/internal/realtime"
)

func main() {
	if os.Getenv("GRIDSCOPE_DEBUG") != "" {
		f, err := tea.LogToFile("gridscope-debug.log", "gridscope")
		if err != nil {
			log.Fatalf("debug log: %v", err)
		}
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store := &prefs.Store{}
	core.SetTheme(store.LoadTheme(cfg.UI.Theme))

	client := api.New(cfg.Server.BaseURL, cfg.Server.Timeout)
	rt := realtime.New(cfg.Server.WebsocketURL, cfg.Server.ReconnectDelay)
	rt.Start()
	defer rt.Stop()

	session := core.NewSession(client, rt, cfg, store)

	registry := core.NewTabRegistry()
	for _, t := range app.Tabs(cfg) {
		if err := registry.Register(t); err != nil {
			log.Fatalf("tabs: %v", err)
		}
	}

	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	commands := core.NewCommandRegistry(nil)
	model := core.NewModel(session, registry, keys, commands)
	app.ConfigureModel(&model)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridscope: %v\n", err)
		os.Exit(1)
	}
}
