// Package prefs persists small UI preferences between sessions. Each key is
// one JSON file under the user config dir; a missing or partial file falls
// back to defaults rather than erroring.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Stored preference keys.
const (
	themeFile      = "dashboard-theme.json"
	chatConfigFile = "dashboard-chat-config.json"
)

// ChatConfig tunes the analysis chat.
type ChatConfig struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	ShowContext  bool    `json:"show_context"`
	HistoryLimit int     `json:"history_limit"`
}

// DefaultChatConfig is applied when nothing is stored yet.
func DefaultChatConfig() ChatConfig {
	return ChatConfig{Model: "default", Temperature: 0.7, ShowContext: true, HistoryLimit: 50}
}

// Store reads and writes preference files. Dir defaults to the user config
// dir; tests point it somewhere else.
type Store struct {
	Dir string
}

func (s Store) dir() (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", err
		}
		return s.Dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "gridscope")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveTheme persists the selected theme name.
func (s Store) SaveTheme(name string) error {
	return s.writeJSON(themeFile, map[string]string{"theme": name})
}

// LoadTheme returns the stored theme or the given fallback.
func (s Store) LoadTheme(fallback string) string {
	var out map[string]string
	if err := s.readJSON(themeFile, &out); err != nil {
		return fallback
	}
	if name, ok := out["theme"]; ok && name != "" {
		return name
	}
	return fallback
}

// SaveChatConfig persists the chat settings.
func (s Store) SaveChatConfig(cfg ChatConfig) error {
	return s.writeJSON(chatConfigFile, cfg)
}

// LoadChatConfig returns stored chat settings merged over defaults: keys
// absent from the file keep their default value.
func (s Store) LoadChatConfig() ChatConfig {
	cfg := DefaultChatConfig()
	path, err := s.dir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(path, chatConfigFile))
	if err != nil {
		return cfg
	}
	// Unmarshal into the defaults so missing keys stay untouched.
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultChatConfig()
	}
	return cfg
}

func (s Store) writeJSON(name string, v any) error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s Store) readJSON(name string, v any) error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
