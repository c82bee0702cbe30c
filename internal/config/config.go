package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	UI     UIConfig
	Retry  RetryConfig
}

// ServerConfig points the client at the dashboard backend.
type ServerConfig struct {
	BaseURL        string
	WebsocketURL   string
	Timeout        time.Duration
	ReconnectDelay time.Duration
}

// UIConfig carries the default control values for the tabs.
type UIConfig struct {
	Density      int
	BuildingType string
	TimeRange    string
	Theme        string
}

// RetryConfig tunes the request retry helper.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Load reads configuration from file and env. Env var overrides use prefix
// GRIDSCOPE_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.base_url", "http://127.0.0.1:8080")
	v.SetDefault("server.websocket_url", "ws://127.0.0.1:8080/ws")
	v.SetDefault("server.timeout", "15s")
	v.SetDefault("server.reconnect_delay", "3s")
	v.SetDefault("ui.density", 100)
	v.SetDefault("ui.building_type", "all")
	v.SetDefault("ui.time_range", "7d")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.base_delay", "1s")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GRIDSCOPE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gridscope"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GRIDSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	c := Config{
		Server: ServerConfig{
			BaseURL:        v.GetString("server.base_url"),
			WebsocketURL:   v.GetString("server.websocket_url"),
			Timeout:        v.GetDuration("server.timeout"),
			ReconnectDelay: v.GetDuration("server.reconnect_delay"),
		},
		UI: UIConfig{
			Density:      v.GetInt("ui.density"),
			BuildingType: v.GetString("ui.building_type"),
			TimeRange:    v.GetString("ui.time_range"),
			Theme:        v.GetString("ui.theme"),
		},
		Retry: RetryConfig{
			MaxRetries: v.GetInt("retry.max_retries"),
			BaseDelay:  v.GetDuration("retry.base_delay"),
		},
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.UI.Density < 0 || c.UI.Density > 100 {
		return fmt.Errorf("ui.density must be within 0-100, got %d", c.UI.Density)
	}
	switch c.UI.TimeRange {
	case "7d", "30d", "90d", "1y":
	default:
		return fmt.Errorf("ui.time_range must be one of 7d/30d/90d/1y, got %q", c.UI.TimeRange)
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url must not be empty")
	}
	return nil
}
