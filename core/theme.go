package core

import "github.com/charmbracelet/lipgloss"

// Theme is the active palette. Styles are rebuilt whenever it changes so a
// theme switch takes effect on the next frame.
type Theme struct {
	Name    string
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	TabOff  lipgloss.Color
}

var darkTheme = Theme{
	Name:    "dark",
	Text:    "#cdd6f4",
	Muted:   "#a6adc8",
	Border:  "#585b70",
	Mantle:  "#181825",
	Surface: "#313244",
	Accent:  "#89b4fa",
	Success: "#a6e3a1",
	Warning: "#f9e2af",
	Error:   "#f38ba8",
	TabOff:  "#7f849c",
}

var lightTheme = Theme{
	Name:    "light",
	Text:    "#4c4f69",
	Muted:   "#6c6f85",
	Border:  "#bcc0cc",
	Mantle:  "#e6e9ef",
	Surface: "#ccd0da",
	Accent:  "#1e66f5",
	Success: "#40a02b",
	Warning: "#df8e1d",
	Error:   "#d20f39",
	TabOff:  "#8c8fa1",
}

var currentTheme = darkTheme

// SetTheme switches the palette by name. Unknown names fall back to dark.
func SetTheme(name string) {
	switch name {
	case "light":
		currentTheme = lightTheme
	default:
		currentTheme = darkTheme
	}
	applyStyles()
}

func CurrentTheme() Theme { return currentTheme }
