package core

import "github.com/charmbracelet/lipgloss"

var (
	appStyle          lipgloss.Style
	headerAppStyle    lipgloss.Style
	headerBarStyle    lipgloss.Style
	tabSepStyle       lipgloss.Style
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	statusBarStyle    lipgloss.Style
	statusErrBarStyle lipgloss.Style
	footerStyle       lipgloss.Style
)

func init() { applyStyles() }

func applyStyles() {
	t := currentTheme
	appStyle = lipgloss.NewStyle().Foreground(t.Text)

	headerAppStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().Background(t.Mantle).Foreground(t.Text)
	tabSepStyle = lipgloss.NewStyle().Foreground(t.Border).Background(t.Mantle)

	activeTabStyle = lipgloss.NewStyle().
		Background(t.Surface).
		Foreground(t.Accent).
		Bold(true).
		Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
		Background(t.Mantle).
		Foreground(t.TabOff).
		Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().Foreground(t.Success).Background(t.Surface)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface)
	footerStyle = lipgloss.NewStyle().Background(t.Mantle)
}
