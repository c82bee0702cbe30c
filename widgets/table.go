package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/x/ansi"
)

// Table renders aligned columns with a styled header row. Rows beyond the
// height are dropped rather than scrolled.
type Table struct {
	Headers []string
	Rows    [][]string
}

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	formatRow := func(cells []string) string {
		cols := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			cols[i] = padCell(cell, widths[i])
		}
		return ansi.Truncate(strings.Join(cols, "  "), width, "…")
	}

	lines := []string{tableHeaderStyle.Render(formatRow(t.Headers))}
	for _, row := range t.Rows {
		if len(lines) >= height {
			break
		}
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}
