package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gridscope/widgets"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := renderHeader(m)
	status := RenderStatusBar(m)
	footer := RenderFooter(m)
	available := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if available < 0 {
		available = 0
	}
	bodyHeight := available
	var body string
	if bodyHeight > 0 {
		if t, ok := m.tabs.Get(m.active); ok {
			body = t.Build(&m).Render(MaxInt(1, m.width-2), bodyHeight)
		}
	}
	if top := m.screens.Top(); top != nil && bodyHeight > 0 {
		body = widgets.RenderPopup(body, top.View(MaxInt(20, m.width-12), MaxInt(8, m.height-8)), m.width-2, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	if m.toasts.Len() > 0 && bodyHeight > 0 {
		body = overlayTopRight(body, m.toasts.Render(), MaxInt(1, m.width-2))
	}
	main := strings.TrimSuffix(strings.Join([]string{header, status, body}, "\n"), "\n")
	main = fitHeight(main, lipgloss.Height(header)+lipgloss.Height(status)+available)
	view := strings.Join([]string{main, footer}, "\n")
	view = fitHeight(view, MaxInt(1, m.height))
	return appStyle.Width(MaxInt(1, m.width)).MaxWidth(MaxInt(1, m.width)).Render(view)
}

func renderHeader(m Model) string {
	labels := make([]string, 0, m.tabs.Len())
	for i := 0; i < m.tabs.Len(); i++ {
		t, _ := m.tabs.At(i)
		label := fmt.Sprintf("%d:%s", i+1, t.Title())
		if t.ID() == m.active {
			labels = append(labels, activeTabStyle.Render(label))
		} else {
			labels = append(labels, inactiveTabStyle.Render(label))
		}
	}
	left := headerAppStyle.Render("GridScope")
	right := tabSepStyle.Render(" ") + strings.Join(labels, tabSepStyle.Render("│"))
	right = ansi.Truncate(right, MaxInt(1, m.width), "")
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderBar(headerBarStyle, MaxInt(1, m.width), left+strings.Repeat(" ", gap)+right, currentTheme.Mantle)
}

// overlayTopRight splices the toast block over the body's first rows,
// right-aligned, leaving the rest of each row visible.
func overlayTopRight(body, overlay string, width int) string {
	if overlay == "" {
		return body
	}
	bodyLines := strings.Split(body, "\n")
	for i, ov := range strings.Split(overlay, "\n") {
		if i >= len(bodyLines) {
			break
		}
		ovW := ansi.StringWidth(ov)
		if ovW == 0 {
			continue
		}
		keep := width - ovW
		if keep < 0 {
			keep = 0
		}
		left := ansi.Truncate(bodyLines[i], keep, "")
		leftW := ansi.StringWidth(left)
		if leftW < keep {
			left += strings.Repeat(" ", keep-leftW)
		}
		bodyLines[i] = left + ov
	}
	return strings.Join(bodyLines, "\n")
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
