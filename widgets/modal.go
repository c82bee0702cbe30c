package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderPopup centers popup in a rounded card over base and splices the card
// into the base rows, leaving the surrounding content visible.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(popup)
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)

	baseRows := rowsOf(base, height)
	cardRows := rowsOf(placed, height)
	out := make([]string, height)
	for i := range out {
		out[i] = spliceRow(padCell(baseRows[i], width), padCell(cardRows[i], width), width)
	}
	return strings.Join(out, "\n")
}

// spliceRow replaces the columns of row covered by the non-blank span of
// over. Rows where the card has no content pass through untouched.
func spliceRow(row, over string, width int) string {
	start, end, ok := cardSpan(over, width)
	if !ok {
		return row
	}
	left := ansi.Truncate(row, start, "")
	mid := ansi.Truncate(cutColumns(over, start), end-start, "")
	right := cutColumns(row, end)
	return padCell(left+mid+right, width)
}

// cardSpan finds the column range holding the card on a placed row, skipping
// the centering padding on both sides.
func cardSpan(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	for start < len(plain) && plain[start] == ' ' {
		start++
	}
	end = len(trimmed)
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// rowsOf splits s into exactly height rows, truncating or padding with
// blanks.
func rowsOf(s string, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

// cutColumns drops the first cols display columns of a styled line.
func cutColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
