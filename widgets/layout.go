package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack renders its children top to bottom. Heights are divided per Ratios
// when one ratio is given per child, evenly otherwise.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	spacing := max(0, v.Spacing*(len(v.Widgets)-1))
	rows := partition(max(1, height-spacing), len(v.Widgets), v.Ratios)
	var b strings.Builder
	for i, w := range v.Widgets {
		if i > 0 {
			b.WriteString(strings.Repeat("\n", v.Spacing+1))
		}
		b.WriteString(w.Render(width, max(1, rows[i])))
	}
	return b.String()
}

// HStack renders its children side by side, padding shorter columns so every
// output line spans the full width.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gap := max(0, h.Gap*(len(h.Widgets)-1))
	cols := partition(max(1, width-gap), len(h.Widgets), h.Ratios)

	columns := make([][]string, len(h.Widgets))
	rows := 0
	for i, w := range h.Widgets {
		columns[i] = strings.Split(w.Render(max(1, cols[i]), height), "\n")
		rows = max(rows, len(columns[i]))
	}

	sep := strings.Repeat(" ", h.Gap)
	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			cells[i] = padCell(cell, cols[i])
		}
		out[r] = strings.Join(cells, sep)
	}
	return strings.Join(out, "\n")
}

// partition splits total cells across n slots. Ratios apply only when there
// is exactly one per slot; leftover cells from rounding go to the leftmost
// slots so the sum always equals total.
func partition(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	if len(ratios) != n {
		for i := range out {
			out[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	sum := 0.0
	for _, r := range ratios {
		if r <= 0 {
			r = 1
		}
		sum += r
	}
	used := 0
	for i, r := range ratios {
		out[i] = int(math.Floor(r / sum * float64(total)))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// padCell trims or space-pads a styled line to exactly width display cells.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
