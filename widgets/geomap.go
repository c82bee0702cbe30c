package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridscope/internal/api"
)

// GeoMap plots building markers and an optional consumption heat layer on a
// terminal cell grid. The projection is a plain equirectangular fit of the
// data bounds into the cell box, north up.
type GeoMap struct {
	Markers    []api.Marker
	HeatPoints []api.HeatPoint
	ShowHeat   bool
	Legend     string
}

var heatRamp = []struct {
	ch    string
	color lipgloss.Color
}{
	{"░", "#f9e2af"},
	{"▒", "#fab387"},
	{"▓", "#eba0ac"},
	{"█", "#f38ba8"},
}

func (g GeoMap) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	legendLines := 0
	if g.Legend != "" {
		legendLines = 1
	}
	gridH := height - legendLines
	if gridH < 2 {
		gridH = 2
	}

	minLat, maxLat, minLng, maxLng, ok := g.bounds()
	if !ok {
		empty := "(no geodata)"
		if g.Legend != "" {
			return empty + "\n" + g.Legend
		}
		return empty
	}

	cells := make([][]string, gridH)
	for y := range cells {
		cells[y] = make([]string, width)
		for x := range cells[y] {
			cells[y][x] = " "
		}
	}

	project := func(lat, lng float64) (int, int) {
		x := 0
		y := 0
		if maxLng > minLng {
			x = int((lng - minLng) / (maxLng - minLng) * float64(width-1))
		}
		if maxLat > minLat {
			// Row 0 is the northern edge.
			y = int((maxLat - lat) / (maxLat - minLat) * float64(gridH-1))
		}
		return clampInt(x, 0, width-1), clampInt(y, 0, gridH-1)
	}

	if g.ShowHeat {
		maxIntensity := 0.0
		for _, p := range g.HeatPoints {
			if p.Intensity > maxIntensity {
				maxIntensity = p.Intensity
			}
		}
		if maxIntensity <= 0 {
			maxIntensity = 1
		}
		for _, p := range g.HeatPoints {
			x, y := project(p.Lat, p.Lng)
			level := int(p.Intensity / maxIntensity * float64(len(heatRamp)))
			if level >= len(heatRamp) {
				level = len(heatRamp) - 1
			}
			if level < 0 {
				level = 0
			}
			ramp := heatRamp[level]
			cells[y][x] = lipgloss.NewStyle().Foreground(ramp.color).Render(ramp.ch)
		}
	}

	// Markers draw over the heat layer.
	for _, m := range g.Markers {
		x, y := project(m.Lat, m.Lng)
		color := m.Color
		if color == "" {
			color = "#17a2b8"
		}
		cells[y][x] = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
	}

	rows := make([]string, 0, gridH+1)
	for _, row := range cells {
		rows = append(rows, strings.Join(row, ""))
	}
	if g.Legend != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Render(g.Legend))
	}
	return strings.Join(rows, "\n")
}

// bounds covers markers and, when shown, heat points.
func (g GeoMap) bounds() (minLat, maxLat, minLng, maxLng float64, ok bool) {
	first := true
	add := func(lat, lng float64) {
		if first {
			minLat, maxLat, minLng, maxLng = lat, lat, lng, lng
			first = false
			return
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lng < minLng {
			minLng = lng
		}
		if lng > maxLng {
			maxLng = lng
		}
	}
	for _, m := range g.Markers {
		add(m.Lat, m.Lng)
	}
	if g.ShowHeat {
		for _, p := range g.HeatPoints {
			add(p.Lat, p.Lng)
		}
	}
	return minLat, maxLat, minLng, maxLng, !first
}

// MapLegend summarizes what the grid shows.
func MapLegend(markers int, heat bool, density int, buildingType string) string {
	mode := "markers"
	if heat {
		mode = "heatmap"
	}
	return fmt.Sprintf("%d buildings · %s · density %d%% · type %s", markers, mode, density, buildingType)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
