package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"gridscope/internal/api"
)

func TestChartEmptySpec(t *testing.T) {
	out := ansi.Strip(Chart{}.Render(40, 10))
	if !strings.Contains(out, "(no data)") {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestChartLineTitleAndBody(t *testing.T) {
	spec := api.ChartSpec{
		Data: []api.Trace{{
			Type: "scatter",
			Name: "Consumption",
			X:    []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			Y:    []float64{100, 140, 120},
		}},
		Layout: api.Layout{Title: "Daily Consumption"},
	}
	out := ansi.Strip(Chart{Spec: spec}.Render(50, 12))
	if !strings.Contains(out, "Daily Consumption") {
		t.Fatalf("expected title in output, got %q", out)
	}
	if strings.TrimSpace(strings.TrimPrefix(out, "Daily Consumption")) == "" {
		t.Fatalf("expected chart body below title")
	}
}

func TestChartBars(t *testing.T) {
	spec := api.ChartSpec{
		Data: []api.Trace{{
			Type: "bar",
			X:    []string{"residential", "commercial", "industrial"},
			Y:    []float64{1200, 2500000, 40},
		}},
		Layout: api.Layout{Title: "By Type"},
	}
	out := ansi.Strip(Chart{Spec: spec}.Render(60, 10))
	for _, want := range []string{"By Type", "residential", "1.2k", "2.5M", "40.0", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestChartCategoricalXFallsBackToIndex(t *testing.T) {
	spec := api.ChartSpec{
		Data: []api.Trace{{
			Type: "scatter",
			Name: "zones",
			X:    []string{"Zone A", "Zone B", "Zone C"},
			Y:    []float64{10, 20, 15},
		}},
	}
	out := Chart{Spec: spec}.Render(50, 10)
	if strings.Contains(out, "(no data)") {
		t.Fatalf("categorical X should still plot via index spacing")
	}
}
