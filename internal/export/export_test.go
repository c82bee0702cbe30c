package export

import (
	"strings"
	"testing"
	"time"

	"gridscope/internal/api"
)

func TestWriteBuildingsCSVHeaderAndRows(t *testing.T) {
	var sb strings.Builder
	markers := []api.Marker{
		{Lat: 3.139, Lng: 101.6869, Color: "#28a745", Popup: "KL Residence"},
	}
	if err := WriteBuildingsCSV(&sb, markers); err != nil {
		t.Fatalf("WriteBuildingsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "lat,lng,type_color,popup" {
		t.Fatalf("header = %s", lines[0])
	}
	if len(lines) != 2 || !strings.Contains(lines[1], "KL Residence") {
		t.Fatalf("rows = %v", lines[1:])
	}
}

func TestWriteConsumptionCSVAlignsXY(t *testing.T) {
	var sb strings.Builder
	traces := []api.Trace{
		{Name: "residential", X: []string{"2026-02-01", "2026-02-02", "2026-02-03"}, Y: []float64{10.5, 11}},
	}
	if err := WriteConsumptionCSV(&sb, traces); err != nil {
		t.Fatalf("WriteConsumptionCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "timestamp,series,consumption_kwh" {
		t.Fatalf("header = %s", lines[0])
	}
	// The trailing X without a Y pair is dropped, not zero-filled.
	if len(lines) != 3 {
		t.Fatalf("line count = %d", len(lines))
	}
}

func TestWriteSettingsJSON(t *testing.T) {
	var sb strings.Builder
	err := WriteSettingsJSON(&sb, map[string]any{"theme": "dark", "density": 50})
	if err != nil {
		t.Fatalf("WriteSettingsJSON: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "\"theme\": \"dark\"") || !strings.Contains(out, "\"density\": 50") {
		t.Fatalf("json = %s", out)
	}
}

func TestWriteTranscriptMarkdown(t *testing.T) {
	var sb strings.Builder
	entries := []TranscriptEntry{
		{Role: "You", Time: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Content: "Why is consumption up?"},
		{Role: "Analyst", Content: "Peak cooling load."},
	}
	if err := WriteTranscriptMarkdown(&sb, "Analysis Session", entries); err != nil {
		t.Fatalf("WriteTranscriptMarkdown: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "# Analysis Session\n") {
		t.Fatalf("title missing: %s", out)
	}
	if !strings.Contains(out, "## You — 2026-03-01 10:00") {
		t.Fatalf("stamped heading missing: %s", out)
	}
	if !strings.Contains(out, "## Analyst\n") {
		t.Fatalf("unstamped heading missing: %s", out)
	}
}
