// Package export writes the client-side export formats: CSV for buildings
// and consumption series, JSON for settings dumps, Markdown for chat
// transcripts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gridscope/internal/api"
)

// Fixed CSV header rows. Consumers parse these files, so the headers are
// part of the contract.
var (
	BuildingsHeader   = []string{"lat", "lng", "type_color", "popup"}
	ConsumptionHeader = []string{"timestamp", "series", "consumption_kwh"}
)

// WriteBuildingsCSV dumps the currently plotted markers.
func WriteBuildingsCSV(w io.Writer, markers []api.Marker) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BuildingsHeader); err != nil {
		return err
	}
	for _, m := range markers {
		rec := []string{
			strconv.FormatFloat(m.Lat, 'f', 6, 64),
			strconv.FormatFloat(m.Lng, 'f', 6, 64),
			m.Color,
			m.Popup,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteConsumptionCSV dumps the plotted chart series point-by-point.
func WriteConsumptionCSV(w io.Writer, traces []api.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ConsumptionHeader); err != nil {
		return err
	}
	for _, tr := range traces {
		for i, x := range tr.X {
			if i >= len(tr.Y) {
				break
			}
			rec := []string{x, tr.Name, strconv.FormatFloat(tr.Y[i], 'f', 3, 64)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSettingsJSON dumps the current control values as an indented JSON
// object mirroring the settings form.
func WriteSettingsJSON(w io.Writer, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// TranscriptEntry is one chat message of an analysis session.
type TranscriptEntry struct {
	Role    string
	Time    time.Time
	Content string
}

// WriteTranscriptMarkdown renders the chat history as a Markdown document.
func WriteTranscriptMarkdown(w io.Writer, title string, entries []TranscriptEntry) error {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, e := range entries {
		stamp := ""
		if !e.Time.IsZero() {
			stamp = " — " + e.Time.Format("2006-01-02 15:04")
		}
		b.WriteString(fmt.Sprintf("## %s%s\n\n%s\n\n", e.Role, stamp, strings.TrimSpace(e.Content)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
