package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"gridscope/core"
	"gridscope/internal/export"
	"gridscope/internal/realtime"
	"gridscope/widgets"
)

type chatEntry struct {
	ID      string
	Role    string
	Time    time.Time
	Content string
	IsErr   bool
}

type analysisProbeResult struct {
	available bool
}

type analysisAnswerMsg struct {
	text string
	err  error
}

// AnalysisTab is the chat with the backend's analyst. Questions go over the
// realtime socket when it is up; otherwise they fall back to the HTTP
// endpoint. Either way the transcript is the same.
type AnalysisTab struct {
	input     textinput.Model
	entries   []chatEntry
	waiting   bool
	available bool
	probed    bool
}

func NewAnalysisTab() *AnalysisTab {
	inp := textinput.New()
	inp.Placeholder = "Ask about the dataset"
	inp.Prompt = "? "
	inp.Focus()
	return &AnalysisTab{input: inp}
}

func (t *AnalysisTab) ID() core.TabID { return core.TabAnalysis }
func (t *AnalysisTab) Title() string  { return "Analysis" }
func (t *AnalysisTab) Scope() string  { return "tab:analysis" }

// Fetch probes analyzer availability; any HTTP response counts as available.
func (t *AnalysisTab) Fetch(m *core.Model) tea.Cmd {
	gen := m.BeginFetch(core.TabAnalysis)
	session := m.Session()
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		available := session.API.ProbeAnalyzer(ctx)
		return core.DataLoadedMsg{Tab: core.TabAnalysis, Gen: gen, Data: analysisProbeResult{available: available}}
	}
}

func (t *AnalysisTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.DataLoadedMsg:
		if probe, ok := msg.Data.(analysisProbeResult); ok {
			t.available = probe.available
			t.probed = true
			m.Session().AnalyzerOnline = probe.available
		}
		return nil
	case core.RealtimeEventMsg:
		return t.handleEvent(m, msg.Event)
	case core.ConnectionMsg:
		if !msg.Connected && t.waiting {
			t.waiting = false
			t.append("assistant", "Connection lost before the analysis finished", true)
			return core.StatusCmd("Realtime dropped; ask again")
		}
		return nil
	case analysisAnswerMsg:
		t.waiting = false
		if msg.err != nil {
			t.append("assistant", "Analysis failed: "+msg.err.Error(), true)
			return core.ErrorCmd(msg.err)
		}
		t.append("assistant", msg.text, false)
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return t.submit(m)
		case "ctrl+e":
			return t.exportTranscript()
		case "esc":
			return core.SwitchTabCmd(core.TabOverview)
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	return nil
}

func (t *AnalysisTab) submit(m *core.Model) tea.Cmd {
	question := strings.TrimSpace(t.input.Value())
	if question == "" || t.waiting {
		return nil
	}
	t.input.SetValue("")
	t.append("user", question, false)
	t.waiting = true

	rt := m.Session().Realtime
	if rt != nil && rt.Connected() && rt.RequestAnalysis(question) {
		return core.StatusCmd("Analyzing…")
	}
	// Socket unavailable; ask over HTTP instead.
	session := m.Session()
	return func() tea.Msg {
		ctx, cancel := fetchCtx(m)
		defer cancel()
		var text string
		err := session.Retry.Do(ctx, func(ctx context.Context) error {
			result, err := session.API.Analyze(ctx, question)
			if err != nil {
				return err
			}
			text = result.Analysis.FullResponse
			return nil
		})
		return analysisAnswerMsg{text: text, err: err}
	}
}

func (t *AnalysisTab) handleEvent(m *core.Model, ev realtime.Event) tea.Cmd {
	switch ev.Type {
	case realtime.EventAnalysisStarted:
		return core.StatusCmd("Analyzing…")
	case realtime.EventContextFound:
		return m.Toast("Knowledge-base context found", core.ToastInfo)
	case realtime.EventAnalysisComplete:
		t.waiting = false
		var payload realtime.AnalysisPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			t.append("assistant", "Unreadable analysis payload", true)
			return core.ErrorCmd(err)
		}
		t.append("assistant", payload.Analysis, false)
		return core.StatusCmd("Analysis complete")
	case realtime.EventAnalysisError:
		t.waiting = false
		var payload realtime.ErrorPayload
		text := "analysis failed"
		if err := json.Unmarshal(ev.Payload, &payload); err == nil && payload.Error != "" {
			text = payload.Error
		}
		t.append("assistant", text, true)
		return core.StatusCmd(text)
	}
	return nil
}

func (t *AnalysisTab) append(role, content string, isErr bool) {
	t.entries = append(t.entries, chatEntry{
		ID:      uuid.NewString(),
		Role:    role,
		Time:    time.Now(),
		Content: content,
		IsErr:   isErr,
	})
}

func (t *AnalysisTab) exportTranscript() tea.Cmd {
	if len(t.entries) == 0 {
		return core.StatusCmd("Nothing to export yet")
	}
	entries := make([]export.TranscriptEntry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, export.TranscriptEntry{Role: e.Role, Time: e.Time, Content: e.Content})
	}
	name := fmt.Sprintf("analysis-%s.md", time.Now().Format("20060102-150405"))
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		defer f.Close()
		if err := export.WriteTranscriptMarkdown(f, "Energy Analysis", entries); err != nil {
			return core.StatusMsg{Text: "Export failed: " + err.Error(), IsErr: true}
		}
		return core.StatusMsg{Text: "Exported " + name}
	}
}

func (t *AnalysisTab) Build(m *core.Model) widgets.Widget {
	status := "analyzer: unknown"
	if t.probed {
		if t.available {
			status = "analyzer: available"
		} else {
			status = "analyzer: unavailable"
		}
	}
	if t.waiting {
		status += "  ·  thinking…"
	}
	transcript := framed{
		title: "Transcript",
		badge: loadBadge(m, core.TabAnalysis),
		inner: textWidget{text: t.transcriptText()},
	}
	prompt := framed{
		title: "Question",
		inner: textWidget{text: t.input.View() + "\n" + status + "\nctrl+e exports the transcript"},
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{transcript, prompt},
		Ratios:  []float64{0.78, 0.22},
	}
}

func (t *AnalysisTab) transcriptText() string {
	if len(t.entries) == 0 {
		return "Ask a question about consumption patterns, zones or efficiency."
	}
	lines := make([]string, 0, len(t.entries)*2)
	for _, e := range t.entries {
		prefix := "you"
		if e.Role == "assistant" {
			prefix = "analyst"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", prefix, e.Content))
	}
	return strings.Join(lines, "\n\n")
}
