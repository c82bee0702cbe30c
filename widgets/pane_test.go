package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPaneTitleAndBadge(t *testing.T) {
	p := Pane{Title: "Buildings", Badge: "loading", Height: 6, Content: "42 markers"}
	out := ansi.Strip(p.Render(40, 10))
	if !strings.Contains(out, "Buildings") {
		t.Fatalf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "[loading]") {
		t.Fatalf("expected badge, got:\n%s", out)
	}
	if !strings.Contains(out, "42 markers") {
		t.Fatalf("expected content, got:\n%s", out)
	}
}

func TestPaneFocusMarker(t *testing.T) {
	out := ansi.Strip(Pane{Title: "Chat", Height: 5, Focused: true}.Render(30, 8))
	if !strings.Contains(out, "● Chat") {
		t.Fatalf("expected focus marker, got:\n%s", out)
	}
	out = ansi.Strip(Pane{Title: "Chat", Height: 5, Selected: true}.Render(30, 8))
	if !strings.Contains(out, "▶ Chat") {
		t.Fatalf("expected selection marker, got:\n%s", out)
	}
}

func TestPaneClampsToHeight(t *testing.T) {
	p := Pane{Title: "Log", Height: 20, Content: strings.Repeat("line\n", 30)}
	out := p.Render(30, 8)
	if got := len(strings.Split(out, "\n")); got != 8 {
		t.Fatalf("height = %d, want 8", got)
	}
}

func TestTableAlignsColumns(t *testing.T) {
	tbl := Table{
		Headers: []string{"Zone", "kWh"},
		Rows:    [][]string{{"North", "1200"}, {"Industrial East", "98000"}},
	}
	out := ansi.Strip(tbl.Render(40, 10))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	headerCol := strings.Index(lines[0], "kWh")
	rowCol := strings.Index(lines[1], "1200")
	if headerCol != rowCol {
		t.Fatalf("kWh column at %d but value column at %d", headerCol, rowCol)
	}
}
