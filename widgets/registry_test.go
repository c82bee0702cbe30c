package widgets

import "testing"

type countingWidget struct {
	text    string
	renders int
}

func (w *countingWidget) Render(width, height int) string {
	w.renders++
	return w.text
}

func TestRegistryUpsertReplacesPrevious(t *testing.T) {
	r := NewRegistry()
	r.Upsert("chart", &countingWidget{text: "first"})
	if got := r.Render("chart", 20, 5); got != "first" {
		t.Fatalf("render = %q, want first", got)
	}

	r.Upsert("chart", &countingWidget{text: "second"})
	if got := r.Render("chart", 20, 5); got != "second" {
		t.Fatalf("render after upsert = %q, want second only", got)
	}
	if got := r.Render("chart", 20, 5); got != "second" {
		t.Fatalf("repeat render = %q, want second only", got)
	}
}

func TestRegistryCachesUntilSizeChanges(t *testing.T) {
	r := NewRegistry()
	w := &countingWidget{text: "x"}
	r.Upsert("map", w)

	r.Render("map", 40, 10)
	r.Render("map", 40, 10)
	if w.renders != 1 {
		t.Fatalf("renders = %d, want 1 (same size reuses cache)", w.renders)
	}

	r.Render("map", 80, 24)
	if w.renders != 2 {
		t.Fatalf("renders = %d, want 2 after resize", w.renders)
	}
}

func TestRegistryInvalidateSizeForcesRedraw(t *testing.T) {
	r := NewRegistry()
	w := &countingWidget{text: "x"}
	r.Upsert("map", w)
	r.Render("map", 40, 10)

	r.InvalidateSize()
	r.Render("map", 40, 10)
	if w.renders != 2 {
		t.Fatalf("renders = %d, want 2 after invalidate", w.renders)
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry()
	if r.Has("nope") {
		t.Fatalf("Has() true for unregistered id")
	}
	if got := r.Render("nope", 10, 10); got != "" {
		t.Fatalf("render of unknown id = %q, want empty", got)
	}
	r.Remove("nope")
}
