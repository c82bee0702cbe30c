package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/widgets"
)

type stubTab struct {
	id      TabID
	fetches int
	updates []tea.Msg
}

func (t *stubTab) ID() TabID     { return t.id }
func (t *stubTab) Title() string { return string(t.id) }
func (t *stubTab) Scope() string { return "tab:" + string(t.id) }
func (t *stubTab) Fetch(m *Model) tea.Cmd {
	t.fetches++
	gen := m.BeginFetch(t.id)
	id := t.id
	return func() tea.Msg {
		return DataLoadedMsg{Tab: id, Gen: gen, Data: "payload"}
	}
}
func (t *stubTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	t.updates = append(t.updates, msg)
	return nil
}
func (t *stubTab) Build(m *Model) widgets.Widget { return nil }

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewTabRegistry()
	if err := r.Register(&stubTab{id: TabOverview}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(&stubTab{id: TabOverview}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistryRejectsUnknownID(t *testing.T) {
	r := NewTabRegistry()
	if err := r.Register(&stubTab{id: TabID("bogus")}); err == nil {
		t.Fatalf("expected unknown id error")
	}
	if err := r.Register(nil); err == nil {
		t.Fatalf("expected nil tab error")
	}
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	r := NewTabRegistry()
	for _, id := range []TabID{TabOverview, TabConsumption, TabBuildings} {
		if err := r.Register(&stubTab{id: id}); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	order := r.Order()
	want := []TabID{TabOverview, TabConsumption, TabBuildings}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
	if got := r.IndexOf(TabBuildings); got != 2 {
		t.Fatalf("IndexOf = %d, want 2", got)
	}
	if got := r.IndexOf(TabSettings); got != -1 {
		t.Fatalf("IndexOf missing = %d, want -1", got)
	}
}
