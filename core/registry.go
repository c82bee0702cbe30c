package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gridscope/widgets"
)

// TabID is the closed set of dashboard tabs. Registration outside this set
// is rejected, as is registering the same tab twice.
type TabID string

const (
	TabOverview    TabID = "overview"
	TabConsumption TabID = "consumption"
	TabBuildings   TabID = "buildings"
	TabAnalysis    TabID = "analysis"
	TabData        TabID = "data"
	TabSettings    TabID = "settings"
)

var knownTabs = map[TabID]bool{
	TabOverview:    true,
	TabConsumption: true,
	TabBuildings:   true,
	TabAnalysis:    true,
	TabData:        true,
	TabSettings:    true,
}

func (id TabID) Valid() bool { return knownTabs[id] }

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Tab is one dashboard view. Fetch produces the tab's data load command; the
// model decides when to run it (first activation, explicit refresh) so tabs
// never refetch on their own.
type Tab interface {
	ID() TabID
	Title() string
	Scope() string
	Fetch(m *Model) tea.Cmd
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// PaneKeyHandler lets a tab intercept navigation keys for its pane grid
// before global bindings run.
type PaneKeyHandler interface {
	HandlePaneKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd)
	ActivePaneTitle() string
}

// Registry holds tabs keyed by their TabID in registration order.
type Registry struct {
	order []TabID
	byID  map[TabID]Tab
}

func NewTabRegistry() *Registry {
	return &Registry{byID: make(map[TabID]Tab)}
}

// Register adds a tab. Unknown ids and duplicates are errors so a wiring
// mistake surfaces at startup instead of as a silent shadowed tab.
func (r *Registry) Register(t Tab) error {
	if t == nil {
		return fmt.Errorf("register: nil tab")
	}
	id := t.ID()
	if !id.Valid() {
		return fmt.Errorf("register: unknown tab id %q", id)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("register: tab %q already registered", id)
	}
	r.byID[id] = t
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id TabID) (Tab, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Order returns tab ids in registration order.
func (r *Registry) Order() []TabID {
	return append([]TabID(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// At returns the tab at display position i.
func (r *Registry) At(i int) (Tab, bool) {
	if i < 0 || i >= len(r.order) {
		return nil, false
	}
	return r.byID[r.order[i]], true
}

// IndexOf returns the display position of id, or -1.
func (r *Registry) IndexOf(id TabID) int {
	for i, o := range r.order {
		if o == id {
			return i
		}
	}
	return -1
}
