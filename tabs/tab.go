package tabs

import (
	tea "github.com/charmbracelet/bubbletea"

	"gridscope/core"
	"gridscope/widgets"
)

// Pane is one region of a tab's grid. Selection moves with the arrow keys;
// a focused pane receives keys directly until esc.
type Pane interface {
	ID() string
	Title() string
	Scope() string
	Focusable() bool
	Update(msg tea.Msg) (Pane, tea.Cmd)
	View(width, height int, selected, focused bool) string
}

// StaticPane shows fixed text, used for help and placeholder regions.
type StaticPane struct {
	id     string
	title  string
	scope  string
	text   string
	height int
}

func NewStaticPane(id, title, scope, text string, height int) *StaticPane {
	return &StaticPane{id: id, title: title, scope: scope, text: text, height: height}
}

func (p *StaticPane) ID() string      { return p.id }
func (p *StaticPane) Title() string   { return p.title }
func (p *StaticPane) Scope() string   { return p.scope }
func (p *StaticPane) Focusable() bool { return false }
func (p *StaticPane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	return p, nil
}
func (p *StaticPane) View(width, height int, selected, focused bool) string {
	return widgets.Pane{Title: p.title, Height: p.height, Content: p.text, Selected: selected, Focused: focused}.Render(width, height)
}

// PaneHost tracks selection and focus across a tab's panes.
type PaneHost struct {
	panes    []Pane
	selected int
	focused  int
}

func NewPaneHost(panes ...Pane) PaneHost {
	return PaneHost{panes: panes, selected: 0, focused: -1}
}

func (h *PaneHost) Scope() string {
	if h.focused >= 0 && h.focused < len(h.panes) {
		return h.panes[h.focused].Scope()
	}
	if h.selected >= 0 && h.selected < len(h.panes) {
		return h.panes[h.selected].Scope()
	}
	return ""
}

func (h *PaneHost) ActivePaneTitle() string {
	if h.focused >= 0 && h.focused < len(h.panes) {
		return h.panes[h.focused].Title()
	}
	if h.selected >= 0 && h.selected < len(h.panes) {
		return h.panes[h.selected].Title()
	}
	return ""
}

func (h *PaneHost) activeIndex() int {
	if h.focused >= 0 && h.focused < len(h.panes) {
		return h.focused
	}
	if h.selected >= 0 && h.selected < len(h.panes) {
		return h.selected
	}
	return -1
}

func (h *PaneHost) UpdateActive(msg tea.Msg) tea.Cmd {
	idx := h.activeIndex()
	if idx < 0 || idx >= len(h.panes) {
		return nil
	}
	next, cmd := h.panes[idx].Update(msg)
	if next != nil {
		h.panes[idx] = next
	}
	return cmd
}

func (h *PaneHost) HandlePaneKey(m *core.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(h.panes) == 0 {
		return false, nil
	}
	if h.focused >= 0 && h.focused < len(h.panes) {
		if msg.String() == "esc" {
			h.focused = -1
			m.SetStatus("Pane unfocused")
			return true, nil
		}
		// Focused pane receives keys directly.
		return false, nil
	}
	switch msg.String() {
	case "left":
		return true, h.move(m, -1)
	case "right":
		return true, h.move(m, 1)
	case "enter":
		return true, h.focusSelected(m)
	default:
		return false, nil
	}
}

func (h *PaneHost) move(m *core.Model, delta int) tea.Cmd {
	if len(h.panes) <= 1 {
		return nil
	}
	prev := h.selected
	h.selected = (h.selected + delta + len(h.panes)) % len(h.panes)
	if prev == h.selected {
		return nil
	}
	h.focused = -1
	m.SetStatus("Selected pane: " + h.panes[h.selected].Title())
	return nil
}

func (h *PaneHost) focusSelected(m *core.Model) tea.Cmd {
	if h.selected < 0 || h.selected >= len(h.panes) {
		return nil
	}
	if !h.panes[h.selected].Focusable() {
		return nil
	}
	h.focused = h.selected
	m.SetStatus("Focused pane: " + h.panes[h.focused].Title())
	return nil
}

type paneWidget struct {
	pane     Pane
	selected bool
	focused  bool
}

func (w paneWidget) Render(width, height int) string {
	if w.pane == nil {
		return widgets.Pane{Title: "Missing Pane", Height: 10}.Render(width, height)
	}
	return w.pane.View(width, height, w.selected, w.focused)
}

func (h *PaneHost) BuildPane(id string) widgets.Widget {
	for idx, p := range h.panes {
		if p.ID() == id {
			return paneWidget{pane: p, selected: idx == h.selected, focused: idx == h.focused}
		}
	}
	return widgets.Pane{Title: "Missing Pane", Height: 10, Content: id}
}
