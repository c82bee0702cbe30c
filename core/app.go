package core

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SizeInvalidator is implemented by tabs that cache rendered widgets; the
// model calls it on every activation and viewport change so stale frames are
// never reused at the wrong size.
type SizeInvalidator interface {
	InvalidateSize()
}

type Model struct {
	width     int
	height    int
	session   *Session
	tabs      *Registry
	active    TabID
	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	toasts    ToastStack
	status    string
	statusErr bool
	quitting  bool

	OpenCommandModal func(m *Model, scope string) Screen
}

func NewModel(session *Session, tabs *Registry, keys *KeyRegistry, commands *CommandRegistry) Model {
	active := TabOverview
	if tabs.Len() > 0 {
		if t, ok := tabs.At(0); ok {
			active = t.ID()
		}
	}
	return Model{
		session:  session,
		tabs:     tabs,
		keys:     keys,
		commands: commands,
		active:   active,
		status:   "Ready",
		width:    100,
		height:   32,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenRealtime(m.session.Realtime)}
	if t, ok := m.tabs.Get(m.active); ok && !m.session.Loaded(m.active) {
		cmds = append(cmds, t.Fetch(&m))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Session() *Session { return m.session }

func (m *Model) Tabs() *Registry { return m.tabs }

func (m *Model) ActiveTab() TabID { return m.active }

func (m *Model) CommandRegistry() *CommandRegistry { return m.commands }

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

// Toast pushes a transient notification and returns its expiry command.
func (m *Model) Toast(text string, level ToastLevel) tea.Cmd {
	return m.toasts.Push(text, level)
}

// BeginFetch marks a fetch in flight for tab and returns its generation.
// Tabs embed the generation in their DataLoadedMsg so superseded results can
// be recognized and dropped.
func (m *Model) BeginFetch(id TabID) uint64 {
	m.session.FetchStarted()
	return m.session.NextGen(id)
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if t, ok := m.tabs.Get(m.active); ok {
		return t.Scope()
	}
	return "app"
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

// switchTab activates id: size caches are invalidated every time, the fetch
// runs only when the tab has no data yet.
func (m *Model) switchTab(id TabID) tea.Cmd {
	t, ok := m.tabs.Get(id)
	if !ok {
		return nil
	}
	m.active = id
	if inv, ok := t.(SizeInvalidator); ok {
		inv.InvalidateSize()
	}
	if m.session.Loaded(id) {
		return nil
	}
	return t.Fetch(m)
}
