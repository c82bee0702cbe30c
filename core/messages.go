package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"gridscope/internal/realtime"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

// DataLoadedMsg carries a finished tab fetch. Gen ties the result to the
// fetch that produced it; stale generations are dropped by the router.
type DataLoadedMsg struct {
	Tab  TabID
	Gen  uint64
	Data any
	Err  error
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

type CommandExecuteMsg struct {
	CommandID string
}

type TabSwitchMsg struct {
	Tab TabID
}

// RefreshTabMsg forces a refetch of the named tab regardless of its loaded
// flag.
type RefreshTabMsg struct {
	Tab TabID
}

// ConnectionMsg tracks the realtime socket.
type ConnectionMsg struct {
	Connected bool
}

// RealtimeEventMsg forwards a socket event to whichever tab consumes it.
type RealtimeEventMsg struct {
	Event realtime.Event
}

// DatasetReloadedMsg signals the backend re-read its source files; every
// tab's cached data is stale after it.
type DatasetReloadedMsg struct{}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{Text: "", IsErr: false}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

func SwitchTabCmd(id TabID) tea.Cmd {
	return func() tea.Msg { return TabSwitchMsg{Tab: id} }
}

func RefreshTabCmd(id TabID) tea.Cmd {
	return func() tea.Msg { return RefreshTabMsg{Tab: id} }
}

// ListenRealtime blocks on the socket's event stream and resurfaces each
// event as a bubbletea message. The returned command re-arms itself from the
// router after every delivery.
func ListenRealtime(rt *realtime.Client) tea.Cmd {
	if rt == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-rt.Events()
		if !ok {
			return ConnectionMsg{Connected: false}
		}
		switch ev.Type {
		case realtime.EventConnect:
			return ConnectionMsg{Connected: true}
		case realtime.EventDisconnect:
			return ConnectionMsg{Connected: false}
		default:
			return RealtimeEventMsg{Event: ev}
		}
	}
}
