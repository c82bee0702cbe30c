package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := 0; i < m.tabs.Len(); i++ {
			if t, ok := m.tabs.At(i); ok {
				if inv, ok := t.(SizeInvalidator); ok {
					inv.InvalidateSize()
				}
			}
		}
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil

	case DataLoadedMsg:
		m.session.FetchFinished()
		if m.session.Stale(msg.Tab, msg.Gen) {
			// A newer fetch superseded this one.
			return m, nil
		}
		if msg.Err != nil {
			// Previously shown data stays on screen.
			m.session.RetryCount++
			m.SetError(msg.Err)
			return m, m.toasts.Push(msg.Err.Error(), ToastError)
		}
		m.session.RetryCount = 0
		m.session.SetLoaded(msg.Tab)
		m.SetStatus("Updated: " + string(msg.Tab))
		if t, ok := m.tabs.Get(msg.Tab); ok {
			return m, t.Update(&m, msg)
		}
		return m, nil

	case RefreshTabMsg:
		m.session.ClearLoaded(msg.Tab)
		if t, ok := m.tabs.Get(msg.Tab); ok {
			return m, t.Fetch(&m)
		}
		return m, nil

	case DatasetReloadedMsg:
		m.session.ClearAllLoaded()
		m.session.DatasetLoaded = true
		cmds := []tea.Cmd{m.toasts.Push("Dataset reloaded", ToastSuccess)}
		if t, ok := m.tabs.Get(m.active); ok {
			cmds = append(cmds, t.Fetch(&m))
		}
		return m, tea.Batch(cmds...)

	case ConnectionMsg:
		changed := m.session.Connected != msg.Connected
		m.session.Connected = msg.Connected
		cmds := []tea.Cmd{ListenRealtime(m.session.Realtime)}
		if changed {
			if msg.Connected {
				cmds = append(cmds, m.toasts.Push("Realtime connected", ToastSuccess))
			} else {
				cmds = append(cmds, m.toasts.Push("Realtime disconnected", ToastWarn))
			}
		}
		// The analysis tab tracks the link too: a drop mid-question must
		// unblock its prompt.
		if t, ok := m.tabs.Get(TabAnalysis); ok {
			cmds = append(cmds, t.Update(&m, msg))
		}
		return m, tea.Batch(cmds...)

	case RealtimeEventMsg:
		cmds := []tea.Cmd{ListenRealtime(m.session.Realtime)}
		if t, ok := m.tabs.Get(TabAnalysis); ok {
			cmds = append(cmds, t.Update(&m, msg))
		}
		return m, tea.Batch(cmds...)

	case ToastExpiredMsg:
		m.toasts.Remove(msg.ID)
		return m, nil

	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil

	case PopScreenMsg:
		m.screens.Pop()
		return m, nil

	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)

	case TabSwitchMsg:
		return m, m.switchTab(msg.Tab)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if top := m.screens.Top(); top != nil {
			next, cmd, pop := top.Update(msg)
			if pop {
				m.screens.Pop()
				return m, cmd
			}
			if next != nil {
				m.screens.screens[len(m.screens.screens)-1] = next
			}
			return m, cmd
		}

		scope := m.ActiveScope()
		if m.keys.IsAction(msg, "quit", scope) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.keys.IsAction(msg, "refresh", scope) {
			return m, RefreshTabCmd(m.active)
		}
		if t, ok := m.tabs.Get(m.active); ok {
			if handler, ok := t.(PaneKeyHandler); ok {
				handled, cmd := handler.HandlePaneKey(&m, msg)
				if handled {
					return m, cmd
				}
			}
		}
		if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
			m.screens.Push(m.OpenCommandModal(&m, scope))
			return m, nil
		}
		for i := 0; i < m.tabs.Len(); i++ {
			if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
				if t, ok := m.tabs.At(i); ok {
					return m, m.switchTab(t.ID())
				}
			}
		}
		if t, ok := m.tabs.Get(m.active); ok {
			return m, t.Update(&m, msg)
		}
		return m, nil
	}

	if top := m.screens.Top(); top != nil {
		next, cmd, pop := top.Update(msg)
		if pop {
			m.screens.Pop()
			return m, cmd
		}
		if next != nil {
			m.screens.screens[len(m.screens.screens)-1] = next
		}
		return m, cmd
	}
	if t, ok := m.tabs.Get(m.active); ok {
		return m, t.Update(&m, msg)
	}
	return m, nil
}
