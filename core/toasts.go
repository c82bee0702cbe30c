package core

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarn
	ToastError
)

type Toast struct {
	ID    int
	Text  string
	Level ToastLevel
}

type ToastExpiredMsg struct {
	ID int
}

const toastTTL = 4 * time.Second

// ToastStack holds the transient notifications stacked in the top-right
// corner. Each push schedules its own expiry; removing an already-expired id
// is a no-op, so a toast dismissed early cannot dismiss a later one that
// reused its slot.
type ToastStack struct {
	toasts []Toast
	nextID int
}

// Push appends a toast and returns the command that expires it.
func (s *ToastStack) Push(text string, level ToastLevel) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.toasts = append(s.toasts, Toast{ID: id, Text: text, Level: level})
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Remove drops the toast with the given id if it is still shown.
func (s *ToastStack) Remove(id int) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

func (s *ToastStack) Len() int { return len(s.toasts) }

// Render returns one styled line per toast, newest last. The caller aligns
// the block.
func (s *ToastStack) Render() string {
	if len(s.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		lines = append(lines, toastStyle(t.Level).Render(" "+t.Text+" "))
	}
	return strings.Join(lines, "\n")
}

func toastStyle(level ToastLevel) lipgloss.Style {
	base := lipgloss.NewStyle().Background(currentTheme.Surface).Padding(0, 1)
	switch level {
	case ToastSuccess:
		return base.Foreground(currentTheme.Success)
	case ToastWarn:
		return base.Foreground(currentTheme.Warning)
	case ToastError:
		return base.Foreground(currentTheme.Error)
	default:
		return base.Foreground(currentTheme.Text)
	}
}
