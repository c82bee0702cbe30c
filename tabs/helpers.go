package tabs

import (
	"context"
	"time"

	"gridscope/core"
	"gridscope/widgets"
)

func fetchCtx(m *core.Model) (context.Context, context.CancelFunc) {
	timeout := m.Session().Config.Server.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// framed wraps a widget in the bordered pane chrome.
type framed struct {
	title    string
	badge    string
	inner    widgets.Widget
	selected bool
	focused  bool
}

func (f framed) Render(width, height int) string {
	content := ""
	if f.inner != nil && width > 4 && height > 2 {
		content = f.inner.Render(width-4, height-2)
	}
	return widgets.Pane{
		Title:    f.title,
		Badge:    f.badge,
		Height:   height,
		Content:  content,
		Selected: f.selected,
		Focused:  f.focused,
	}.Render(width, height)
}

// registryWidget defers to the tab's widget registry so cached frames are
// reused until the size changes.
type registryWidget struct {
	reg *widgets.Registry
	id  string
}

func (w registryWidget) Render(width, height int) string {
	return w.reg.Render(w.id, width, height)
}

// textWidget renders fixed lines clipped to the box.
type textWidget struct {
	text string
}

func (w textWidget) Render(width, height int) string {
	return core.ClipHeight(w.text, height)
}

// loadBadge labels panes that are fetching or showing stale data.
func loadBadge(m *core.Model, id core.TabID) string {
	if m.Session().Fetching() && !m.Session().Loaded(id) {
		return "loading"
	}
	if m.Session().RetryCount > 0 {
		return "stale"
	}
	return ""
}
