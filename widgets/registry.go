package widgets

// Registry tracks the widgets currently on screen so they can be re-rendered
// at a new size when the viewport changes. An id is registered on first
// render; upserting the same id replaces the previous widget wholesale, so a
// second render never stacks layers on top of the first.
type Registry struct {
	entries map[string]*entry
}

type entry struct {
	widget Widget
	cached string
	width  int
	height int
	valid  bool
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Upsert replaces the widget stored under id. Any cached render is discarded
// so the next Render reflects only the new widget.
func (r *Registry) Upsert(id string, w Widget) {
	r.entries[id] = &entry{widget: w}
}

// Render draws the widget registered under id at the given size, reusing the
// cached frame when neither the widget nor the size changed since last time.
func (r *Registry) Render(id string, width, height int) string {
	e, ok := r.entries[id]
	if !ok {
		return ""
	}
	if e.valid && e.width == width && e.height == height {
		return e.cached
	}
	e.cached = e.widget.Render(width, height)
	e.width = width
	e.height = height
	e.valid = true
	return e.cached
}

// InvalidateSize drops every cached frame. Registered widgets stay put and
// re-render at the next size they are asked for.
func (r *Registry) InvalidateSize() {
	for _, e := range r.entries {
		e.valid = false
	}
}

// Has reports whether id has been registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Remove forgets id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	delete(r.entries, id)
}
