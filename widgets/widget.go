package widgets

// Widget is anything that can draw itself into a width×height cell box.
type Widget interface {
	Render(width, height int) string
}
