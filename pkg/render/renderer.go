package render

import (
	"context"
	"strings"
)

// Spec describes one widget instance to render. Concrete specs live next to
// their renderers.
type Spec interface {
	WidgetKind() string
	WidgetID() string
}

// Renderer turns a widget spec into an HTML fragment.
type Renderer interface {
	Kind() string
	Render(ctx context.Context, spec Spec, options Options) (Fragment, error)
}

// Fragment is the rendered output of one widget: markup plus the binding
// script that initialises its client plugin, and the assets it depends on.
type Fragment struct {
	ID   string
	Kind string
	// HTML is the widget markup without the binding script.
	HTML string
	// Script is a <script> element binding the client plugin, or "".
	Script      string
	Stylesheets []string
	Scripts     []string
}

// String returns the markup followed by its binding script, ready to embed
// in a page.
func (f Fragment) String() string {
	if f.Script == "" {
		return f.HTML
	}
	var b strings.Builder
	b.Grow(len(f.HTML) + len(f.Script))
	b.WriteString(f.HTML)
	b.WriteString(f.Script)
	return b.String()
}
