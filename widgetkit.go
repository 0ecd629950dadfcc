// Package widgetkit renders server-side widget fragments bound to client
// jQuery plugins and pushes partial updates to widgets already on a page.
// The root package re-exports the entry points most callers need.
package widgetkit

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/render"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

// Fragment aliases render.Fragment.
type Fragment = render.Fragment

// RenderOptions aliases render.Options.
type RenderOptions = render.Options

// MultiInputSpec aliases widgets.MultiInputSpec.
type MultiInputSpec = widgets.MultiInputSpec

// DropdownSpec aliases widgets.DropdownSpec.
type DropdownSpec = widgets.DropdownSpec

// New constructs a widget kit with the built-in widgets registered.
func New(options ...widgets.Option) (*widgets.Kit, error) {
	return widgets.New(options...)
}

// WithTheme returns render options carrying a go-theme renderer config.
func WithTheme(cfg *theme.RendererConfig) RenderOptions {
	return RenderOptions{Theme: cfg}
}

// RenderManifests loads every manifest in fsys and renders the declared
// widgets in declaration order.
func RenderManifests(ctx context.Context, fsys fs.FS, options RenderOptions, kitOptions ...widgets.Option) ([]Fragment, error) {
	store, err := manifest.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	kit, err := widgets.New(kitOptions...)
	if err != nil {
		return nil, fmt.Errorf("widgetkit: %w", err)
	}
	fragments := make([]Fragment, 0, len(store.Widgets()))
	for _, widget := range store.Widgets() {
		fragment, err := widget.Render(ctx, kit.Registry(), options)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}
