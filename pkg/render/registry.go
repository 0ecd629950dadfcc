package render

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Descriptor bundles a widget renderer with the asset keys the widget needs
// on the page.
type Descriptor struct {
	Renderer    Renderer
	Stylesheets []string
	Scripts     []string
}

// Registry stores widget renderers by kind, providing discovery and
// duplication safeguards.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a descriptor under its renderer's Kind(). Duplicate kinds
// return an error.
func (r *Registry) Register(descriptor Descriptor) error {
	if descriptor.Renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	kind := normalizeKind(descriptor.Renderer.Kind())
	if kind == "" {
		return fmt.Errorf("render: renderer kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[kind]; exists {
		return fmt.Errorf("render: renderer %q already registered", kind)
	}
	r.descriptors[kind] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(descriptor Descriptor) {
	if err := r.Register(descriptor); err != nil {
		panic(err)
	}
}

// Get retrieves a descriptor by kind.
func (r *Registry) Get(kind string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, ok := r.descriptors[normalizeKind(kind)]
	if !ok {
		return Descriptor{}, fmt.Errorf("render: renderer %q not found", kind)
	}
	return cloneDescriptor(descriptor), nil
}

// Has reports whether a renderer is registered for kind.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[normalizeKind(kind)]
	return ok
}

// List returns a sorted list of registered kinds.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.descriptors))
	for kind := range r.descriptors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Render dispatches spec to the renderer registered for its kind and attaches
// the descriptor's assets, resolved through options.
func (r *Registry) Render(ctx context.Context, spec Spec, options Options) (Fragment, error) {
	if spec == nil {
		return Fragment{}, fmt.Errorf("render: spec is required")
	}
	descriptor, err := r.Get(spec.WidgetKind())
	if err != nil {
		return Fragment{}, err
	}
	fragment, err := descriptor.Renderer.Render(ctx, spec, options)
	if err != nil {
		return Fragment{}, err
	}
	fragment.Stylesheets = mergeUnique(fragment.Stylesheets, options.AssetURLs(descriptor.Stylesheets))
	fragment.Scripts = mergeUnique(fragment.Scripts, options.AssetURLs(descriptor.Scripts))
	return fragment, nil
}

// Assets resolves deduplicated asset keys for the provided kinds, in
// registration order of the kinds given.
func (r *Registry) Assets(kinds []string) (stylesheets []string, scripts []string) {
	if len(kinds) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, kind := range kinds {
		descriptor, ok := r.descriptors[normalizeKind(kind)]
		if !ok {
			continue
		}
		stylesheets = mergeUnique(stylesheets, descriptor.Stylesheets)
		scripts = mergeUnique(scripts, descriptor.Scripts)
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func mergeUnique(existing []string, extras []string) []string {
	for _, item := range extras {
		if item == "" || slices.Contains(existing, item) {
			continue
		}
		existing = append(existing, item)
	}
	return existing
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
