package widgets

import (
	"github.com/goliatone/go-widgetkit/pkg/render"
	rendertemplate "github.com/goliatone/go-widgetkit/pkg/render/template"
)

// Asset keys for third-party plugins the built-in widgets bind to.
const (
	JQueryScript      = "jquery.min.js"
	MultiScript       = "multi.min.js"
	MultiStylesheet   = "multi.min.css"
	BootstrapScript   = "bootstrap.min.js"
	AnimateStylesheet = "animate.min.css"
)

// NewDefaultRegistry returns a registry with the multi-input and dropdown
// widgets registered against templates.
func NewDefaultRegistry(templates rendertemplate.TemplateRenderer) *render.Registry {
	registry := render.NewRegistry()
	registerDefaults(registry, templates)
	return registry
}

func registerDefaults(registry *render.Registry, templates rendertemplate.TemplateRenderer) {
	registry.MustRegister(render.Descriptor{
		Renderer:    NewMultiInputRenderer(templates),
		Stylesheets: []string{MultiStylesheet},
		Scripts:     []string{JQueryScript, MultiScript, RuntimeScriptName},
	})
	registry.MustRegister(render.Descriptor{
		Renderer:    NewDropdownRenderer(templates),
		Stylesheets: []string{AnimateStylesheet, DropdownStylesheet},
		Scripts:     []string{JQueryScript, BootstrapScript, RuntimeScriptName},
	})
}
