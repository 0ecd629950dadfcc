package widgets

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/goliatone/go-widgetkit/pkg/render"
	rendertemplate "github.com/goliatone/go-widgetkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-widgetkit/pkg/render/template/gotemplate"
)

const (
	multiInputTemplate = "templates/multi_input.tmpl"
	dropdownTemplate   = "templates/dropdown.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/multi_input.tmpl and templates/dropdown.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// can be watched with Kit.WatchTemplates.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateDir = path
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLogger sets the logger used by template watching.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Kit renders widgets through a registry backed by one template renderer.
type Kit struct {
	templates   rendertemplate.TemplateRenderer
	registry    *render.Registry
	templateDir string
	logger      *slog.Logger
}

// New constructs a Kit with the built-in widgets registered.
func New(options ...Option) (*Kit, error) {
	cfg := config{templateFS: TemplatesFS(), logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("widgets: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Kit{
		templates:   renderer,
		registry:    NewDefaultRegistry(renderer),
		templateDir: cfg.templateDir,
		logger:      cfg.logger,
	}, nil
}

// Registry exposes the widget registry so callers can add their own kinds.
func (k *Kit) Registry() *render.Registry {
	return k.registry
}

// Render dispatches spec through the registry.
func (k *Kit) Render(ctx context.Context, spec render.Spec, options render.Options) (render.Fragment, error) {
	return k.registry.Render(ctx, spec, options)
}

// MultiInput renders a multi-select widget.
func (k *Kit) MultiInput(ctx context.Context, spec MultiInputSpec, options render.Options) (render.Fragment, error) {
	return k.registry.Render(ctx, spec, options)
}

// Dropdown renders a dropdown button widget.
func (k *Kit) Dropdown(ctx context.Context, spec DropdownSpec, options render.Options) (render.Fragment, error) {
	return k.registry.Render(ctx, spec, options)
}

// Reload drops cached templates when the renderer supports it.
func (k *Kit) Reload() {
	if reloader, ok := k.templates.(rendertemplate.Reloader); ok {
		reloader.Reset()
	}
}

// WatchTemplates reloads templates whenever a file in the WithTemplatesDir
// directory changes, until ctx is done. It is an error to watch a Kit that
// renders embedded templates.
func (k *Kit) WatchTemplates(ctx context.Context) error {
	if k.templateDir == "" {
		return fmt.Errorf("widgets: watch templates: no templates directory configured")
	}
	return WatchDir(ctx, k.templateDir, k.Reload, k.logger)
}
