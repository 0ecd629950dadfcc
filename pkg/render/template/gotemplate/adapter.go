package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-widgetkit/pkg/render/template"
)

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	files     fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk. Directory templates
// shadow WithFS templates of the same name.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the extension appended to template names that lack
// one. Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		cfg.extension = "." + strings.TrimPrefix(ext, ".")
	}
}

// Engine renders pongo2 templates. Parsed templates are cached by name until
// Reset is called.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.Reloader         = (*Engine)(nil)
)

// New builds an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: local loader: %w", err)
		}
		loaders = append(loaders, local)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: a base dir or fs.FS is required")
	}

	registerDefaultFilters()
	return &Engine{
		set:       pongo2.NewSet("widgetkit", loaders...),
		extension: cfg.extension,
		cache:     make(map[string]*pongo2.Template),
	}, nil
}

// Render renders name as inline template source when it contains template
// tags, and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the named template, appending the engine extension
// when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}
	tmpl, err := e.load(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data, out)
}

// RenderString compiles and renders templateContent. The result of the
// compilation is not cached.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter exposes fn as a template filter. pongo2 filters are global
// to the process, so a name can only be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	globals, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(globals)
	return nil
}

// Reset drops cached templates so the next render reads them again.
func (e *Engine) Reset() {
	e.mu.Lock()
	clear(e.cache)
	e.mu.Unlock()
}

func (e *Engine) load(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}
	e.mu.Lock()
	e.cache[name] = tmpl
	e.mu.Unlock()
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: template %q data: %w", name, err)
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return rendered, err
		}
	}
	return rendered, nil
}

// toContext flattens render data into a pongo2 context. Maps are used as-is
// and anything else goes through its JSON form so struct tags decide the
// field names templates see.
func toContext(data any) (pongo2.Context, error) {
	var fields map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		fields = v
	case map[string]any:
		fields = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("data must encode as a JSON object: %w", err)
		}
	}

	ctx := make(pongo2.Context, len(fields))
	for key, value := range fields {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = value
		}
	}
	return ctx, nil
}
