package widgets

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/binder"
	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/render"
	rendertemplate "github.com/goliatone/go-widgetkit/pkg/render/template"
	"github.com/goliatone/go-widgetkit/pkg/update"
)

// KindMultiInput identifies the multi-select widget in the registry.
const KindMultiInput = "multi-input"

// MultiInputSpec describes a multi-select widget. Choices come either from
// Choices or from the parallel ChoiceNames/ChoiceValues lists, not both.
type MultiInputSpec struct {
	ID    string
	Name  string
	Label string

	Choices      choice.Set
	ChoiceNames  []string
	ChoiceValues []string
	Selected     choice.Selection

	Config binder.MultiConfig
	Width  string
}

func (s MultiInputSpec) WidgetKind() string { return KindMultiInput }
func (s MultiInputSpec) WidgetID() string   { return s.ID }

// ResolveChoices returns the widget's choice set.
func (s MultiInputSpec) ResolveChoices() (choice.Set, error) {
	listed := len(s.ChoiceNames) > 0 || len(s.ChoiceValues) > 0
	if listed && s.Choices.Len() > 0 {
		return choice.Set{}, choice.Invalid("choices", "use either Choices or ChoiceNames/ChoiceValues")
	}
	if !listed {
		return s.Choices, nil
	}
	names := s.ChoiceNames
	if len(names) == 0 {
		names = s.ChoiceValues
	}
	return choice.NewSet(names, s.ChoiceValues)
}

// Snapshot returns the state the rendered widget starts in, for tracking in
// an update.State.
func (s MultiInputSpec) Snapshot() (update.Snapshot, error) {
	set, err := s.ResolveChoices()
	if err != nil {
		return update.Snapshot{}, err
	}
	if err := s.Selected.Validate(set); err != nil {
		return update.Snapshot{}, err
	}
	return update.Snapshot{
		Label:     s.Label,
		Choices:   set,
		Selection: s.Selected.Clone(),
	}, nil
}

type multiInputRenderer struct {
	templates rendertemplate.TemplateRenderer
}

// NewMultiInputRenderer renders MultiInputSpec values through templates.
func NewMultiInputRenderer(templates rendertemplate.TemplateRenderer) render.Renderer {
	return &multiInputRenderer{templates: templates}
}

func (r *multiInputRenderer) Kind() string { return KindMultiInput }

func (r *multiInputRenderer) Render(_ context.Context, spec render.Spec, options render.Options) (render.Fragment, error) {
	in, ok := asMultiInput(spec)
	if !ok {
		return render.Fragment{}, fmt.Errorf("widgets: multi-input: unexpected spec %T", spec)
	}
	id, err := requireID(in.ID)
	if err != nil {
		return render.Fragment{}, err
	}
	snapshot, err := in.Snapshot()
	if err != nil {
		return render.Fragment{}, err
	}
	width, err := cssLength("width", in.Width)
	if err != nil {
		return render.Fragment{}, err
	}

	optionsHTML, err := choice.RenderSet(snapshot.Choices, snapshot.Selection)
	if err != nil {
		return render.Fragment{}, fmt.Errorf("widgets: multi-input %q: render options: %w", id, err)
	}
	binding, err := binder.Bind(id, binder.KindMulti, in.Config)
	if err != nil {
		return render.Fragment{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = id
	}
	style := ""
	if width != "" {
		style = "width: " + width
	}
	html, err := r.templates.RenderTemplate(multiInputTemplate, map[string]any{
		"id":              id,
		"name":            name,
		"label":           in.Label,
		"options":         optionsHTML,
		"container_class": classList("form-group widgetkit-multi-input", options.ThemeClass()),
		"style":           joinStyle(style, options.CSSVarsStyle()),
	})
	if err != nil {
		return render.Fragment{}, fmt.Errorf("widgets: multi-input %q: render template: %w", id, err)
	}

	return render.Fragment{
		ID:     id,
		Kind:   KindMultiInput,
		HTML:   html,
		Script: binding.Script(),
	}, nil
}

func asMultiInput(spec render.Spec) (MultiInputSpec, bool) {
	switch typed := spec.(type) {
	case MultiInputSpec:
		return typed, true
	case *MultiInputSpec:
		if typed == nil {
			return MultiInputSpec{}, false
		}
		return *typed, true
	default:
		return MultiInputSpec{}, false
	}
}
