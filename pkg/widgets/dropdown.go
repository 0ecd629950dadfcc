package widgets

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/binder"
	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/render"
	rendertemplate "github.com/goliatone/go-widgetkit/pkg/render/template"
)

// KindDropdown identifies the dropdown button widget in the registry.
const KindDropdown = "dropdown"

// Status is the bootstrap contextual colour of the dropdown button.
type Status string

const (
	StatusDefault Status = "default"
	StatusPrimary Status = "primary"
	StatusInfo    Status = "info"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusLink    Status = "link"
)

// Size is the bootstrap button size.
type Size string

const (
	SizeDefault Size = ""
	SizeXS      Size = "xs"
	SizeSM      Size = "sm"
	SizeLG      Size = "lg"
)

// DropdownSpec describes a button that toggles a menu of arbitrary content.
type DropdownSpec struct {
	ID    string
	Label string
	// Icon is inline SVG or icon font markup, sanitised before rendering.
	Icon string
	// Content is the menu markup, sanitised before rendering.
	Content string
	// TrustedContent is inserted as-is ahead of Content. Use it for markup
	// built by this process, such as other widget fragments.
	TrustedContent string

	Status Status
	Size   Size
	Circle bool
	Right  bool
	Up     bool
	Width  string

	// Tooltip titles are markdown.
	Tooltip *binder.TooltipOptions
	Animate *binder.AnimateOptions
	Config  binder.DropdownConfig
}

func (s DropdownSpec) WidgetKind() string { return KindDropdown }
func (s DropdownSpec) WidgetID() string   { return s.ID }

// ButtonClass returns the class list of the toggle button.
func (s DropdownSpec) ButtonClass() (string, error) {
	status := s.Status
	if status == "" {
		status = StatusDefault
	}
	switch status {
	case StatusDefault, StatusPrimary, StatusInfo, StatusSuccess, StatusWarning, StatusDanger, StatusLink:
	default:
		return "", choice.Invalid("status", "unsupported status %q", s.Status)
	}
	size := ""
	switch s.Size {
	case SizeDefault:
	case SizeXS, SizeSM, SizeLG:
		size = "btn-" + string(s.Size)
	default:
		return "", choice.Invalid("size", "unsupported size %q", s.Size)
	}
	circle := ""
	if s.Circle {
		circle = "btn-circle"
	}
	return classList("btn", "btn-"+string(status), size, circle, "dropdown-toggle"), nil
}

type dropdownRenderer struct {
	templates rendertemplate.TemplateRenderer
}

// NewDropdownRenderer renders DropdownSpec values through templates.
func NewDropdownRenderer(templates rendertemplate.TemplateRenderer) render.Renderer {
	return &dropdownRenderer{templates: templates}
}

func (r *dropdownRenderer) Kind() string { return KindDropdown }

func (r *dropdownRenderer) Render(_ context.Context, spec render.Spec, options render.Options) (render.Fragment, error) {
	in, ok := asDropdown(spec)
	if !ok {
		return render.Fragment{}, fmt.Errorf("widgets: dropdown: unexpected spec %T", spec)
	}
	id, err := requireID(in.ID)
	if err != nil {
		return render.Fragment{}, err
	}
	buttonClass, err := in.ButtonClass()
	if err != nil {
		return render.Fragment{}, err
	}
	width, err := cssLength("width", in.Width)
	if err != nil {
		return render.Fragment{}, err
	}
	icon := SanitizeIcon(in.Icon)
	if in.Circle && icon == "" {
		return render.Fragment{}, choice.Invalid("icon", "circle buttons need an icon")
	}

	bindings, err := r.bindings(id, in)
	if err != nil {
		return render.Fragment{}, err
	}

	containerClass := classList("dropdown btn-group widgetkit-dropdown", options.ThemeClass())
	if in.Up {
		containerClass = classList(containerClass, "dropup")
	}
	menuClass := "dropdown-menu"
	if in.Right {
		menuClass = classList(menuClass, "dropdown-menu-right")
	}
	menuStyle := ""
	if width != "" {
		menuStyle = "width: " + width
	}

	html, err := r.templates.RenderTemplate(dropdownTemplate, map[string]any{
		"id":              id,
		"label":           strings.TrimSpace(in.Label),
		"icon":            icon,
		"circle":          in.Circle,
		"button_class":    buttonClass,
		"container_class": containerClass,
		"style":           options.CSSVarsStyle(),
		"menu_class":      menuClass,
		"menu_style":      menuStyle,
		"content":         in.TrustedContent + SanitizeContent(in.Content),
	})
	if err != nil {
		return render.Fragment{}, fmt.Errorf("widgets: dropdown %q: render template: %w", id, err)
	}

	return render.Fragment{
		ID:     id,
		Kind:   KindDropdown,
		HTML:   html,
		Script: binder.Scripts(bindings...),
	}, nil
}

func (r *dropdownRenderer) bindings(id string, in DropdownSpec) ([]binder.Binding, error) {
	dropdown, err := binder.Bind(id, binder.KindDropdown, in.Config)
	if err != nil {
		return nil, err
	}
	bindings := []binder.Binding{dropdown}

	if in.Tooltip != nil {
		tooltip := *in.Tooltip
		title, err := TooltipHTML(tooltip.Title)
		if err != nil {
			return nil, err
		}
		tooltip.Title = title
		tooltip.HTML = true
		binding, err := binder.Bind(id, binder.KindTooltip, tooltip)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
	}

	if in.Animate != nil {
		binding, err := binder.Bind(id+"-container", binder.KindAnimate, *in.Animate)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

func asDropdown(spec render.Spec) (DropdownSpec, bool) {
	switch typed := spec.(type) {
	case DropdownSpec:
		return typed, true
	case *DropdownSpec:
		if typed == nil {
			return DropdownSpec{}, false
		}
		return *typed, true
	default:
		return DropdownSpec{}, false
	}
}
