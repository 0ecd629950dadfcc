package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-widgetkit/pkg/binder"
	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/render"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

// ChoiceSet builds the widget's validated choice set.
func (w Widget) ChoiceSet() (choice.Set, error) {
	pairs := make([]choice.Choice, len(w.Choices))
	for idx, entry := range w.Choices {
		pairs[idx] = choice.Choice(entry)
	}
	return choice.FromPairs(pairs...)
}

// Spec converts the declaration into the spec of its registered kind.
func (w Widget) Spec() (render.Spec, error) {
	switch w.Kind {
	case widgets.KindMultiInput:
		return w.multiInputSpec()
	case widgets.KindDropdown:
		return w.dropdownSpec(), nil
	default:
		return nil, fmt.Errorf("manifest: widget %q (file %s): unsupported kind %q", w.ID, w.Source, w.Kind)
	}
}

// Render converts the declaration and renders it through registry.
func (w Widget) Render(ctx context.Context, registry *render.Registry, options render.Options) (render.Fragment, error) {
	if registry == nil {
		return render.Fragment{}, fmt.Errorf("manifest: registry is required")
	}
	spec, err := w.Spec()
	if err != nil {
		return render.Fragment{}, err
	}
	fragment, err := registry.Render(ctx, spec, options)
	if err != nil {
		return render.Fragment{}, fmt.Errorf("manifest: widget %q (file %s): %w", w.ID, w.Source, err)
	}
	return fragment, nil
}

func (w Widget) multiInputSpec() (widgets.MultiInputSpec, error) {
	set, err := w.ChoiceSet()
	if err != nil {
		return widgets.MultiInputSpec{}, fmt.Errorf("manifest: widget %q (file %s): %w", w.ID, w.Source, err)
	}
	spec := widgets.MultiInputSpec{
		ID:       w.ID,
		Label:    w.Label,
		Choices:  set,
		Selected: choice.Selection(append([]string(nil), w.Selected...)),
		Width:    w.Width,
	}
	if m := w.Multi; m != nil {
		spec.Config = binder.MultiConfig{
			DisableSearch:     m.DisableSearch,
			SearchPlaceholder: m.SearchPlaceholder,
			NonSelectedHeader: m.NonSelectedHeader,
			SelectedHeader:    m.SelectedHeader,
			Limit:             m.Limit,
			HideEmptyGroups:   m.HideEmptyGroups,
		}
	}
	return spec, nil
}

func (w Widget) dropdownSpec() widgets.DropdownSpec {
	spec := widgets.DropdownSpec{
		ID:    w.ID,
		Label: w.Label,
		Width: w.Width,
	}
	d := w.Dropdown
	if d == nil {
		return spec
	}
	spec.Status = widgets.Status(d.Status)
	spec.Size = widgets.Size(d.Size)
	spec.Icon = d.Icon
	spec.Content = d.Content
	spec.Circle = d.Circle
	spec.Right = d.Right
	spec.Up = d.Up
	spec.Config = binder.DropdownConfig{NoFlip: d.NoFlip, Boundary: d.Boundary, Static: d.Static}
	if d.Tooltip != nil {
		spec.Tooltip = &binder.TooltipOptions{
			Title:     d.Tooltip.Title,
			Placement: binder.Placement(d.Tooltip.Placement),
			Trigger:   binder.Trigger(d.Tooltip.Trigger),
		}
	}
	if d.Animate != nil {
		spec.Animate = &binder.AnimateOptions{
			Enter:    d.Animate.Enter,
			Exit:     d.Animate.Exit,
			Duration: time.Duration(d.Animate.Duration * float64(time.Second)),
		}
	}
	return spec
}
