// Package prompt walks a user through declaring a widget on the terminal and
// returns the result as a manifest entry.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

var (
	kindOptions   = []string{widgets.KindMultiInput, widgets.KindDropdown}
	statusOptions = []string{"default", "primary", "info", "success", "warning", "danger", "link"}
)

// BuildWidget asks for a widget kind and its settings.
func BuildWidget(ctx context.Context, driver Driver) (manifest.Widget, error) {
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Widget kind",
		Options: kindOptions,
	})
	if err != nil {
		return manifest.Widget{}, err
	}
	if idx < 0 || idx >= len(kindOptions) {
		return manifest.Widget{}, fmt.Errorf("prompt: unknown widget kind selection %d", idx)
	}

	id, err := driver.Input(ctx, InputConfig{
		Message:   "Widget id",
		Help:      "Unique on the page; used as the element id.",
		Validator: validateID,
	})
	if err != nil {
		return manifest.Widget{}, err
	}
	if err := validateID(id); err != nil {
		return manifest.Widget{}, choice.Invalid("id", "%v", err)
	}
	label, err := driver.Input(ctx, InputConfig{Message: "Label"})
	if err != nil {
		return manifest.Widget{}, err
	}

	widget := manifest.Widget{
		Kind:  kindOptions[idx],
		ID:    strings.TrimSpace(id),
		Label: strings.TrimSpace(label),
	}
	switch widget.Kind {
	case widgets.KindMultiInput:
		err = askMultiInput(ctx, driver, &widget)
	case widgets.KindDropdown:
		err = askDropdown(ctx, driver, &widget)
	}
	if err != nil {
		return manifest.Widget{}, err
	}
	return widget, nil
}

func askMultiInput(ctx context.Context, driver Driver, widget *manifest.Widget) error {
	raw, err := driver.TextArea(ctx, TextAreaConfig{
		Message: "Choices",
		Help:    `One per line, either "value" or "Name=value".`,
	})
	if err != nil {
		return err
	}
	entries, err := ParseChoices(raw)
	if err != nil {
		return err
	}
	widget.Choices = entries

	if len(entries) > 0 {
		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name
		}
		picked, err := driver.MultiSelect(ctx, SelectConfig{
			Message: "Initially selected",
			Options: names,
		})
		if err != nil {
			return err
		}
		for _, i := range picked {
			widget.Selected = append(widget.Selected, entries[i].Value)
		}
	}

	search, err := driver.Confirm(ctx, ConfirmConfig{Message: "Enable search?", Default: true})
	if err != nil {
		return err
	}
	limitRaw, err := driver.Input(ctx, InputConfig{
		Message:   "Selection limit",
		Default:   "0",
		Help:      "0 means unlimited.",
		Validator: validateLimit,
	})
	if err != nil {
		return err
	}
	if err := validateLimit(limitRaw); err != nil {
		return choice.Invalid("limit", "%v", err)
	}
	limit, _ := strconv.Atoi(strings.TrimSpace(limitRaw))

	if !search || limit > 0 {
		widget.Multi = &manifest.MultiSettings{DisableSearch: !search, Limit: limit}
	}
	return nil
}

func askDropdown(ctx context.Context, driver Driver, widget *manifest.Widget) error {
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Button status",
		Options: statusOptions,
	})
	if err != nil {
		return err
	}
	content, err := driver.TextArea(ctx, TextAreaConfig{
		Message: "Menu content (HTML)",
		Help:    "Scripts and event handlers are removed when rendering.",
	})
	if err != nil {
		return err
	}
	tooltip, err := driver.Input(ctx, InputConfig{
		Message: "Tooltip (markdown, empty for none)",
	})
	if err != nil {
		return err
	}

	settings := &manifest.DropdownSettings{Content: strings.TrimSpace(content)}
	if idx >= 0 && idx < len(statusOptions) {
		settings.Status = statusOptions[idx]
	}
	if title := strings.TrimSpace(tooltip); title != "" {
		settings.Tooltip = &manifest.TooltipSettings{Title: title}
	}
	widget.Dropdown = settings
	return nil
}

// ParseChoices reads one choice per line. "Name=value" sets both parts, a
// bare line is used as name and value. Blank lines are skipped and values
// must be unique.
func ParseChoices(raw string) ([]manifest.ChoiceEntry, error) {
	var names, values []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, "=")
		if !found {
			value = name
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if value == "" {
			return nil, choice.Invalid("choices", "line %q has an empty value", line)
		}
		if name == "" {
			name = value
		}
		names = append(names, name)
		values = append(values, value)
	}
	set, err := choice.NewSet(names, values)
	if err != nil {
		return nil, err
	}
	entries := make([]manifest.ChoiceEntry, 0, set.Len())
	for _, c := range set.Choices() {
		entries = append(entries, manifest.ChoiceEntry(c))
	}
	return entries, nil
}

func validateID(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("id is required")
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return fmt.Errorf("id must not contain whitespace")
	}
	return nil
}

func validateLimit(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fmt.Errorf("limit must be a non-negative integer")
	}
	return nil
}
