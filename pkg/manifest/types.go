package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

// Widget is one declared widget. Multi and Dropdown carry kind specific
// settings and are ignored for other kinds.
type Widget struct {
	Kind     string        `json:"kind" yaml:"kind"`
	ID       string        `json:"id" yaml:"id"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Choices  []ChoiceEntry `json:"choices,omitempty" yaml:"choices,omitempty"`
	Selected []string      `json:"selected,omitempty" yaml:"selected,omitempty"`
	Width    string        `json:"width,omitempty" yaml:"width,omitempty"`

	Multi    *MultiSettings    `json:"multi,omitempty" yaml:"multi,omitempty"`
	Dropdown *DropdownSettings `json:"dropdown,omitempty" yaml:"dropdown,omitempty"`

	// Source is the file the widget was declared in.
	Source string `json:"-" yaml:"-"`
}

// MultiSettings mirrors binder.MultiConfig.
type MultiSettings struct {
	DisableSearch     bool   `json:"disableSearch,omitempty" yaml:"disableSearch,omitempty"`
	SearchPlaceholder string `json:"searchPlaceholder,omitempty" yaml:"searchPlaceholder,omitempty"`
	NonSelectedHeader string `json:"nonSelectedHeader,omitempty" yaml:"nonSelectedHeader,omitempty"`
	SelectedHeader    string `json:"selectedHeader,omitempty" yaml:"selectedHeader,omitempty"`
	Limit             int    `json:"limit,omitempty" yaml:"limit,omitempty"`
	HideEmptyGroups   bool   `json:"hideEmptyGroups,omitempty" yaml:"hideEmptyGroups,omitempty"`
}

// DropdownSettings mirrors widgets.DropdownSpec. Content is sanitised at
// render time.
type DropdownSettings struct {
	Status   string           `json:"status,omitempty" yaml:"status,omitempty"`
	Size     string           `json:"size,omitempty" yaml:"size,omitempty"`
	Icon     string           `json:"icon,omitempty" yaml:"icon,omitempty"`
	Content  string           `json:"content,omitempty" yaml:"content,omitempty"`
	Circle   bool             `json:"circle,omitempty" yaml:"circle,omitempty"`
	Right    bool             `json:"right,omitempty" yaml:"right,omitempty"`
	Up       bool             `json:"up,omitempty" yaml:"up,omitempty"`
	NoFlip   bool             `json:"noFlip,omitempty" yaml:"noFlip,omitempty"`
	Boundary string           `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Static   bool             `json:"static,omitempty" yaml:"static,omitempty"`
	Tooltip  *TooltipSettings `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Animate  *AnimateSettings `json:"animate,omitempty" yaml:"animate,omitempty"`
}

// TooltipSettings holds a markdown title and its placement.
type TooltipSettings struct {
	Title     string `json:"title" yaml:"title"`
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`
	Trigger   string `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// AnimateSettings names animate.css effects; Duration is in seconds.
type AnimateSettings struct {
	Enter    string  `json:"enter,omitempty" yaml:"enter,omitempty"`
	Exit     string  `json:"exit,omitempty" yaml:"exit,omitempty"`
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// ChoiceEntry is written either as a bare value or as {name, value}.
type ChoiceEntry choice.Choice

func (c *ChoiceEntry) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*c = ChoiceEntry{Name: value, Value: value}
		return nil
	}
	var pair choice.Choice
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("choice must be a string or {name, value}: %w", err)
	}
	*c = normaliseEntry(pair)
	return nil
}

func (c *ChoiceEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = ChoiceEntry{Name: node.Value, Value: node.Value}
		return nil
	case yaml.MappingNode:
		var pair choice.Choice
		if err := node.Decode(&pair); err != nil {
			return err
		}
		*c = normaliseEntry(pair)
		return nil
	default:
		return fmt.Errorf("line %d: choice must be a string or {name, value}", node.Line)
	}
}

// MarshalYAML writes the short form when name and value match.
func (c ChoiceEntry) MarshalYAML() (any, error) {
	if c.Name == c.Value {
		return c.Value, nil
	}
	return choice.Choice(c), nil
}

func normaliseEntry(pair choice.Choice) ChoiceEntry {
	if strings.TrimSpace(pair.Name) == "" {
		pair.Name = pair.Value
	}
	return ChoiceEntry(pair)
}
