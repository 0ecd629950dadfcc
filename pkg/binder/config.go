package binder

import (
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

// Normalizer is implemented by typed plugin configurations. Normalize applies
// defaults and validation and returns the value that is JSON encoded into the
// binding script.
type Normalizer interface {
	Normalize() (any, error)
}

// MultiConfig configures the multi.js dual list plugin.
type MultiConfig struct {
	DisableSearch     bool
	SearchPlaceholder string
	NonSelectedHeader string
	SelectedHeader    string
	// Limit caps the number of selectable items; zero or less means no limit.
	Limit           int
	HideEmptyGroups bool
}

type multiWire struct {
	EnableSearch      bool   `json:"enable_search"`
	SearchPlaceholder string `json:"search_placeholder"`
	NonSelectedHeader string `json:"non_selected_header,omitempty"`
	SelectedHeader    string `json:"selected_header,omitempty"`
	Limit             int    `json:"limit"`
	HideEmptyGroups   bool   `json:"hide_empty_groups"`
}

func (c MultiConfig) Normalize() (any, error) {
	out := multiWire{
		EnableSearch:      !c.DisableSearch,
		SearchPlaceholder: strings.TrimSpace(c.SearchPlaceholder),
		NonSelectedHeader: strings.TrimSpace(c.NonSelectedHeader),
		SelectedHeader:    strings.TrimSpace(c.SelectedHeader),
		Limit:             c.Limit,
		HideEmptyGroups:   c.HideEmptyGroups,
	}
	if out.SearchPlaceholder == "" {
		out.SearchPlaceholder = "Search..."
	}
	if out.Limit <= 0 {
		out.Limit = -1
	}
	return out, nil
}

// Placement positions a tooltip relative to its anchor.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementLeft   Placement = "left"
	PlacementRight  Placement = "right"
)

// Trigger decides how a tooltip is shown.
type Trigger string

const (
	TriggerHover  Trigger = "hover"
	TriggerFocus  Trigger = "focus"
	TriggerClick  Trigger = "click"
	TriggerManual Trigger = "manual"
)

// TooltipOptions configures the bootstrap tooltip plugin. A nil
// *TooltipOptions means "no tooltip".
type TooltipOptions struct {
	Title     string
	Placement Placement
	Trigger   Trigger
	// HTML lets the tooltip title contain markup. Titles must be sanitised
	// by the caller when this is set.
	HTML bool
}

type tooltipWire struct {
	Title     string `json:"title"`
	Placement string `json:"placement"`
	Trigger   string `json:"trigger"`
	HTML      bool   `json:"html"`
	Container string `json:"container"`
}

func (o TooltipOptions) Normalize() (any, error) {
	out := tooltipWire{
		Title:     strings.TrimSpace(o.Title),
		Placement: string(o.Placement),
		Trigger:   string(o.Trigger),
		HTML:      o.HTML,
		Container: "body",
	}
	if out.Title == "" {
		return nil, choice.Invalid("tooltip.title", "is required")
	}
	switch o.Placement {
	case "":
		out.Placement = string(PlacementBottom)
	case PlacementTop, PlacementBottom, PlacementLeft, PlacementRight:
	default:
		return nil, choice.Invalid("tooltip.placement", "unsupported placement %q", o.Placement)
	}
	switch o.Trigger {
	case "":
		out.Trigger = string(TriggerHover)
	case TriggerHover, TriggerFocus, TriggerClick, TriggerManual:
	default:
		return nil, choice.Invalid("tooltip.trigger", "unsupported trigger %q", o.Trigger)
	}
	return out, nil
}

// AnimateOptions configures animate.css enter/exit effects applied when a
// dropdown menu opens and closes.
type AnimateOptions struct {
	Enter    string
	Exit     string
	Duration time.Duration
}

const (
	DefaultEnterAnimation    = "fadeInDown"
	DefaultExitAnimation     = "fadeOutUp"
	DefaultAnimationDuration = 500 * time.Millisecond
)

var animationName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

type animateWire struct {
	Enter    string  `json:"enter"`
	Exit     string  `json:"exit"`
	Duration float64 `json:"duration"`
}

func (o AnimateOptions) Normalize() (any, error) {
	out := animateWire{
		Enter:    strings.TrimSpace(o.Enter),
		Exit:     strings.TrimSpace(o.Exit),
		Duration: o.Duration.Seconds(),
	}
	if out.Enter == "" {
		out.Enter = DefaultEnterAnimation
	}
	if out.Exit == "" {
		out.Exit = DefaultExitAnimation
	}
	if o.Duration <= 0 {
		out.Duration = DefaultAnimationDuration.Seconds()
	}
	if !animationName.MatchString(out.Enter) {
		return nil, choice.Invalid("animate.enter", "invalid animation name %q", out.Enter)
	}
	if !animationName.MatchString(out.Exit) {
		return nil, choice.Invalid("animate.exit", "invalid animation name %q", out.Exit)
	}
	return out, nil
}

// DropdownConfig configures the bootstrap dropdown plugin.
type DropdownConfig struct {
	NoFlip bool
	// Boundary is one of "scrollParent" (default), "viewport" or "window".
	Boundary string
	Static   bool
}

type dropdownWire struct {
	Flip     bool   `json:"flip"`
	Boundary string `json:"boundary"`
	Display  string `json:"display"`
}

func (c DropdownConfig) Normalize() (any, error) {
	out := dropdownWire{
		Flip:     !c.NoFlip,
		Boundary: strings.TrimSpace(c.Boundary),
		Display:  "dynamic",
	}
	switch out.Boundary {
	case "":
		out.Boundary = "scrollParent"
	case "scrollParent", "viewport", "window":
	default:
		return nil, choice.Invalid("dropdown.boundary", "unsupported boundary %q", out.Boundary)
	}
	if c.Static {
		out.Display = "static"
	}
	return out, nil
}
