package update

import (
	"slices"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

// ClientState mirrors how the browser runtime applies input messages to a
// rendered select widget.
type ClientState struct {
	Label   string
	Options []choice.OptionNode
}

// NewClientState builds the client view of a freshly rendered widget.
func NewClientState(label string, set choice.Set, selection choice.Selection) *ClientState {
	return &ClientState{
		Label:   label,
		Options: choice.Build(set, selection),
	}
}

// Apply merges msg: label first, then the option list is replaced wholesale,
// then the selection is applied against the current options. Omitted fields
// leave prior state untouched.
func (c *ClientState) Apply(msg Message) error {
	if msg.Label != nil {
		c.Label = *msg.Label
	}
	if msg.Options != nil {
		options, err := choice.ParseOptions(*msg.Options)
		if err != nil {
			return err
		}
		c.Options = options
	}
	if msg.Value != nil {
		for idx := range c.Options {
			c.Options[idx].Selected = slices.Contains(*msg.Value, c.Options[idx].Value)
		}
	}
	return nil
}

// Selection returns the selected values in option order.
func (c *ClientState) Selection() choice.Selection {
	var out choice.Selection
	for _, option := range c.Options {
		if option.Selected {
			out = append(out, option.Value)
		}
	}
	return out
}

// Values returns every option value in order.
func (c *ClientState) Values() []string {
	out := make([]string, len(c.Options))
	for idx, option := range c.Options {
		out[idx] = option.Value
	}
	return out
}
