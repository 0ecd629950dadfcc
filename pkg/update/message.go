package update

import (
	"encoding/json"
	"fmt"
)

// Message is the wire envelope of an input update. Nil fields are omitted
// from the encoded object.
type Message struct {
	Label *string `json:"label,omitempty"`
	// Options carries pre-rendered <option> markup.
	Options *string `json:"options,omitempty"`
	// Value is always encoded as an array when present.
	Value *[]string `json:"value,omitempty"`
}

// Empty reports whether the message carries no field.
func (m Message) Empty() bool {
	return m.Label == nil && m.Options == nil && m.Value == nil
}

// Keys lists the keys present on the wire, in encoding order.
func (m Message) Keys() []string {
	var keys []string
	if m.Label != nil {
		keys = append(keys, "label")
	}
	if m.Options != nil {
		keys = append(keys, "options")
	}
	if m.Value != nil {
		keys = append(keys, "value")
	}
	return keys
}

// DecodeMessage parses an encoded envelope. Keys present with a null value
// are treated as absent.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("update: decode message: %w", err)
	}
	return msg, nil
}

// ToggleMessage asks the client to open or close a dropdown.
type ToggleMessage struct {
	ID string `json:"id"`
}

// ToggleDropdownType is the custom message type handled by the dropdown
// runtime.
const ToggleDropdownType = "widgetkit:toggle-dropdown"
