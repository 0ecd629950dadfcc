package binder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

// Kind names the jQuery plugin a binding initialises.
type Kind string

const (
	KindMulti    Kind = "multi"
	KindDropdown Kind = "dropdown"
	KindTooltip  Kind = "tooltip"
	KindAnimate  Kind = "animateWidget"
)

// Valid reports whether k is a plugin the client runtime knows.
func (k Kind) Valid() bool {
	switch k {
	case KindMulti, KindDropdown, KindTooltip, KindAnimate:
		return true
	default:
		return false
	}
}

// Binding attaches a client plugin to one element. Selector and Config are
// already encoded; Binding values are immutable once built.
type Binding struct {
	ElementID string
	Selector  string
	Kind      Kind
	Config    json.RawMessage
}

// Bind validates the element id and plugin kind, normalises config and
// encodes it. config may be nil, a Normalizer or any JSON encodable value.
func Bind(elementID string, kind Kind, config any) (Binding, error) {
	if strings.TrimSpace(elementID) == "" {
		return Binding{}, choice.Invalid("elementId", "is required")
	}
	if !utf8.ValidString(elementID) {
		return Binding{}, choice.Invalid("elementId", "must be valid UTF-8")
	}
	if !kind.Valid() {
		return Binding{}, choice.Invalid("kind", "unknown widget kind %q", kind)
	}

	if normalizer, ok := config.(Normalizer); ok {
		normalized, err := normalizer.Normalize()
		if err != nil {
			return Binding{}, err
		}
		config = normalized
	}

	encoded := json.RawMessage("{}")
	if config != nil {
		raw, err := encodeJSON(config)
		if err != nil {
			return Binding{}, fmt.Errorf("binder: encode %s config: %w", kind, err)
		}
		encoded = raw
	}

	return Binding{
		ElementID: elementID,
		Selector:  IDSelector(elementID),
		Kind:      kind,
		Config:    encoded,
	}, nil
}

// Statement returns the JavaScript statement that initialises the plugin,
// assuming jQuery is bound to $.
func (b Binding) Statement() string {
	selector, _ := encodeJSON(b.Selector)
	kind, _ := encodeJSON(string(b.Kind))
	config := b.Config
	if len(config) == 0 {
		config = json.RawMessage("{}")
	}

	var sb strings.Builder
	sb.WriteString("$(")
	sb.Write(selector)
	sb.WriteString(")[")
	sb.Write(kind)
	sb.WriteString("](")
	sb.Write(config)
	sb.WriteString(");")
	return sb.String()
}

// Script wraps the binding in a <script> element that runs on document ready.
func (b Binding) Script() string {
	return Scripts(b)
}

// Scripts emits one <script> element initialising every binding, in order,
// inside a single document ready handler. It returns "" for no bindings.
func Scripts(bindings ...Binding) string {
	if len(bindings) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<script>jQuery(function($){")
	for _, binding := range bindings {
		sb.WriteString(binding.Statement())
	}
	sb.WriteString("});</script>")
	return sb.String()
}

// encodeJSON marshals with HTML escaping and without the trailing newline an
// Encoder adds, so the output can sit inside an inline <script>.
func encodeJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
