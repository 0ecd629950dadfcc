package update

import "github.com/goliatone/go-widgetkit/pkg/choice"

// Optional holds a value that is either set or left unchanged. The zero value
// means "no change".
type Optional[T any] struct {
	value T
	set   bool
}

// Set marks value as the new state.
func Set[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

// Keep returns the "no change" marker. Equivalent to the zero value.
func Keep[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field carries a change.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Fields is the partial state change requested for one widget.
type Fields struct {
	Label     Optional[string]
	Choices   Optional[choice.Set]
	Selection Optional[choice.Selection]
}

// Empty reports whether no field carries a change.
func (f Fields) Empty() bool {
	return !f.Label.IsSet() && !f.Choices.IsSet() && !f.Selection.IsSet()
}
