package choice

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Choice pairs the text shown to the user with the value submitted for it.
type Choice struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Set is an ordered collection of choices with unique values. Insertion order
// is display order. The zero Set is empty and valid.
type Set struct {
	choices []Choice
	index   map[string]int
}

// NewSet builds a Set from parallel name and value slices. The slices must
// have the same length and values must be unique.
func NewSet(names, values []string) (Set, error) {
	if len(names) != len(values) {
		return Set{}, Invalid("choices", "names and values differ in length (%d != %d)", len(names), len(values))
	}
	choices := make([]Choice, len(values))
	for idx := range values {
		choices[idx] = Choice{Name: names[idx], Value: values[idx]}
	}
	return FromPairs(choices...)
}

// FromPairs builds a Set from explicit choices.
func FromPairs(choices ...Choice) (Set, error) {
	if len(choices) == 0 {
		return Set{}, nil
	}
	set := Set{
		choices: make([]Choice, 0, len(choices)),
		index:   make(map[string]int, len(choices)),
	}
	for _, c := range choices {
		if _, exists := set.index[c.Value]; exists {
			return Set{}, Invalid("choices", "duplicate value %q", c.Value)
		}
		set.index[c.Value] = len(set.choices)
		set.choices = append(set.choices, c)
	}
	return set, nil
}

// FromValues builds a Set where every choice is labelled by its own value.
func FromValues(values ...string) (Set, error) {
	return NewSet(values, values)
}

// Must panics when err is non-nil. Intended for fixtures and package level
// variables.
func Must(set Set, err error) Set {
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of choices.
func (s Set) Len() int {
	return len(s.choices)
}

// Choices returns a copy of the choices in display order.
func (s Set) Choices() []Choice {
	return slices.Clone(s.choices)
}

// Values returns the choice values in display order.
func (s Set) Values() []string {
	out := make([]string, len(s.choices))
	for idx, c := range s.choices {
		out[idx] = c.Value
	}
	return out
}

// Names returns the display names in display order.
func (s Set) Names() []string {
	out := make([]string, len(s.choices))
	for idx, c := range s.choices {
		out[idx] = c.Name
	}
	return out
}

// Contains reports whether value belongs to the set.
func (s Set) Contains(value string) bool {
	_, ok := s.index[value]
	return ok
}

// Lookup returns the choice holding value.
func (s Set) Lookup(value string) (Choice, bool) {
	idx, ok := s.index[value]
	if !ok {
		return Choice{}, false
	}
	return s.choices[idx], true
}

// Equal reports whether both sets hold the same choices in the same order.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.choices, other.choices)
}

func (s Set) String() string {
	return fmt.Sprintf("choice.Set%v", s.choices)
}

// MarshalJSON encodes the set as an ordered array of {name, value} objects.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.choices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.choices)
}

// UnmarshalJSON decodes an ordered array of {name, value} objects, applying
// the same validation as FromPairs. Entries without a name use their value.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []Choice
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("choice: decode set: %w", err)
	}
	for idx := range raw {
		if raw[idx].Name == "" {
			raw[idx].Name = raw[idx].Value
		}
	}
	set, err := FromPairs(raw...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
