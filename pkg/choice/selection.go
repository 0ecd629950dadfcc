package choice

import "slices"

// Selection lists the selected values of a widget. Single-select widgets use
// at most one entry.
type Selection []string

// Contains reports whether value is selected.
func (s Selection) Contains(value string) bool {
	return slices.Contains(s, value)
}

// Validate fails when any selected value is missing from set.
func (s Selection) Validate(set Set) error {
	for _, value := range s {
		if !set.Contains(value) {
			return Invalid("selected", "value %q is not one of the available choices", value)
		}
	}
	return nil
}

// Retain returns the selected values still present in set, deduplicated and
// in selection order.
func (s Selection) Retain(set Set) Selection {
	if len(s) == 0 {
		return nil
	}
	out := make(Selection, 0, len(s))
	for _, value := range s {
		if !set.Contains(value) || out.Contains(value) {
			continue
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
