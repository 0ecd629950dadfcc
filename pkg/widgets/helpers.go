package widgets

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

var cssLengthPattern = regexp.MustCompile(`^(auto|0|\d+(\.\d+)?(px|em|rem|%|vw|ch))$`)

// cssLength validates a CSS length used for widths and margins.
func cssLength(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if !cssLengthPattern.MatchString(trimmed) {
		return "", choice.Invalid(field, "%q is not a CSS length", value)
	}
	return trimmed, nil
}

func requireID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", choice.Invalid("id", "widget id is required")
	}
	return trimmed, nil
}

// joinStyle joins non-empty declarations with "; ".
func joinStyle(declarations ...string) string {
	parts := make([]string, 0, len(declarations))
	for _, decl := range declarations {
		if decl = strings.TrimSpace(decl); decl != "" {
			parts = append(parts, decl)
		}
	}
	return strings.Join(parts, "; ")
}

// classList joins class tokens, dropping blanks and duplicates.
func classList(tokens ...string) string {
	seen := make(map[string]struct{}, len(tokens))
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		for _, field := range strings.Fields(token) {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			keep = append(keep, field)
		}
	}
	return strings.Join(keep, " ")
}
