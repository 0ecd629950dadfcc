package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("classlist") {
		_ = pongo2.RegisterFilter("classlist", filterClassList)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterClassList joins a list of class names (or a whitespace separated
// string) into one class attribute value, dropping blanks and duplicates.
func filterClassList(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var tokens []string
	if in.IsString() {
		tokens = strings.Fields(in.String())
	} else {
		in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
			tokens = append(tokens, strings.Fields(key.String())...)
			return true
		}, func() {})
	}

	seen := make(map[string]struct{}, len(tokens))
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keep = append(keep, token)
	}
	return pongo2.AsValue(strings.Join(keep, " ")), nil
}
