package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Options describe per-request data that renderers can use to customise
// their output without changing the widget spec.
type Options struct {
	// Theme supplies CSS variables for the widget root and resolves asset
	// keys into URLs. Nil renders unthemed markup with asset keys as-is.
	Theme *theme.RendererConfig
}

// CSSVarsStyle renders the theme's CSS variables as an inline style value,
// sorted by name. Entries whose name does not start with "--" are skipped.
func (o Options) CSSVarsStyle() string {
	if o.Theme == nil || len(o.Theme.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(o.Theme.CSSVars))
	for key := range o.Theme.CSSVars {
		if !strings.HasPrefix(key, "--") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(o.Theme.CSSVars[key])
		if value == "" || strings.ContainsAny(value, ";{}") {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}

// ThemeClass returns "theme-<name>" plus "theme-<variant>" when set.
func (o Options) ThemeClass() string {
	if o.Theme == nil {
		return ""
	}
	var classes []string
	if name := strings.TrimSpace(o.Theme.Theme); name != "" {
		classes = append(classes, "theme-"+name)
	}
	if variant := strings.TrimSpace(o.Theme.Variant); variant != "" {
		classes = append(classes, "theme-"+variant)
	}
	return strings.Join(classes, " ")
}

// AssetURL resolves an asset key through the theme, falling back to the key.
func (o Options) AssetURL(key string) string {
	if o.Theme == nil || o.Theme.AssetURL == nil {
		return key
	}
	if resolved := o.Theme.AssetURL(key); resolved != "" {
		return resolved
	}
	return key
}

// AssetURLs resolves every key.
func (o Options) AssetURLs(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, o.AssetURL(key))
	}
	return out
}
