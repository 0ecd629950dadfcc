package widgets

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	iconPolicyOnce    sync.Once
	iconPolicy        *bluemonday.Policy
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
	tooltipPolicyOnce sync.Once
	tooltipPolicy     *bluemonday.Policy
)

// SanitizeIcon strips everything but inline SVG shapes and <i>/<span> icon
// font markup from raw.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

// SanitizeContent cleans dropdown menu markup. Formatting, links, lists and
// form controls survive; scripts, event handlers and styles do not.
func SanitizeContent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(contentSanitizer().Sanitize(trimmed))
}

// TooltipHTML renders markdown into the sanitised inline HTML used as a
// tooltip title. A single paragraph is unwrapped.
func TooltipHTML(markdown string) (string, error) {
	source := strings.TrimSpace(markdown)
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("widgets: render tooltip markdown: %w", err)
	}
	cleaned := strings.TrimSpace(tooltipSanitizer().Sanitize(buf.String()))
	if strings.HasPrefix(cleaned, "<p>") && strings.HasSuffix(cleaned, "</p>") &&
		strings.Count(cleaned, "<p>") == 1 {
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "<p>"), "</p>")
	}
	return cleaned, nil
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "i", "span",
		)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable",
		).OnElements("svg")
		policy.AllowAttrs("href", "xlink:href").OnElements("use")
		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin",
			).OnElements(el)
		}
		policy.AllowAttrs("aria-hidden").OnElements("i", "span")
		policy.AllowAttrs("class").Globally()
		iconPolicy = policy
	})
	return iconPolicy
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "id", "role", "aria-label", "aria-hidden").Globally()
		policy.AllowElements("form", "fieldset", "legend", "label", "input", "select", "option", "optgroup", "textarea", "button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("type", "name", "value", "checked", "placeholder", "min", "max", "step").OnElements("input")
		policy.AllowAttrs("name", "multiple").OnElements("select")
		policy.AllowAttrs("value", "selected").OnElements("option")
		policy.AllowAttrs("label").OnElements("optgroup")
		policy.AllowAttrs("name", "rows", "cols", "placeholder").OnElements("textarea")
		policy.AllowAttrs("type", "name", "value").OnElements("button")
		policy.AllowDataAttributes()
		contentPolicy = policy
	})
	return contentPolicy
}

func tooltipSanitizer() *bluemonday.Policy {
	tooltipPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("p", "br", "strong", "b", "em", "i", "code", "span", "ul", "ol", "li")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		tooltipPolicy = policy
	})
	return tooltipPolicy
}
