package binder_test

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetkit/pkg/binder"
	"github.com/goliatone/go-widgetkit/pkg/choice"
)

func TestEscapeIdentifier_KnownValues(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"my id!":  `my\ id\!`,
		"a.b#c":   `a\.b\#c`,
		"123":     `\31 23`,
		"-1a":     `-\31 a`,
		"-":       `\-`,
		"--x":     "--x",
		"\x01x":   `\1 x`,
		"café":    "café",
		"a\x00b":  "a\uFFFDb",
		"w>1 + 2": `w\>1\ \+\ 2`,
	}
	for in, want := range cases {
		if got := binder.EscapeIdentifier(in); got != want {
			t.Fatalf("EscapeIdentifier(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeIdentifier_ResolvesToLiteralID(t *testing.T) {
	ids := []string{"my id!", "w1", "a.b", "x[y]", "4you", "-9", "quote\"d", "tab\tbed", "ünï", "a:b>c~d"}
	for _, id := range ids {
		selector := binder.IDSelector(id)
		if !strings.HasPrefix(selector, "#") {
			t.Fatalf("selector %q missing #", selector)
		}
		if got := unescapeIdentifier(t, selector[1:]); got != id {
			t.Fatalf("selector %q resolves to %q, want %q", selector, got, id)
		}
	}
}

func TestBind_EscapesElementID(t *testing.T) {
	binding, err := binder.Bind("my id!", binder.KindMulti, binder.MultiConfig{})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if binding.Selector != `#my\ id\!` {
		t.Fatalf("unexpected selector %q", binding.Selector)
	}

	want := `$("#my\\ id\\!")["multi"]({"enable_search":true,"search_placeholder":"Search...","limit":-1,"hide_empty_groups":false});`
	if got := binding.Statement(); got != want {
		t.Fatalf("statement mismatch\nwant: %s\n got: %s", want, got)
	}

	script := binding.Script()
	if !strings.HasPrefix(script, "<script>jQuery(function($){") || !strings.HasSuffix(script, "});</script>") {
		t.Fatalf("unexpected script wrapper: %s", script)
	}
}

func TestBind_CannotBreakOutOfScript(t *testing.T) {
	binding, err := binder.Bind(`x</script><script>alert(1)`, binder.KindMulti, binder.MultiConfig{
		SelectedHeader: `</script><img src=x onerror=alert(1)>`,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	script := binding.Script()
	if n := strings.Count(strings.ToLower(script), "</script"); n != 1 {
		t.Fatalf("expected exactly one closing script tag, found %d in %s", n, script)
	}
	if strings.Contains(script, "<img") {
		t.Fatalf("raw markup leaked into script: %s", script)
	}
}

func TestBind_Validation(t *testing.T) {
	if _, err := binder.Bind("  ", binder.KindMulti, nil); !choice.IsValidation(err) {
		t.Fatalf("expected validation error for empty id, got %v", err)
	}
	if _, err := binder.Bind("w\xff1", binder.KindMulti, nil); !choice.IsValidation(err) {
		t.Fatalf("expected validation error for invalid UTF-8 id, got %v", err)
	}
	if _, err := binder.Bind("w1", binder.Kind("carousel"), nil); !choice.IsValidation(err) {
		t.Fatalf("expected validation error for unknown kind, got %v", err)
	}
	if _, err := binder.Bind("w1", binder.KindTooltip, binder.TooltipOptions{}); !choice.IsValidation(err) {
		t.Fatalf("expected validation error for missing tooltip title, got %v", err)
	}
}

func TestBind_NilConfigEncodesEmptyObject(t *testing.T) {
	binding, err := binder.Bind("menu", binder.KindDropdown, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if string(binding.Config) != "{}" {
		t.Fatalf("expected empty config, got %s", binding.Config)
	}
}

func TestTooltipOptions_Defaults(t *testing.T) {
	binding, err := binder.Bind("btn", binder.KindTooltip, binder.TooltipOptions{Title: " Help "})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(binding.Config, &got); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	want := map[string]any{
		"title":     "Help",
		"placement": "bottom",
		"trigger":   "hover",
		"html":      false,
		"container": "body",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := binder.Bind("btn", binder.KindTooltip, binder.TooltipOptions{Title: "x", Placement: "middle"}); !choice.IsValidation(err) {
		t.Fatalf("expected validation error for placement, got %v", err)
	}
}

func TestAnimateOptions_Normalize(t *testing.T) {
	binding, err := binder.Bind("menu", binder.KindAnimate, binder.AnimateOptions{Enter: "bounceIn", Duration: 250 * time.Millisecond})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if string(binding.Config) != `{"enter":"bounceIn","exit":"fadeOutUp","duration":0.25}` {
		t.Fatalf("unexpected config %s", binding.Config)
	}

	_, err = binder.Bind("menu", binder.KindAnimate, binder.AnimateOptions{Exit: "fade out; x"})
	if !choice.IsValidation(err) {
		t.Fatalf("expected validation error for animation name, got %v", err)
	}
}

func TestScripts_CombinesBindings(t *testing.T) {
	first, _ := binder.Bind("a", binder.KindDropdown, binder.DropdownConfig{})
	second, _ := binder.Bind("a", binder.KindAnimate, binder.AnimateOptions{})

	script := binder.Scripts(first, second)
	if strings.Count(script, "<script>") != 1 {
		t.Fatalf("expected a single script element: %s", script)
	}
	if strings.Index(script, first.Statement()) > strings.Index(script, second.Statement()) {
		t.Fatalf("bindings out of order: %s", script)
	}
	if binder.Scripts() != "" {
		t.Fatalf("expected empty output for no bindings")
	}
}

// unescapeIdentifier decodes CSS escapes the way a selector engine does.
func unescapeIdentifier(t *testing.T, escaped string) string {
	t.Helper()
	runes := []rune(escaped)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			if !(r >= 0x80 || r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				t.Fatalf("unescaped special character %q in %q", r, escaped)
			}
			b.WriteRune(r)
			continue
		}
		i++
		if i >= len(runes) {
			t.Fatalf("dangling escape in %q", escaped)
		}
		hex := ""
		for i < len(runes) && len(hex) < 6 && strings.ContainsRune("0123456789abcdefABCDEF", runes[i]) {
			hex += string(runes[i])
			i++
		}
		if hex == "" {
			b.WriteRune(runes[i])
			continue
		}
		code, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			t.Fatalf("bad hex escape %q: %v", hex, err)
		}
		b.WriteRune(rune(code))
		if i < len(runes) && runes[i] == ' ' {
			continue
		}
		i--
	}
	return b.String()
}
