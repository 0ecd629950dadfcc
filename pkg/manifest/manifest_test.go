package manifest_test

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/render"
	"github.com/goliatone/go-widgetkit/pkg/testsupport"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

func loadStore(t *testing.T, dir string) *manifest.Store {
	t.Helper()
	store, err := manifest.LoadFS(os.DirFS("testdata/" + dir))
	if err != nil {
		t.Fatalf("load %s: %v", dir, err)
	}
	return store
}

func TestLoadFS_YAMLAndJSONC(t *testing.T) {
	store := loadStore(t, "basic")

	var ids []string
	for _, widget := range store.Widgets() {
		ids = append(ids, widget.ID)
	}
	if diff := cmp.Diff([]string{"fruits", "menu"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{widgets.KindMultiInput, widgets.KindDropdown}, store.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	fruits, ok := store.Widget("fruits")
	if !ok {
		t.Fatalf("fruits missing")
	}
	if fruits.Source != "fruits.yaml" {
		t.Fatalf("source mismatch: %s", fruits.Source)
	}
	set, err := fruits.ChoiceSet()
	if err != nil {
		t.Fatalf("choice set: %v", err)
	}
	want := []choice.Choice{
		{Name: "Banana", Value: "Banana"},
		{Name: "Kiwi", Value: "Kiwi"},
		{Name: "Dragon fruit", Value: "pitaya"},
	}
	if diff := cmp.Diff(want, set.Choices()); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	menu, _ := store.Widget("menu")
	if menu.Dropdown == nil || menu.Dropdown.Animate == nil || menu.Dropdown.Animate.Duration != 0.25 {
		t.Fatalf("dropdown settings not parsed: %#v", menu.Dropdown)
	}
}

func TestLoadFS_DuplicateIDs(t *testing.T) {
	_, err := manifest.LoadFS(os.DirFS("testdata/duplicate"))
	if err == nil || !strings.Contains(err.Error(), `duplicate widget id "fruits"`) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file":    {"a.yaml": {Data: []byte("  \n")}},
		"unknown field": {"a.yaml": {Data: []byte("widgets:\n  - kind: dropdown\n    id: x\n    colour: red\n")}},
		"missing id":    {"a.json": {Data: []byte(`{"widgets":[{"kind":"dropdown"}]}`)}},
		"missing kind":  {"a.json": {Data: []byte(`{"widgets":[{"id":"x"}]}`)}},
		"bad choice":    {"a.yaml": {Data: []byte("widgets:\n  - kind: multi-input\n    id: x\n    choices: [[a]]\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := manifest.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_IgnoresOtherFiles(t *testing.T) {
	store, err := manifest.LoadFS(fstest.MapFS{"README.md": {Data: []byte("# notes")}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	nilStore, err := manifest.LoadFS(nil)
	if err != nil || !nilStore.Empty() {
		t.Fatalf("expected empty store for nil fs, got %v", err)
	}
}

func TestWidgetRender(t *testing.T) {
	store := loadStore(t, "basic")
	kit, err := widgets.New()
	if err != nil {
		t.Fatalf("kit: %v", err)
	}
	ctx := testsupport.Context()

	fruits, _ := store.Widget("fruits")
	fragment, err := fruits.Render(ctx, kit.Registry(), render.Options{})
	if err != nil {
		t.Fatalf("render fruits: %v", err)
	}
	if !strings.Contains(fragment.HTML, `<option value="Banana" selected="">Banana</option><option value="Kiwi">Kiwi</option><option value="pitaya">Dragon fruit</option>`) {
		t.Fatalf("unexpected options: %s", fragment.HTML)
	}
	if !strings.Contains(fragment.Script, `"search_placeholder":"Find fruit","limit":2`) {
		t.Fatalf("unexpected script: %s", fragment.Script)
	}

	menu, _ := store.Widget("menu")
	fragment, err = menu.Render(ctx, kit.Registry(), render.Options{})
	if err != nil {
		t.Fatalf("render menu: %v", err)
	}
	if strings.Contains(fragment.HTML, "<script>") || !strings.Contains(fragment.HTML, "<p>Pick one</p>") {
		t.Fatalf("content not sanitised: %s", fragment.HTML)
	}
	if !strings.Contains(fragment.Script, `{"enter":"bounceIn","exit":"fadeOutUp","duration":0.25}`) {
		t.Fatalf("unexpected animate config: %s", fragment.Script)
	}
}

func TestWidgetRender_Validation(t *testing.T) {
	kit, err := widgets.New()
	if err != nil {
		t.Fatalf("kit: %v", err)
	}
	widget := manifest.Widget{
		Kind:     widgets.KindMultiInput,
		ID:       "x",
		Choices:  []manifest.ChoiceEntry{{Name: "a", Value: "a"}},
		Selected: []string{"b"},
	}
	_, err = widget.Render(testsupport.Context(), kit.Registry(), render.Options{})
	if !choice.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = manifest.Widget{Kind: "carousel", ID: "c"}.Spec()
	if err == nil {
		t.Fatalf("expected unsupported kind error")
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	widget := manifest.Widget{
		Kind:  widgets.KindMultiInput,
		ID:    "fruits",
		Label: "Fruits",
		Choices: []manifest.ChoiceEntry{
			{Name: "Banana", Value: "Banana"},
			{Name: "Dragon fruit", Value: "pitaya"},
		},
		Selected: []string{"pitaya"},
	}
	var buf strings.Builder
	if err := manifest.EncodeYAML(&buf, widget); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "- Banana\n") {
		t.Fatalf("expected short choice form:\n%s", buf.String())
	}

	store, err := manifest.LoadFS(fstest.MapFS{"w.yaml": {Data: []byte(buf.String())}})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := store.Widget("fruits")
	if !ok {
		t.Fatalf("widget missing after reload")
	}
	got.Source = ""
	if diff := cmp.Diff(widget, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
