package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/render"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

func runRender(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("render", stderr)
	dir := flags.StringP("manifests", "m", "widgets", "directory of widget manifests")
	id := flags.String("id", "", "render only the widget with this id")
	templates := flags.String("templates", "", "directory overriding the embedded widget templates")
	assets := flags.Bool("assets", false, "also list the stylesheet and script assets the widgets need")
	if err := flags.Parse(args); err != nil {
		return err
	}

	store, err := manifest.LoadFS(os.DirFS(*dir))
	if err != nil {
		return err
	}
	kit, err := widgets.New(widgets.WithTemplatesDir(*templates))
	if err != nil {
		return err
	}

	selected := store.Widgets()
	if *id != "" {
		widget, ok := store.Widget(*id)
		if !ok {
			return fmt.Errorf("widget %q not found in %s", *id, *dir)
		}
		selected = []manifest.Widget{widget}
	}

	ctx := context.Background()
	kinds := make([]string, 0, len(selected))
	for _, widget := range selected {
		fragment, err := widget.Render(ctx, kit.Registry(), render.Options{})
		if err != nil {
			return err
		}
		kinds = append(kinds, fragment.Kind)
		if _, err := fmt.Fprintln(stdout, fragment.String()); err != nil {
			return err
		}
	}

	if *assets {
		stylesheets, scripts := kit.Registry().Assets(kinds)
		for _, href := range stylesheets {
			fmt.Fprintf(stdout, "stylesheet: %s\n", href)
		}
		for _, src := range scripts {
			fmt.Fprintf(stdout, "script: %s\n", src)
		}
	}
	return nil
}
