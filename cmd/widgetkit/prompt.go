package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-widgetkit/internal/prompt"
	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/render"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

func runPrompt(args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("prompt", stderr)
	output := flags.StringP("output", "o", "", "write the manifest to this file instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	driver := prompt.NewSurveyDriver(stderr)
	widget, err := prompt.BuildWidget(ctx, driver)
	if err != nil {
		return err
	}

	kit, err := widgets.New()
	if err != nil {
		return err
	}
	fragment, err := widget.Render(ctx, kit.Registry(), render.Options{})
	if err != nil {
		return err
	}
	if err := driver.Info(ctx, "Preview:\n"+fragment.String()); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := manifest.EncodeYAML(&buf, widget); err != nil {
		return err
	}
	if *output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return driver.Info(ctx, "Manifest written to "+*output)
}
