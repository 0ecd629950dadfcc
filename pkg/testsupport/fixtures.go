package testsupport

import (
	"context"
	"io"
	"strings"
	"testing"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// rendered string and what was written, so tests can check the two agree.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var written strings.Builder
	out, err := render(&written)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, written.String()
}
