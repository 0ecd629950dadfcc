package widgetkit

import (
	"io/fs"

	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can copy
// them as a starting point for widgets.WithTemplatesDir.
func EmbeddedTemplates() fs.FS {
	return widgets.TemplatesFS()
}
