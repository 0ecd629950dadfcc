package template

import (
	"io"
)

// TemplateRenderer renders named templates or inline template strings with
// the supplied data. Output is returned and, when writers are passed, also
// written to each of them.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Reloader is implemented by renderers that cache parsed templates and can
// drop that cache when template sources change.
type Reloader interface {
	Reset()
}
