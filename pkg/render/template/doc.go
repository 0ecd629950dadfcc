// Package template defines the template rendering seam widget renderers rely
// on, so the engine behind widget markup can be swapped or stubbed in tests.
package template
