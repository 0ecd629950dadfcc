package widgets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// Asset keys for the files shipped in AssetsFS. Third-party plugin assets
// (jQuery, multi.js, bootstrap, animate.css) are referenced by key only and
// resolved through the theme's AssetURL.
const (
	RuntimeScriptName  = "widgetkit-runtime.js"
	DropdownStylesheet = "widgetkit-dropdown.css"
)

// TemplatesFS exposes the embedded widget templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime assets so callers can serve them over
// HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
