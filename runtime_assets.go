package widgetkit

import (
	"io/fs"

	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

// RuntimeAssetsFS exposes the browser runtime and widget stylesheets so Go
// applications can serve them next to the rendered fragments.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(widgetkit.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return widgets.AssetsFS()
}
