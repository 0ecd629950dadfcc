package updates

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is satisfied by *http.ServeMux and most third-party routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns where RegisterRoutes would mount the update handler.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the update handler under basePath and returns the
// pattern it used.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions is RegisterRoutes for a pre-built Options value.
// Zero fields are filled with defaults.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errors.New("updates: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := joinRoute(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

// joinRoute cleans "/"+basePath+"/"+routePath. A trailing slash on routePath
// is kept so ServeMux subtree patterns survive.
func joinRoute(basePath, routePath string) string {
	routePath = strings.TrimSpace(routePath)
	joined := path.Join("/", strings.TrimSpace(basePath), routePath)
	if strings.HasSuffix(routePath, "/") && joined != "/" {
		joined += "/"
	}
	return joined
}
