package updates

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-widgetkit/pkg/session"
)

type GuardFunc func(r *http.Request) error

// SessionResolver returns the live session with id.
type SessionResolver func(id string) (session.Session, bool)

// FromHub resolves sessions from a session.Hub.
func FromHub(hub *session.Hub) SessionResolver {
	return func(id string) (session.Session, bool) {
		if hub == nil {
			return nil, false
		}
		conn, ok := hub.Session(id)
		if !ok || conn == nil {
			return nil, false
		}
		return conn, true
	}
}

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Sessions     SessionResolver
	States       StateStore
	Logger       *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/widgets/update",
		MaxBodyBytes: 1 << 20,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/widgets/update"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.States == nil {
		opts.States = NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSessions(resolver SessionResolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = resolver
	}
}

func WithStates(store StateStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.States = store
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
