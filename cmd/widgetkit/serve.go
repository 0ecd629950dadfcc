package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-widgetkit/components/updates"
	"github.com/goliatone/go-widgetkit/internal/config"
	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/render"
	gotemplate "github.com/goliatone/go-widgetkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-widgetkit/pkg/session"
	"github.com/goliatone/go-widgetkit/pkg/update"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

//go:embed templates/page.tpl
var pageTemplates embed.FS

const eventsPath = "/events"

func runServe(args []string, _ io.Writer, stderr io.Writer) error {
	flags := newFlagSet("serve", stderr)
	configPath := flags.StringP("config", "c", "", "YAML or JSONC configuration file")
	listen := flags.String("listen", "", "override the configured listen address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	logger := cfg.Logger(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		logger.Info("widgetkit serving", "addr", cfg.Listen, "manifests", cfg.ManifestsDir)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("widgetkit shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.hub.CloseAll()
	return httpServer.Shutdown(shutdownCtx)
}

type server struct {
	cfg     config.Config
	logger  *slog.Logger
	kit     *widgets.Kit
	store   *manifest.Store
	hub     *session.Hub
	states  *updates.MemoryStore
	updates *updates.Component
	page    *gotemplate.Engine
	theme   render.Options
}

func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*server, error) {
	heartbeat, err := cfg.Heartbeat()
	if err != nil {
		return nil, err
	}
	grace, err := cfg.Grace()
	if err != nil {
		return nil, err
	}

	kit, err := widgets.New(widgets.WithTemplatesDir(cfg.TemplatesDir), widgets.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if cfg.WatchTemplates && cfg.TemplatesDir != "" {
		if err := kit.WatchTemplates(ctx); err != nil {
			return nil, err
		}
		logger.Info("watching widget templates", "dir", cfg.TemplatesDir)
	}

	store, err := manifest.LoadFS(os.DirFS(cfg.ManifestsDir))
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		logger.Warn("no widgets declared", "manifests", cfg.ManifestsDir)
	}

	page, err := gotemplate.New(gotemplate.WithFS(pageTemplates))
	if err != nil {
		return nil, err
	}

	states := updates.NewMemoryStore()
	hub := session.NewHub(
		session.WithLogger(logger),
		session.WithBuffer(cfg.Session.Buffer),
		session.WithHeartbeat(heartbeat),
		session.WithGracePeriod(grace),
		session.WithOnClose(states.Forget),
	)
	component := updates.New(
		updates.WithSessions(updates.FromHub(hub)),
		updates.WithStates(states),
		updates.WithLogger(logger),
	)

	return &server{
		cfg:     cfg,
		logger:  logger,
		kit:     kit,
		store:   store,
		hub:     hub,
		states:  states,
		updates: component,
		page:    page,
		theme:   render.Options{Theme: cfg.RendererTheme()},
	}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(s.servePage))
	mux.Handle(eventsPath, s.hub)
	prefix := "/" + strings.Trim(s.cfg.AssetsPrefix, "/") + "/"
	mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.FS(widgets.AssetsFS()))))
	if _, err := s.updates.RegisterRoutes(mux, ""); err != nil {
		s.logger.Error("register update routes", "error", err)
	}
	return mux
}

// servePage opens a session, renders every declared widget and tracks the
// rendered state of each multi-input so later selection-only updates can be
// validated. The tracked state is dropped when the hub closes the session.
func (s *server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	conn := s.hub.Open()
	ctx := r.Context()

	var fragments []string
	var kinds []string
	err := s.states.WithState(conn.ID(), func(state *update.State) error {
		for _, widget := range s.store.Widgets() {
			fragment, err := widget.Render(ctx, s.kit.Registry(), s.theme)
			if err != nil {
				return err
			}
			fragments = append(fragments, fragment.String())
			kinds = append(kinds, fragment.Kind)

			spec, err := widget.Spec()
			if err != nil {
				return err
			}
			if multi, ok := spec.(widgets.MultiInputSpec); ok {
				snapshot, err := multi.Snapshot()
				if err != nil {
					return err
				}
				if err := state.Track(multi.ID, snapshot); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.hub.Close(conn.ID())
		s.logger.Error("render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stylesheets, scripts := s.kit.Registry().Assets(kinds)
	eventsURL, _ := json.Marshal(eventsPath + "?session=" + url.QueryEscape(conn.ID()))
	html, err := s.page.RenderTemplate("templates/page", map[string]any{
		"title":       "widgetkit",
		"session":     conn.ID(),
		"update_path": s.updates.Options().RoutePath,
		"fragments":   fragments,
		"stylesheets": s.theme.AssetURLs(stylesheets),
		"scripts":     s.theme.AssetURLs(scripts),
		"events_url":  string(eventsURL),
	})
	if err != nil {
		s.hub.Close(conn.ID())
		s.logger.Error("render page template", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, html); err != nil {
		s.logger.Warn("write page", "error", err, "session", conn.ID())
	}
	s.logger.Debug("page served", "session", conn.ID(), "widgets", len(fragments))
}
