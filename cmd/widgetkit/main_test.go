package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-widgetkit/internal/config"
)

func TestRunRender(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"render", "--manifests", "testdata/widgets", "--id", "fruits", "--assets"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("render: %v (stderr %s)", err, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		`<option value="Banana" selected="">Banana</option><option value="Kiwi">Kiwi</option>`,
		`$("#fruits")["multi"]`,
		"stylesheet: multi.min.css",
		"script: widgetkit-runtime.js",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, `id="menu"`) {
		t.Fatalf("--id should limit output:\n%s", out)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"paint"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if !strings.Contains(stderr.String(), "Usage: widgetkit") {
		t.Fatalf("expected usage, got %q", stderr.String())
	}
	if err := run([]string{"render", "--help"}, &stdout, &stderr); err != nil {
		t.Fatalf("help should not fail: %v", err)
	}
}

func TestServePageAndUpdate(t *testing.T) {
	cfg := config.Default()
	cfg.ManifestsDir = "testdata/widgets"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := newServer(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	handler := srv.routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{
		`<link rel="stylesheet" href="/assets/multi.min.css">`,
		`<script src="/assets/widgetkit-runtime.js"></script>`,
		`id="fruits"`,
		`id="menu"`,
		`window.widgetkit.connect("/events?session=`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}

	match := regexp.MustCompile(`data-widgetkit-session="([^"]+)"`).FindStringSubmatch(page)
	if len(match) != 2 {
		t.Fatalf("session id missing from page")
	}
	sessionID := match[1]
	if _, ok := srv.hub.Session(sessionID); !ok {
		t.Fatalf("page session %q not open", sessionID)
	}

	body := `{"session":"` + sessionID + `","target":"fruits","selected":["Kiwi"]}`
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/widgets/update", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected tracked update to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/widgetkit-runtime.js", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "animateWidget") {
		t.Fatalf("runtime asset not served: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServeExpiresUnattachedPageSessions(t *testing.T) {
	cfg := config.Default()
	cfg.ManifestsDir = "testdata/widgets"
	cfg.Session.Grace = "30ms"
	srv, err := newServer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	handler := srv.routes()

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("page %d: expected 200, got %d", i, rec.Code)
		}
	}
	if got := srv.states.Len(); got != 10 {
		t.Fatalf("expected 10 tracked sessions, got %d", got)
	}

	deadline := time.Now().Add(5 * time.Second)
	for len(srv.hub.IDs()) > 0 || srv.states.Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sessions not reaped: hub %d, states %d", len(srv.hub.IDs()), srv.states.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeEventStreamReconnect(t *testing.T) {
	cfg := config.Default()
	cfg.ManifestsDir = "testdata/widgets"
	cfg.Session.Heartbeat = "0"
	srv, err := newServer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.hub.CloseAll()
	server := httptest.NewServer(srv.routes())
	defer server.Close()

	res, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	page, _ := io.ReadAll(res.Body)
	res.Body.Close()
	match := regexp.MustCompile(`data-widgetkit-session="([^"]+)"`).FindSubmatch(page)
	if len(match) != 2 {
		t.Fatalf("session id missing from page")
	}
	sessionID := string(match[1])
	eventsURL := server.URL + eventsPath + "?session=" + sessionID

	for attempt := 0; attempt < 2; attempt++ {
		if code := streamStatus(t, eventsURL); code != http.StatusOK {
			t.Fatalf("attach %d: expected 200, got %d", attempt, code)
		}
	}

	body := `{"session":"` + sessionID + `","target":"fruits","selected":["Kiwi"]}`
	res, err = http.Post(server.URL+"/api/widgets/update", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post update: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected update after reconnect to succeed, got %d", res.StatusCode)
	}
}

// streamStatus attaches to url, reads the response status and disconnects.
// A 409 means the previous stream is still detaching and is retried.
func streamStatus(t *testing.T, url string) int {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithCancel(context.Background())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			cancel()
			t.Fatalf("new request: %v", err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			cancel()
			t.Fatalf("get events: %v", err)
		}
		code := res.StatusCode
		cancel()
		res.Body.Close()
		if code != http.StatusConflict || time.Now().After(deadline) {
			return code
		}
		time.Sleep(10 * time.Millisecond)
	}
}
