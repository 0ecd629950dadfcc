package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBuffer    = 64
	defaultHeartbeat = 25 * time.Second
	defaultRetry     = 3 * time.Second
	defaultGrace     = 30 * time.Second
)

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the structured logger used for connection lifecycle logs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithBuffer sets the per-session queue length.
func WithBuffer(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.buffer = size
		}
	}
}

// WithHeartbeat sets the interval of keep-alive comments on idle streams.
// Zero or less disables heartbeats.
func WithHeartbeat(every time.Duration) Option {
	return func(h *Hub) {
		h.heartbeat = every
	}
}

// WithGracePeriod sets how long a session may go without an attached event
// stream before it is closed. This covers both the first connect after Open
// and EventSource reconnects.
func WithGracePeriod(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.grace = d
		}
	}
}

// WithOnClose registers fn to run after a session is closed, whether by
// Close or by expiry. Hooks run outside the hub lock, in registration order.
func WithOnClose(fn func(id string)) Option {
	return func(h *Hub) {
		if fn != nil {
			h.onClose = append(h.onClose, fn)
		}
	}
}

// WithQueryParam overrides the query parameter carrying the session id.
func WithQueryParam(name string) Option {
	return func(h *Hub) {
		if name != "" {
			h.param = name
		}
	}
}

// Hub tracks live sessions and serves their event streams. It is safe for
// concurrent use.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn

	buffer    int
	heartbeat time.Duration
	grace     time.Duration
	param     string
	onClose   []func(string)
	logger    *slog.Logger
}

// NewHub constructs an empty hub.
func NewHub(opts ...Option) *Hub {
	hub := &Hub{
		conns:     make(map[string]*Conn),
		buffer:    defaultBuffer,
		heartbeat: defaultHeartbeat,
		grace:     defaultGrace,
		param:     "session",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hub)
	}
	return hub
}

// Open registers a new session. Messages sent before the client attaches are
// queued up to the buffer size. The session expires unless a stream attaches
// within the grace period.
func (h *Hub) Open() *Conn {
	conn := newConn(uuid.NewString(), h.buffer)

	h.mu.Lock()
	h.conns[conn.id] = conn
	h.expireLocked(conn)
	h.mu.Unlock()

	h.logger.Debug("session opened", "session", conn.id)
	return conn
}

// Session returns the open session with id.
func (h *Hub) Session(id string) (*Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[id]
	return conn, ok
}

// Close closes and forgets the session with id. Closing an unknown id is a
// no-op.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	conn, ok := h.removeLocked(id)
	h.mu.Unlock()

	if ok {
		h.finish(conn, "closed")
	}
}

// CloseAll closes every open session.
func (h *Hub) CloseAll() {
	for _, id := range h.IDs() {
		h.Close(id)
	}
}

// IDs returns the open session ids, sorted.
func (h *Hub) IDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ServeHTTP streams a session's events. The session id is read from the
// configured query parameter. When the client disconnects the session stays
// open for the grace period so a reconnect with the same URL picks up the
// queued messages.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id := r.URL.Query().Get(h.param)
	conn, status := h.attach(id)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer h.detach(conn)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "retry: %d\n\n", defaultRetry.Milliseconds())
	hello := Event{Name: EventSession, Data: []byte(`"` + conn.id + `"`)}
	if _, err := fmt.Fprint(w, hello.String()); err != nil {
		return
	}
	flusher.Flush()

	logger := h.logger.With("session", id)
	logger.Info("session stream attached", "remote", r.RemoteAddr)

	var tick <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.Context().Done():
			logger.Info("session stream detached")
			return
		case <-conn.done:
			logger.Info("session stream closed by server")
			return
		case <-tick:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				logger.Warn("session heartbeat failed", "error", err)
				return
			}
			flusher.Flush()
		case event := <-conn.events:
			if _, err := fmt.Fprint(w, event.String()); err != nil {
				logger.Warn("session write failed", "error", err, "event", event.Name)
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Hub) attach(id string) (*Conn, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[id]
	if !ok {
		return nil, http.StatusNotFound
	}
	if conn.attached {
		return nil, http.StatusConflict
	}
	conn.attached = true
	conn.stopExpiry()
	return conn, http.StatusOK
}

func (h *Hub) detach(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[conn.id] != conn {
		return
	}
	conn.attached = false
	h.expireLocked(conn)
}

// expireLocked (re)starts conn's expiry timer. h.mu must be held.
func (h *Hub) expireLocked(conn *Conn) {
	conn.stopExpiry()
	gen := conn.expiryGen
	conn.expiry = time.AfterFunc(h.grace, func() {
		h.expire(conn, gen)
	})
}

func (h *Hub) expire(conn *Conn, gen uint64) {
	h.mu.Lock()
	ok := h.conns[conn.id] == conn && !conn.attached && conn.expiryGen == gen
	if ok {
		h.removeLocked(conn.id)
	}
	h.mu.Unlock()

	if ok {
		h.finish(conn, "expired")
	}
}

// removeLocked drops id from the hub. h.mu must be held.
func (h *Hub) removeLocked(id string) (*Conn, bool) {
	conn, ok := h.conns[id]
	if !ok {
		return nil, false
	}
	delete(h.conns, id)
	conn.stopExpiry()
	return conn, true
}

func (h *Hub) finish(conn *Conn, reason string) {
	conn.close()
	for _, fn := range h.onClose {
		fn(conn.id)
	}
	h.logger.Debug("session "+reason, "session", conn.id)
}
