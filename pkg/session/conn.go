package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Conn is a Session backed by a buffered event queue. The Hub drains the
// queue onto the client's event stream.
type Conn struct {
	id     string
	events chan Event
	done   chan struct{}
	seq    atomic.Uint64

	// mu orders enqueues against close so no send succeeds after close.
	mu     sync.RWMutex
	closed bool

	// Guarded by the owning Hub's mutex.
	attached  bool
	expiry    *time.Timer
	expiryGen uint64
}

var _ Session = (*Conn)(nil)

func newConn(id string, buffer int) *Conn {
	return &Conn{
		id:     id,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) SendInputMessage(ctx context.Context, inputID string, message any) error {
	return c.enqueue(ctx, EventInput, InputEnvelope{ID: inputID, Message: message})
}

func (c *Conn) SendCustomMessage(ctx context.Context, kind string, message any) error {
	return c.enqueue(ctx, EventCustom, CustomEnvelope{Type: kind, Message: message})
}

// Done is closed once the session is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Closed reports whether the session has been closed.
func (c *Conn) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

func (c *Conn) stopExpiry() {
	if c.expiry != nil {
		c.expiry.Stop()
		c.expiry = nil
	}
	c.expiryGen++
}

func (c *Conn) enqueue(ctx context.Context, name string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", name, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return &TransportError{SessionID: c.id, Err: ErrClosed}
	}
	event := Event{ID: c.seq.Add(1), Name: name, Data: data}
	select {
	case c.events <- event:
		return nil
	default:
		return &TransportError{SessionID: c.id, Err: ErrBacklog}
	}
}
