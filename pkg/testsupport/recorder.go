package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/goliatone/go-widgetkit/pkg/session"
)

// RecordedMessage is one message captured by a Recorder.
type RecordedMessage struct {
	Target  string
	Message any
	JSON    string
}

// Recorder is an in-memory session.Session that captures every message sent
// to it. Close makes later sends fail like a disconnected client.
type Recorder struct {
	mu      sync.Mutex
	id      string
	closed  bool
	inputs  []RecordedMessage
	customs []RecordedMessage
}

var _ session.Session = (*Recorder)(nil)

// NewRecorder returns an open recorder with the given session id.
func NewRecorder(id string) *Recorder {
	return &Recorder{id: id}
}

func (r *Recorder) ID() string {
	return r.id
}

func (r *Recorder) SendInputMessage(ctx context.Context, inputID string, message any) error {
	return r.record(ctx, &r.inputs, inputID, message)
}

func (r *Recorder) SendCustomMessage(ctx context.Context, kind string, message any) error {
	return r.record(ctx, &r.customs, kind, message)
}

// Close marks the session as gone.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// Inputs returns the captured input messages in send order.
func (r *Recorder) Inputs() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedMessage(nil), r.inputs...)
}

// Customs returns the captured custom messages in send order.
func (r *Recorder) Customs() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedMessage(nil), r.customs...)
}

func (r *Recorder) record(ctx context.Context, dest *[]RecordedMessage, target string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("testsupport: encode message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return &session.TransportError{SessionID: r.id, Err: session.ErrClosed}
	}
	*dest = append(*dest, RecordedMessage{Target: target, Message: message, JSON: string(payload)})
	return nil
}
