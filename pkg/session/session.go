package session

import (
	"context"
	"errors"
	"fmt"
)

// Event names written on the stream.
const (
	EventSession = "session"
	EventInput   = "input-message"
	EventCustom  = "custom-message"
)

var (
	// ErrClosed is returned when sending to a session that has gone away.
	ErrClosed = errors.New("session closed")
	// ErrBacklog is returned when the session's send queue is full.
	ErrBacklog = errors.New("session send queue full")
)

// Session is the server side handle of one connected client.
type Session interface {
	ID() string
	// SendInputMessage queues message for the input widget inputID.
	SendInputMessage(ctx context.Context, inputID string, message any) error
	// SendCustomMessage queues a message for a client side handler named kind.
	SendCustomMessage(ctx context.Context, kind string, message any) error
}

// TransportError reports a failed local enqueue on a session.
type TransportError struct {
	SessionID string
	Err       error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("session %s: %v", e.SessionID, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InputEnvelope is the event payload for input messages.
type InputEnvelope struct {
	ID      string `json:"id"`
	Message any    `json:"message"`
}

// CustomEnvelope is the event payload for custom messages.
type CustomEnvelope struct {
	Type    string `json:"type"`
	Message any    `json:"message"`
}
