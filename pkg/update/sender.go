package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/session"
)

// ErrNoSession is returned when Send is called without a session.
var ErrNoSession = errors.New("update: session is required")

// Prepare validates fields against state and builds the message for
// targetID, together with the snapshot the widget will have once the message
// is applied. It has no side effects. An empty message means there is
// nothing to send.
func Prepare(state *State, targetID string, fields Fields) (Message, Snapshot, error) {
	if strings.TrimSpace(targetID) == "" {
		return Message{}, Snapshot{}, choice.Invalid("targetId", "is required")
	}

	prev, known := state.Snapshot(targetID)
	next := prev
	var msg Message

	if label, ok := fields.Label.Get(); ok {
		msg.Label = &label
		next.Label = label
	}

	newChoices, choicesSet := fields.Choices.Get()
	if choicesSet {
		next.Choices = newChoices
	}

	if selection, ok := fields.Selection.Get(); ok {
		if !choicesSet && !known {
			return Message{}, Snapshot{}, choice.Invalid("selected", "widget %q has no known choices to validate against; send choices with the selection", targetID)
		}
		if err := selection.Validate(next.Choices); err != nil {
			return Message{}, Snapshot{}, err
		}
		next.Selection = selection.Retain(next.Choices)
		value := []string(next.Selection)
		if value == nil {
			value = []string{}
		}
		msg.Value = &value
	} else if choicesSet {
		next.Selection = prev.Selection.Retain(newChoices)
	}

	if choicesSet {
		markup, err := choice.RenderSet(newChoices, next.Selection)
		if err != nil {
			return Message{}, Snapshot{}, fmt.Errorf("update: render options for %q: %w", targetID, err)
		}
		msg.Options = &markup
	}

	return msg, next, nil
}

// Send validates fields and queues one input message for targetID on sess.
// Nothing is sent when validation fails or fields is empty. On success the
// widget's snapshot in state is updated; state may be nil when the caller
// does not track widgets, in which case selection-only updates fail.
// Transport failures are returned wrapped and are not retried.
func Send(ctx context.Context, sess session.Session, state *State, targetID string, fields Fields) error {
	_, err := SendMessage(ctx, sess, state, targetID, fields)
	return err
}

// SendMessage is Send returning the message it queued. The message is empty
// when fields had nothing to send.
func SendMessage(ctx context.Context, sess session.Session, state *State, targetID string, fields Fields) (Message, error) {
	if sess == nil {
		return Message{}, ErrNoSession
	}
	msg, next, err := Prepare(state, targetID, fields)
	if err != nil {
		return Message{}, err
	}
	if msg.Empty() {
		return msg, nil
	}

	if err := sess.SendInputMessage(ctx, targetID, msg); err != nil {
		return Message{}, fmt.Errorf("update: send %q: %w", targetID, err)
	}

	_, known := state.Snapshot(targetID)
	if state != nil && (known || fields.Choices.IsSet()) {
		state.put(targetID, next)
	}
	return msg, nil
}

// ToggleDropdown asks the client to toggle the dropdown targetID.
func ToggleDropdown(ctx context.Context, sess session.Session, targetID string) error {
	if sess == nil {
		return ErrNoSession
	}
	if strings.TrimSpace(targetID) == "" {
		return choice.Invalid("targetId", "is required")
	}
	if err := sess.SendCustomMessage(ctx, ToggleDropdownType, ToggleMessage{ID: targetID}); err != nil {
		return fmt.Errorf("update: toggle %q: %w", targetID, err)
	}
	return nil
}
