package updates

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/session"
	"github.com/goliatone/go-widgetkit/pkg/update"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Request is the JSON body accepted by the handler. A null or missing label,
// choices or selected leaves that part of the widget unchanged. Toggle sends
// the dropdown toggle message instead of an input update.
type Request struct {
	Session  string            `json:"session"`
	Target   string            `json:"target"`
	Label    *string           `json:"label,omitempty"`
	Choices  *choice.Set       `json:"choices,omitempty"`
	Selected *choice.Selection `json:"selected,omitempty"`
	Toggle   bool              `json:"toggle,omitempty"`
}

// Fields converts the request into update fields.
func (r Request) Fields() update.Fields {
	fields := update.Fields{
		Label:     update.Keep[string](),
		Choices:   update.Keep[choice.Set](),
		Selection: update.Keep[choice.Selection](),
	}
	if r.Label != nil {
		fields.Label = update.Set(*r.Label)
	}
	if r.Choices != nil {
		fields.Choices = update.Set(*r.Choices)
	}
	if r.Selected != nil {
		fields.Selection = update.Set(*r.Selected)
	}
	return fields
}

// Result reports what was pushed.
type Result struct {
	Target string   `json:"target"`
	Sent   bool     `json:"sent"`
	Keys   []string `json:"keys"`
}

type resultResponse struct {
	Data Result `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		var req Request
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			if choice.IsValidation(err) {
				writeError(w, err)
				return
			}
			writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode request: %w", err)})
			return
		}

		result, err := apply(r, opts, req)
		if err != nil {
			opts.Logger.Warn("widget update failed",
				"session", req.Session, "target", req.Target, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Data: result})
	})
}

func apply(r *http.Request, opts Options, req Request) (Result, error) {
	req.Session = strings.TrimSpace(req.Session)
	req.Target = strings.TrimSpace(req.Target)
	if req.Session == "" {
		return Result{}, choice.Invalid("session", "is required")
	}
	if req.Target == "" {
		return Result{}, choice.Invalid("target", "is required")
	}
	if opts.Sessions == nil {
		return Result{}, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("session %q not found", req.Session)}
	}
	sess, ok := opts.Sessions(req.Session)
	if !ok {
		return Result{}, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("session %q not found", req.Session)}
	}

	result := Result{Target: req.Target, Keys: []string{}}
	if req.Toggle {
		if err := update.ToggleDropdown(r.Context(), sess, req.Target); err != nil {
			return Result{}, err
		}
		result.Sent = true
		result.Keys = []string{"toggle"}
		return result, nil
	}

	err := opts.States.WithState(req.Session, func(state *update.State) error {
		msg, err := update.SendMessage(r.Context(), sess, state, req.Target, req.Fields())
		if err != nil {
			return err
		}
		result.Sent = !msg.Empty()
		result.Keys = append(result.Keys, msg.Keys()...)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	body := errorResponse{Error: http.StatusText(code)}

	var validation *choice.ValidationError
	var transport *session.TransportError
	var httpErr HTTPError
	switch {
	case errors.As(err, &validation):
		code = http.StatusUnprocessableEntity
		body = errorResponse{Error: validation.Message, Field: validation.Field}
	case errors.As(err, &transport):
		code = http.StatusBadGateway
		body = errorResponse{Error: transport.Error()}
	case errors.As(err, &httpErr):
		code = httpErr.StatusCode()
		body = errorResponse{Error: httpErr.Error()}
	}
	writeJSON(w, code, body)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
