package updates

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetkit/pkg/session"
	"github.com/goliatone/go-widgetkit/pkg/testsupport"
)

func newTestHandler(sessions map[string]*testsupport.Recorder, fns ...OptionFn) http.Handler {
	resolver := func(id string) (session.Session, bool) {
		rec, ok := sessions[id]
		if !ok {
			return nil, false
		}
		return rec, true
	}
	return NewHandler(append([]OptionFn{WithSessions(resolver)}, fns...)...)
}

func post(t *testing.T, h http.Handler, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/widgets/update", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func decodeResult(t *testing.T, res *http.Response) Result {
	t.Helper()
	var payload resultResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return payload.Data
}

func decodeError(t *testing.T, res *http.Response) errorResponse {
	t.Helper()
	var payload errorResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload
}

func TestHandler_LabelOnly(t *testing.T) {
	rec := testsupport.NewRecorder("s1")
	h := newTestHandler(map[string]*testsupport.Recorder{"s1": rec})

	res := post(t, h, `{"session":"s1","target":"fruits","label":"New"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	want := Result{Target: "fruits", Sent: true, Keys: []string{"label"}}
	if diff := cmp.Diff(want, decodeResult(t, res)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	inputs := rec.Inputs()
	if len(inputs) != 1 || inputs[0].Target != "fruits" || inputs[0].JSON != `{"label":"New"}` {
		t.Fatalf("unexpected inputs: %#v", inputs)
	}
}

func TestHandler_TracksChoicesAcrossRequests(t *testing.T) {
	rec := testsupport.NewRecorder("s1")
	h := newTestHandler(map[string]*testsupport.Recorder{"s1": rec})

	res := post(t, h, `{"session":"s1","target":"fruits","choices":[{"name":"A","value":"a"},{"name":"B","value":"b"}],"selected":["a"]}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if diff := cmp.Diff([]string{"options", "value"}, decodeResult(t, res).Keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	res = post(t, h, `{"session":"s1","target":"fruits","selected":["b"]}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for tracked selection, got %d", res.StatusCode)
	}
	inputs := rec.Inputs()
	if len(inputs) != 2 || inputs[1].JSON != `{"value":["b"]}` {
		t.Fatalf("unexpected inputs: %#v", inputs)
	}

	res = post(t, h, `{"session":"s1","target":"fruits","selected":["c"]}`)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	if got := decodeError(t, res); got.Field != "selected" {
		t.Fatalf("unexpected error body: %#v", got)
	}
	if len(rec.Inputs()) != 2 {
		t.Fatalf("invalid update must not be sent")
	}
}

func TestHandler_SelectionForUnknownWidget(t *testing.T) {
	rec := testsupport.NewRecorder("s1")
	h := newTestHandler(map[string]*testsupport.Recorder{"s1": rec})

	res := post(t, h, `{"session":"s1","target":"ghost","selected":["a"]}`)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	if len(rec.Inputs()) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestHandler_EmptyUpdateSendsNothing(t *testing.T) {
	rec := testsupport.NewRecorder("s1")
	h := newTestHandler(map[string]*testsupport.Recorder{"s1": rec})

	res := post(t, h, `{"session":"s1","target":"fruits","label":null}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	want := Result{Target: "fruits", Sent: false, Keys: []string{}}
	if diff := cmp.Diff(want, decodeResult(t, res)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Inputs()) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestHandler_Toggle(t *testing.T) {
	rec := testsupport.NewRecorder("s1")
	h := newTestHandler(map[string]*testsupport.Recorder{"s1": rec})

	res := post(t, h, `{"session":"s1","target":"menu","toggle":true}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	customs := rec.Customs()
	if len(customs) != 1 || customs[0].JSON != `{"id":"menu"}` {
		t.Fatalf("unexpected custom messages: %#v", customs)
	}
}

func TestHandler_StatusCodes(t *testing.T) {
	closed := testsupport.NewRecorder("gone")
	closed.Close()
	h := newTestHandler(map[string]*testsupport.Recorder{
		"s1":   testsupport.NewRecorder("s1"),
		"gone": closed,
	})

	cases := []struct {
		name string
		body string
		code int
	}{
		{"unknown session", `{"session":"nope","target":"x","label":"a"}`, http.StatusNotFound},
		{"closed session", `{"session":"gone","target":"x","label":"a"}`, http.StatusBadGateway},
		{"missing target", `{"session":"s1","label":"a"}`, http.StatusUnprocessableEntity},
		{"missing session", `{"target":"x","label":"a"}`, http.StatusUnprocessableEntity},
		{"duplicate choices", `{"session":"s1","target":"x","choices":[{"name":"a","value":"a"},{"name":"b","value":"a"}]}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"session":`, http.StatusBadRequest},
		{"unknown field", `{"session":"s1","target":"x","colour":"red"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := post(t, h, tc.body)
			if res.StatusCode != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, res.StatusCode)
			}
		})
	}
}

func TestHandler_MethodAndGuard(t *testing.T) {
	h := newTestHandler(nil, WithGuard(func(r *http.Request) error {
		if r.Header.Get("X-Token") == "" {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("missing token")}
		}
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/widgets/update", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("expected 405 with Allow header, got %d %q", rec.Code, rec.Header().Get("Allow"))
	}

	res := post(t, h, `{}`)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestFromHub(t *testing.T) {
	hub := session.NewHub()
	conn := hub.Open()

	resolve := FromHub(hub)
	if sess, ok := resolve(conn.ID()); !ok || sess.ID() != conn.ID() {
		t.Fatalf("expected hub session to resolve")
	}
	if _, ok := resolve("missing"); ok {
		t.Fatalf("unknown id must not resolve")
	}
	if _, ok := FromHub(nil)("x"); ok {
		t.Fatalf("nil hub must not resolve")
	}
}
