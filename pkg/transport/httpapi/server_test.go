package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notebox/pkg/adapters/memory"
	"github.com/aretw0/notebox/pkg/core"
	"github.com/aretw0/notebox/pkg/describe"
)

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := core.NewService(memory.NewStore(memory.Config{Logger: logger}), logger)
	return New(service, Config{
		Logger:      logger,
		Mode:        "test",
		Version:     "test",
		CORSOrigins: origins,
	})
}

func do(t *testing.T, s *Server, method, path string, principal core.Principal, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if principal != "" {
		req.Header.Set("X-Principal", string(principal))
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func add(t *testing.T, s *Server, p core.Principal, title, content string) {
	t.Helper()
	resp := decode[AddResponse](t, do(t, s, http.MethodPost, "/v1/notes", p, NewNoteRequest(title, content)))
	require.True(t, resp.OK)
}

func list(t *testing.T, s *Server, p core.Principal) []core.Note {
	t.Helper()
	return decode[ListResponse](t, do(t, s, http.MethodGet, "/v1/notes", p, nil)).Notes
}

func TestAPI_EmptyRead(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/v1/notes", "p", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notes":[]}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/v1/notes/0", "p", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"note":null}`, w.Body.String())

	assert.False(t, decode[DeleteResponse](t, do(t, s, http.MethodDelete, "/v1/notes/0", "p", nil)).Deleted)
	assert.Nil(t, decode[NoteResponse](t, do(t, s, http.MethodPut, "/v1/notes/0", "p", NewNoteRequest("x", "y"))).Note)
}

func TestAPI_Scenario(t *testing.T) {
	s := newTestServer(t)

	add(t, s, "p", "1", "one")
	add(t, s, "p", "2", "two")
	add(t, s, "p", "3", "three")

	assert.True(t, decode[DeleteResponse](t, do(t, s, http.MethodDelete, "/v1/notes/1", "p", nil)).Deleted)
	assert.Equal(t, []core.Note{{Title: "1", Content: "one"}, {Title: "3", Content: "three"}}, list(t, s, "p"))

	got := decode[NoteResponse](t, do(t, s, http.MethodGet, "/v1/notes/1", "p", nil))
	require.NotNil(t, got.Note)
	assert.Equal(t, core.Note{Title: "3", Content: "three"}, *got.Note)

	edited := decode[NoteResponse](t, do(t, s, http.MethodPut, "/v1/notes/0", "p", NewNoteRequest("1*", "one*")))
	require.NotNil(t, edited.Note)
	assert.Equal(t, core.Note{Title: "1*", Content: "one*"}, *edited.Note)

	missing := decode[NoteResponse](t, do(t, s, http.MethodPut, "/v1/notes/5", "p", NewNoteRequest("x", "y")))
	assert.Nil(t, missing.Note)
	assert.Equal(t, []core.Note{{Title: "1*", Content: "one*"}, {Title: "3", Content: "three"}}, list(t, s, "p"))
}

func TestAPI_Isolation(t *testing.T) {
	s := newTestServer(t)

	add(t, s, "A", "a", "A")
	assert.Empty(t, list(t, s, "B"))
	add(t, s, "B", "b", "B")

	assert.Equal(t, []core.Note{{Title: "a", Content: "A"}}, list(t, s, "A"))
	assert.Equal(t, []core.Note{{Title: "b", Content: "B"}}, list(t, s, "B"))
}

func TestAPI_NoteFieldOrder(t *testing.T) {
	s := newTestServer(t)
	add(t, s, "p", "t", "c")

	w := do(t, s, http.MethodGet, "/v1/notes/0", "p", nil)
	assert.Equal(t, `{"note":{"title":"t","content":"c"}}`, w.Body.String())
}

func TestAPI_DecodeErrors(t *testing.T) {
	s := newTestServer(t)

	for name, tc := range map[string]struct {
		method, path string
		body         any
	}{
		"negative index": {http.MethodGet, "/v1/notes/-1", nil},
		"word index":     {http.MethodDelete, "/v1/notes/first", nil},
		"overflow index": {http.MethodGet, "/v1/notes/18446744073709551616", nil},
		"bad add body":   {http.MethodPost, "/v1/notes", "{not json"},
		"empty add body": {http.MethodPost, "/v1/notes", nil},
		"bad edit body":  {http.MethodPut, "/v1/notes/0", "[]"},
		"null add body":  {http.MethodPost, "/v1/notes", "null"},
		"empty object":   {http.MethodPost, "/v1/notes", "{}"},
		"add no content": {http.MethodPost, "/v1/notes", `{"title":"x"}`},
		"add no title":   {http.MethodPost, "/v1/notes", `{"content":"x"}`},
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, tc.method, tc.path, "p", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	assert.Empty(t, list(t, s, "p"), "decode errors must not reach the store")
}

func TestAPI_EditRequiresBothFields(t *testing.T) {
	s := newTestServer(t)
	add(t, s, "p", "title", "body")

	for name, body := range map[string]string{
		"title only":   `{"title":"renamed"}`,
		"content only": `{"content":"rewritten"}`,
		"empty object": `{}`,
		"null":         `null`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, http.MethodPut, "/v1/notes/0", "p", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Equal(t, []core.Note{{Title: "title", Content: "body"}}, list(t, s, "p"))

	// Explicit empty strings are values, not missing fields.
	edited := decode[NoteResponse](t, do(t, s, http.MethodPut, "/v1/notes/0", "p", `{"title":"","content":""}`))
	require.NotNil(t, edited.Note)
	assert.Equal(t, core.Note{}, *edited.Note)
}

func TestAPI_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/notes", "", NewNoteRequest("a", "A"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	state := s.service.State().(core.ServiceState).Store.(memory.StoreState)
	assert.Equal(t, 0, state.Notes)
}

func TestAPI_PublicRoutes(t *testing.T) {
	s := newTestServer(t)
	add(t, s, "p", "secret title", "secret content")

	w := do(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/debug/state", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "state is hidden unless enabled")

	w = do(t, s, http.MethodGet, "/v1/describe?format=yaml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var iface describe.Interface
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &iface))
	assert.Len(t, iface.Operations, 5)

	w = do(t, s, http.MethodGet, "/v1/describe?format=candid", "", nil)
	assert.Contains(t, w.Body.String(), "service : {")

	w = do(t, s, http.MethodGet, "/v1/describe?format=xml", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_ExposeState(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	service := core.NewService(memory.NewStore(memory.Config{}), logger)
	s := New(service, Config{Logger: logger, Mode: "test", ExposeState: true})
	add(t, s, "p", "secret title", "secret content")

	w := do(t, s, http.MethodGet, "/debug/state", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":1`)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestAPI_RequestID(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

func TestAPI_CORS(t *testing.T) {
	s := newTestServer(t, "https://*.example.com", "http://localhost:*")

	for origin, allowed := range map[string]bool{
		"https://app.example.com": true,
		"http://localhost:3000":   true,
		"https://evil.com":        false,
		"https://a.b.example.com": true,
	} {
		req := httptest.NewRequest(http.MethodOptions, "/v1/notes", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, origin)
		if allowed {
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), origin)
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Principal")
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}
}
