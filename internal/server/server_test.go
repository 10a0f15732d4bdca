package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	return New("localhost:0", log.NewNopLogger())
}

func doRender(t *testing.T, s *Server, body, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render"+query, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRender_ValidJSON(t *testing.T) {
	rec := doRender(t, testServer(), `{"a": 1}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	page := rec.Body.String()
	assert.Contains(t, page, `<div id="json">`)
	assert.Contains(t, page, `<span class="num">1</span>`)
	assert.NotContains(t, page, `<div id="error">`)
}

func TestHandleRender_InvalidJSONStillOK(t *testing.T) {
	rec := doRender(t, testServer(), `{"a": `, "")

	// The diagnostic view is a successful render, not an HTTP error.
	assert.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, `<div id="error">`)
	assert.Contains(t, page, `<div id="json">`)
}

func TestHandleRender_TitleQuery(t *testing.T) {
	rec := doRender(t, testServer(), `{}`, "?title=my+doc")
	assert.Contains(t, rec.Body.String(), "<title>my doc</title>")
}

func TestHandleRender_MethodNotAllowed(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/render", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := New("localhost:0", log.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Give the listener a moment, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
