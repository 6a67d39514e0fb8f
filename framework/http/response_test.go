package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/passgate/framework/http"
	"github.com/km-arc/passgate/framework/http/validation"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

// ── JSON ─────────────────────────────────────────────────────────────────────

func TestResponse_Success(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).Success(map[string]any{"valid": 1})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"data": map[string]any{"valid": float64(1)}}, decode(t, rr))
}

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		send   func(res *gohttp.Response)
		status int
		msg    string
	}{
		{"error", func(res *gohttp.Response) { res.Error(http.StatusBadRequest, "no files") }, http.StatusBadRequest, "no files"},
		{"not found", func(res *gohttp.Response) { res.NotFound() }, http.StatusNotFound, "Not found."},
		{"server error custom", func(res *gohttp.Response) { res.ServerError("boom") }, http.StatusInternalServerError, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.send(gohttp.NewResponse(rr))
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.msg, decode(t, rr)["message"])
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"channel": "required"})
	require.True(t, v.Fails())

	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).ValidationError(v.Errors())

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	errs := decode(t, rr)["errors"].(map[string]any)
	assert.Equal(t, []any{"The channel field is required."}, errs["channel"])
}

// ── Redirect & cookies ───────────────────────────────────────────────────────

func TestResponse_SeeOther(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).SeeOther("/")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestResponse_SetCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).SetCookie(&http.Cookie{Name: "s", Value: "v", HttpOnly: true})

	assert.Contains(t, rr.Header().Get("Set-Cookie"), "s=v")
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "HttpOnly")
}

// ── SSE ──────────────────────────────────────────────────────────────────────

func TestResponse_SSE(t *testing.T) {
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	sse := gohttp.NewResponse(rr).SSE(r)
	require.NoError(t, sse.MarshalAndPatchSignals(map[string]any{"loading": true}))

	assert.Contains(t, rr.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, rr.Body.String(), "datastar-patch-signals")
	assert.Contains(t, rr.Body.String(), `"loading":true`)
}

// ── ViewEngine ───────────────────────────────────────────────────────────────

func TestViewEngine(t *testing.T) {
	fsys := fstest.MapFS{
		"page.html": {Data: []byte(`{{define "page"}}<h1>{{.Title}}</h1>{{template "item" .}}{{end}}`)},
		"item.html": {Data: []byte(`{{define "item"}}<p>{{shout .Title}}</p>{{end}}`)},
	}
	engine, err := gohttp.NewViewEngine(fsys, map[string]any{
		"shout": func(s string) string { return s + "!" },
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	engine.View(rr, "page", map[string]string{"Title": "<x>"})
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>&lt;x&gt;</h1><p>&lt;x&gt;!</p>", rr.Body.String())

	html, err := engine.Fragment("item", map[string]string{"Title": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "<p>ok!</p>", html)

	rr = httptest.NewRecorder()
	engine.View(rr, "missing", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	_, err = gohttp.NewViewEngine(fstest.MapFS{})
	assert.Error(t, err)
}
