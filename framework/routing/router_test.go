package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/km-arc/passgate/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Get("/", okHandler)
	r.Post("/validate", okHandler)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/validate").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodGet, "/validate").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/nope").Code)
}

// ── Groups ───────────────────────────────────────────────────────────────────

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New(nil)
	r.Get("/plain", okHandler)
	r.Group(func(g *routing.Router) {
		g.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Group", "yes")
				next.ServeHTTP(w, req)
			})
		})
		g.Get("/results", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/results")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "yes", rr.Header().Get("X-Group"))

	rr = do(t, r, http.MethodGet, "/plain")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-Group"))
}

// ── Recovery ─────────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Get("/panic", func(w http.ResponseWriter, req *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/panic").Code)
}

// ── Fallbacks ────────────────────────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	r.Get("/", okHandler)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("gone: " + req.URL.Path))
	})

	rr := do(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "gone: /nope", rr.Body.String())
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/").Code)
}
