package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/passgate/framework/logging"
)

// Router wraps chi.Router.
type Router struct {
	mux chi.Router
}

// New creates a Router with request ids, real client IPs, request logging
// and panic recovery. A nil logger disables request logging.
func New(log *zap.Logger) *Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if log != nil {
		r.Use(logging.Middleware(log))
	}
	r.Use(middleware.Recoverer)
	return &Router{mux: r}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)  { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc) { r.mux.Post(pattern, h) }

// ── Groups ───────────────────────────────────────────────────────────────────

// Group creates an inline group sharing middleware.
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(&Router{mux: mx})
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Fallbacks ────────────────────────────────────────────────────────────────

// NotFound sets the handler for requests that match no route.
func (r *Router) NotFound(h http.HandlerFunc) { r.mux.NotFound(h) }

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
