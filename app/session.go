package app

import (
	"context"
	"net/http"

	gohttp "github.com/km-arc/passgate/framework/http"
	"github.com/km-arc/passgate/ingest"
)

type sessionKey struct{}

// withSession resolves the browser's session from its cookie, issuing a new
// one when the cookie is missing or the session has expired.
func (c *ValidatorController) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := gohttp.NewRequest(r)
		sess, created := c.sessions.Resolve(req.Cookie(c.cfg.Session.Cookie))
		if created {
			gohttp.NewResponse(w).SetCookie(&http.Cookie{
				Name:     c.cfg.Session.Cookie,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				Secure:   c.cfg.IsProduction(),
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(ctx context.Context) *ingest.Session {
	sess, _ := ctx.Value(sessionKey{}).(*ingest.Session)
	return sess
}
