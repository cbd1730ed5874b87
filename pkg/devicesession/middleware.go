package devicesession

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/bussearch/pkg/session"
)

// skippedPrefixes never need upstream data: static assets and error pages.
var skippedPrefixes = []string{"/css", "/js", "/lib", "/images", "/error", "/home/error"}

// RequiresSession reports whether a request for path needs a device session.
// Matching is case-insensitive; extra prefixes extend the built-in list.
func RequiresSession(path string, extra ...string) bool {
	p := strings.ToLower(path)
	if strings.HasSuffix(p, "favicon.ico") {
		return false
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	for _, prefix := range extra {
		if prefix != "" && strings.HasPrefix(p, strings.ToLower(prefix)) {
			return false
		}
	}
	return true
}

// Middleware resolves the device session once per request and attaches it to
// the request context. Failures are logged by GetOrCreate and the request
// continues without a session. It wraps sessions.Middleware, so a session
// started during resolution is visible to the handler.
func (m *Manager) Middleware(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		resolve := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !RequiresSession(r.URL.Path, m.skipPrefixes...) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			s, err := m.GetOrCreate(ctx, NewSessionStore(sessions, w, r), ClientFromRequest(r))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, s)))
		})
		return sessions.Middleware(resolve)
	}
}
