package session

import "net/http"

// Middleware resolves the session once per request and caches it in the
// request context. Requests without a valid session pass through; a session
// created later in the request is cached the same way.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := withState(r.Context())
		r = r.WithContext(ctx)

		_, _ = m.Get(ctx, r)

		next.ServeHTTP(w, r)
	})
}
