// Package session implements server-side sessions keyed by an opaque token.
//
// A Manager hands out a random token through a Transport (an encrypted cookie
// by default) and keeps the session data in a Store: MemoryStore for a single
// instance, RedisStore to share sessions between instances. Session values
// are strings; callers encode structured values themselves.
//
//	┌────────┐   token   ┌────────────┐
//	│ Client │ ────────► │  Transport │
//	└────────┘           └────────────┘
//	                           │
//	                           ▼
//	                     ┌──────────┐  Get / Save / Delete  ┌────────┐
//	                     │ Manager  │ ────────────────────► │ Store  │
//	                     └──────────┘                       └────────┘
//
// Sessions live for a fixed TTL from creation; reading or writing values does
// not extend them.
//
// # Usage
//
//	mgr := session.New(
//	    session.WithCookieManager(cookies),
//	    session.WithStore(session.NewRedisStore(rdb)),
//	    session.WithTTL(24*time.Hour),
//	)
//	r.Use(mgr.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    _ = mgr.Set(r.Context(), w, r, "key", "value")
//	    v, ok, _ := mgr.GetValue(r.Context(), r, "key")
//	}
//
// Middleware caches the resolved session on the request, so a session created
// by Ensure or Set is visible to later reads in the same request even though
// the client only presents the cookie on its next request.
package session
