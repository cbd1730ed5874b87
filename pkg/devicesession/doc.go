// Package devicesession obtains and keeps the upstream device session of
// each client.
//
// Every location and journey call to the bus API needs a device session, an
// opaque (session id, device id) pair bound to the end user's connection and
// browser. Manager.GetOrCreate reads the pair from client-scoped storage and,
// when it is absent or unreadable, asks the API for a new one and stores it:
//
//	store := devicesession.NewSessionStore(sessions, w, r)
//	s, err := mgr.GetOrCreate(ctx, store, devicesession.ClientFromRequest(r))
//	if errors.Is(err, devicesession.ErrSessionUnavailable) {
//	    // render a degraded response
//	}
//
// Middleware runs this once per request for paths that need upstream data
// and attaches the result to the request context. When no session can be
// obtained the request continues without one; handlers check FromContext and
// degrade their output.
//
// The only persistence strategy is the server-side session: the pair is
// stored as JSON under SessionKey together with its expiry.
package devicesession
