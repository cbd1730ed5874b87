// Package search serves the journey search JSON API.
//
// Handle returns a chi router exposing the location catalog, free-text
// location search, journey search and the search preference edits of the
// search form. Every route except /error expects the device session
// resolved by devicesession.Manager.Middleware; without one the handlers
// answer 503 with code session_unavailable.
//
// POST /admin/cache/invalidate requires "Authorization: Bearer <token>"
// matching WithAdminToken and answers 401 otherwise, including when no
// token is configured.
//
//	svc, _ := search.New(locationsSvc, apiClient, cookies, search.WithLogger(log))
//	r.Mount("/", svc.Handle())
package search
