// Package busapi is a client for the obilet.com bus search API.
//
// The API exposes three POST endpoints that all answer with the same
// envelope:
//
//	{"status": "Success", "data": ..., "message": "", "user-message": "", "api-request-id": "..."}
//
// Client wraps them as CreateSession, SearchLocations and SearchJourneys.
// Callers should depend on the API interface so the implementation can be
// replaced in tests.
//
// # Usage
//
//	client, err := busapi.New("https://v2-api.obilet.com/api/", token,
//	    busapi.WithTimeout(10*time.Second),
//	    busapi.WithLogger(log),
//	)
//
//	resp, err := client.SearchLocations(ctx, busapi.NewLocationRequest(sess, "ankara", time.Now()))
//	if err != nil {
//	    // transport or decoding failure, errors.Is(err, busapi.ErrUpstreamUnavailable)
//	}
//	if err := resp.Err(); err != nil {
//	    // the API rejected the call; err is a *busapi.RejectedError
//	}
//
// # Error Handling
//
//   - ErrUpstreamUnavailable – network failure or a body that is not an envelope
//   - ErrUpstreamRejected    – matched by the *RejectedError returned from Envelope.Err
//
// The client never retries and never returns partial data.
package busapi
