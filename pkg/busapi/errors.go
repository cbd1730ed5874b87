package busapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable indicates a transport or decoding failure talking to the API.
	ErrUpstreamUnavailable = errors.New("busapi.upstream_unavailable")

	// ErrUpstreamRejected indicates the API answered with a non-success envelope.
	ErrUpstreamRejected = errors.New("busapi.upstream_rejected")

	// ErrMissingToken indicates the client was configured without an API token.
	ErrMissingToken = errors.New("busapi.missing_token")

	// ErrInvalidBaseURL indicates the configured base URL cannot be parsed.
	ErrInvalidBaseURL = errors.New("busapi.invalid_base_url")
)

// RejectedError carries the envelope fields of a non-success response.
// It matches ErrUpstreamRejected with errors.Is.
type RejectedError struct {
	Status       string
	Message      string
	UserMessage  string
	APIRequestID string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %q", ErrUpstreamRejected, e.Status)
	}
	return fmt.Sprintf("%s: status %q: %s", ErrUpstreamRejected, e.Status, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrUpstreamRejected }

// DisplayMessage returns the text intended for end users, falling back to
// the technical message and then to fallback.
func (e *RejectedError) DisplayMessage(fallback string) string {
	switch {
	case e.UserMessage != "":
		return e.UserMessage
	case e.Message != "":
		return e.Message
	default:
		return fallback
	}
}
