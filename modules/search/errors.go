package search

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/bussearch/handler"
	"github.com/dmitrymomot/bussearch/pkg/busapi"
)

var ErrNilDependency = errors.New("search.nil_dependency")

const (
	sessionUnavailableMessage  = "Failed to create session with the server. Please try again later."
	upstreamUnavailableMessage = "The bus search service is currently unavailable. Please try again later."
)

var (
	ErrSessionUnavailable  = handler.HTTPError{Code: http.StatusServiceUnavailable, Key: "session_unavailable", Message: sessionUnavailableMessage}
	ErrUpstreamUnavailable = handler.HTTPError{Code: http.StatusBadGateway, Key: "upstream_unavailable", Message: upstreamUnavailableMessage}
	ErrUpstreamRejected    = handler.HTTPError{Code: http.StatusBadGateway, Key: "upstream_rejected"}
	ErrCacheInvalidation   = handler.HTTPError{Code: http.StatusInternalServerError, Key: "cache_invalidation_failed"}
)

// upstreamError maps a busapi failure to the error rendered to clients.
// Rejections carry the upstream user message, falling back to fallback.
func upstreamError(err error, fallback string) error {
	var rejected *busapi.RejectedError
	if errors.As(err, &rejected) {
		return errors.Join(err, ErrUpstreamRejected.WithMessage(rejected.DisplayMessage(fallback)))
	}
	return errors.Join(err, ErrUpstreamUnavailable)
}
