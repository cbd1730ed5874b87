package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/bussearch/pkg/binder"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// classifyStatus returns the status an error is rendered with.
func classifyStatus(err error) int {
	var fieldErrs binder.FieldErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusUnprocessableEntity
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	if errors.Is(err, binder.ErrInvalidQuery) || errors.Is(err, binder.ErrInvalidForm) {
		return http.StatusBadRequest
	}
	if errors.Is(err, binder.ErrUnsupportedMediaType) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns an ErrorHandler that logs err and answers with a
// JSON error envelope. Binding failures become 400 responses.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := classifyStatus(err)

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if status == http.StatusBadRequest && !isHTTPError(err) {
			err = ErrBadRequest.WithMessage(err.Error())
		} else if status == http.StatusUnsupportedMediaType && !isHTTPError(err) {
			err = NewHTTPError(status, "unsupported_media_type")
		}

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}

func isHTTPError(err error) bool {
	var httpErr HTTPError
	return errors.As(err, &httpErr)
}
