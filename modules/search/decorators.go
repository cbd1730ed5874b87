package search

import (
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/bussearch/handler"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// timed logs the handling time of each request at debug level.
func timed[R any](s *Service) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			start := time.Now()
			resp := next(ctx, req)
			r := ctx.Request()
			s.logger.DebugContext(ctx, "request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.Duration(time.Since(start)),
			)
			return resp
		}
	}
}

// requireAdmin rejects requests without the admin bearer token. With no
// token configured every request is rejected.
func requireAdmin[R any](s *Service) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			if !validAdminToken(ctx.Request().Header.Get("Authorization"), s.adminToken) {
				s.logger.WarnContext(ctx, "admin request rejected", slog.String("path", ctx.Request().URL.Path))
				return handler.JSONError(handler.ErrUnauthorized)
			}
			return next(ctx, req)
		}
	}
}

func validAdminToken(header, want string) bool {
	if want == "" {
		return false
	}
	got, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
