package search

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/bussearch/handler"
	"github.com/dmitrymomot/bussearch/pkg/binder"
	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// DefaultPreferencesMaxAge is the lifetime of the preference cookie.
const DefaultPreferencesMaxAge = 30 * 24 * time.Hour

// Locations is the location lookup the API serves from.
type Locations interface {
	GetAllLocations(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error)
	Search(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error)
	InvalidateCache(ctx context.Context) error
}

// Journeys is the upstream journey search.
type Journeys interface {
	SearchJourneys(ctx context.Context, req busapi.JourneyRequest) (*busapi.JourneyResponse, error)
}

// Service implements the search API handlers.
type Service struct {
	locations     Locations
	journeys      Journeys
	cookies       PreferenceCookies
	prefsMaxAge   time.Duration
	secureCookies bool
	adminToken    string
	logger        *slog.Logger
	errorHandler  handler.ErrorHandler[handler.Context]
	now           func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for request dates and defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithPreferencesMaxAge(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.prefsMaxAge = d
		}
	}
}

func WithSecureCookies(secure bool) Option {
	return func(s *Service) {
		s.secureCookies = secure
	}
}

// WithAdminToken sets the bearer token required by the admin routes.
func WithAdminToken(token string) Option {
	return func(s *Service) { s.adminToken = token }
}

// WithErrorHandler replaces the handler rendering binding failures.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func New(locations Locations, journeys Journeys, cookies PreferenceCookies, opts ...Option) (*Service, error) {
	if locations == nil || journeys == nil || cookies == nil {
		return nil, ErrNilDependency
	}
	s := &Service{
		locations:   locations,
		journeys:    journeys,
		cookies:     cookies,
		prefsMaxAge: DefaultPreferencesMaxAge,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("search"))
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s, nil
}

// Handle returns the router of the search API.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", wrap(s, s.index))
	r.Get("/locations", wrap(s, s.searchLocations))
	r.Post("/locations/swap", wrap(s, s.swapLocations))
	r.Get("/journeys", wrap(s, s.searchJourneys))
	r.Post("/date", wrap(s, s.setDate))
	r.Post("/admin/cache/invalidate", wrap(s, s.invalidateCache, requireAdmin[struct{}](s)))
	r.Get("/error", wrap(s, s.errorPage))

	r.NotFound(wrap(s, func(handler.Context, struct{}) handler.Response {
		return handler.JSONError(handler.ErrNotFound)
	}))
	r.MethodNotAllowed(wrap(s, func(handler.Context, struct{}) handler.Response {
		return handler.JSONError(handler.ErrMethodNotAllowed)
	}))

	return r
}

// wrap binds query and form values, validates them and renders binding
// failures through the service error handler. Every handler is timed;
// decorators run inside the timing, in the order given.
func wrap[R any](s *Service, h handler.HandlerFunc[handler.Context, R], decorators ...handler.Decorator[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binder.Query(), binder.Form(), binder.Validate()),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
		handler.WithDecorators(append([]handler.Decorator[handler.Context, R]{timed[R](s)}, decorators...)...),
	)
}
