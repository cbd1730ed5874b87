package locations

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
	"github.com/dmitrymomot/bussearch/pkg/cache"
	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// CatalogKey is the cache key of the full location catalog.
const CatalogKey = "AllBusLocations"

// DefaultTTL is how long the catalog stays cached.
const DefaultTTL = time.Hour

// Searcher is the upstream operation the service depends on.
type Searcher interface {
	SearchLocations(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error)
}

// Cache stores catalog responses.
type Cache = cache.Cache[*busapi.LocationResponse]

// Service reads locations through the catalog cache.
type Service struct {
	api    Searcher
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Service)

// WithTTL sets the catalog lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(api Searcher, c Cache, opts ...Option) (*Service, error) {
	if api == nil || c == nil {
		return nil, ErrNilDependency
	}
	s := &Service{
		api:    api,
		cache:  c,
		ttl:    DefaultTTL,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("locations"))
	return s, nil
}

// GetAllLocations returns the full catalog, from cache when live.
// Any search term on req is ignored. The returned response is shared with
// the cache and must not be modified.
func (s *Service) GetAllLocations(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error) {
	req = req.WithoutQuery()

	resp, err := cache.GetOrCreate(ctx, s.cache, CatalogKey, func(ctx context.Context) (*busapi.LocationResponse, error) {
		s.logger.InfoContext(ctx, "fetching location catalog from upstream")

		resp, err := s.search(ctx, req)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return nil, &notCacheable{resp: resp}
		}

		sorted := *resp
		sorted.Data = slices.Clone(resp.Data)
		busapi.SortByRank(sorted.Data)
		return &sorted, nil
	}, s.ttl)

	var nc *notCacheable
	if errors.As(err, &nc) {
		s.logger.WarnContext(ctx, "location catalog rejected by upstream",
			logger.Status(nc.resp.Status),
			logger.APIRequestID(nc.resp.APIRequestID),
		)
		return nc.resp, nil
	}
	return resp, err
}

// Search runs a free-text search upstream. An empty term serves the cached catalog.
func (s *Service) Search(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error) {
	if !req.IsSearch() {
		return s.GetAllLocations(ctx, req)
	}
	return s.search(ctx, req)
}

// search calls upstream, treating a nil envelope as an unavailable upstream.
func (s *Service) search(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error) {
	resp, err := s.api.SearchLocations(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.Join(busapi.ErrUpstreamUnavailable, ErrEmptyResponse)
	}
	return resp, nil
}

// InvalidateCache drops the cached catalog so the next read goes upstream.
func (s *Service) InvalidateCache(ctx context.Context) error {
	s.logger.InfoContext(ctx, "invalidating location catalog", logger.CacheKey(CatalogKey))
	return s.cache.Remove(ctx, CatalogKey)
}

// notCacheable carries a rejected envelope out of the cache factory so it is
// returned to the caller without being stored.
type notCacheable struct {
	resp *busapi.LocationResponse
}

func (e *notCacheable) Error() string {
	return "rejected catalog response: " + e.resp.Status
}
