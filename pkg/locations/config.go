package locations

import "time"

// Config holds catalog cache settings.
type Config struct {
	CacheTTL      time.Duration `env:"LOCATIONS_CACHE_TTL" envDefault:"1h" validate:"gt=0"`
	CacheCapacity int           `env:"LOCATIONS_CACHE_CAPACITY" envDefault:"16" validate:"gt=0"`
	// CacheBackend selects "memory" or "redis".
	CacheBackend string `env:"LOCATIONS_CACHE_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
}

// NewFromConfig creates a Service from cfg.
func NewFromConfig(cfg Config, api Searcher, c Cache, opts ...Option) (*Service, error) {
	return New(api, c, append([]Option{WithTTL(cfg.CacheTTL)}, opts...)...)
}
