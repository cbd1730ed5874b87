package busapi

import "time"

// Config holds upstream API client configuration.
type Config struct {
	BaseURL string        `env:"OBILET_API_BASE_URL" envDefault:"https://v2-api.obilet.com/api/" validate:"required,url"`
	Token   string        `env:"OBILET_API_CLIENT_TOKEN" validate:"required"`
	Timeout time.Duration `env:"OBILET_API_TIMEOUT" envDefault:"15s" validate:"gt=0"`
}

// NewFromConfig creates a new Client from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := make([]Option, 0, 1+len(opts))
	if cfg.Timeout > 0 {
		configOpts = append(configOpts, WithTimeout(cfg.Timeout))
	}
	configOpts = append(configOpts, opts...)

	return New(cfg.BaseURL, cfg.Token, configOpts...)
}
