package search

import "time"

// Config holds search API settings.
type Config struct {
	PreferencesMaxAge time.Duration `env:"SEARCH_PREFERENCES_MAX_AGE" envDefault:"720h" validate:"gt=0"`
	SecureCookies     bool          `env:"SEARCH_SECURE_COOKIES" envDefault:"false"`

	// AdminToken guards the admin routes. Empty disables them.
	AdminToken string `env:"SEARCH_ADMIN_TOKEN"`
}

// NewFromConfig creates a Service from cfg.
func NewFromConfig(cfg Config, locations Locations, journeys Journeys, prefs PreferenceCookies, opts ...Option) (*Service, error) {
	configOpts := []Option{
		WithPreferencesMaxAge(cfg.PreferencesMaxAge),
		WithSecureCookies(cfg.SecureCookies),
		WithAdminToken(cfg.AdminToken),
	}
	return New(locations, journeys, prefs, append(configOpts, opts...)...)
}
