package devicesession

import "time"

// Config holds device session settings.
type Config struct {
	TTL time.Duration `env:"DEVICE_SESSION_TTL" envDefault:"24h" validate:"gt=0"`

	// ApplicationVersion and EquipmentID identify this service on session creation.
	ApplicationVersion string `env:"OBILET_APPLICATION_VERSION" envDefault:"1.0.0.0" validate:"required"`
	EquipmentID        string `env:"OBILET_EQUIPMENT_ID" envDefault:"distribusion" validate:"required"`

	// SkipPrefixes are additional path prefixes that never resolve a session.
	SkipPrefixes []string `env:"DEVICE_SESSION_SKIP_PREFIXES" envDefault:"/health" envSeparator:","`
}

// NewFromConfig creates a Manager from cfg.
func NewFromConfig(cfg Config, api Creator, opts ...Option) (*Manager, error) {
	configOpts := []Option{
		WithTTL(cfg.TTL),
		WithApplication(cfg.ApplicationVersion, cfg.EquipmentID),
		WithSkipPrefixes(cfg.SkipPrefixes...),
	}
	return New(api, append(configOpts, opts...)...)
}
