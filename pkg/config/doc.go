// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 and runs
// go-playground/validator over the result, so a struct is both parsed and
// checked in one call:
//
//	type Config struct {
//	    Addr    string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
//	    Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s" validate:"gt=0"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Each configuration type is parsed once per process and cached. Use
// ResetCache in tests after changing the environment.
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrInvalidConfig, ErrNilPointer and ErrLoadingEnvFile.
package config
