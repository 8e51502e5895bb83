package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration validation failures. These can be used
// with errors.Is() for programmatic error checking.
var (
	// ErrMissingProvider is returned when no database provider is configured.
	ErrMissingProvider = errors.New("database provider is required")

	// ErrMissingTarget is returned when neither a connection string nor
	// host/database fields are configured.
	ErrMissingTarget = errors.New("database connection target is required")

	// ErrInvalidPort is returned when the configured port is out of range.
	ErrInvalidPort = errors.New("database port must be between 1 and 65535")

	// ErrNegativeTimeout is returned when connect_timeout is negative.
	ErrNegativeTimeout = errors.New("connect timeout cannot be negative")
)

// Validate checks the configuration for structural problems. Provider
// membership is checked by the factory, which owns the list of supported
// engines.
func Validate(cfg *Config) error {
	db := &cfg.Database

	if db.Provider == "" {
		return ErrMissingProvider
	}

	if db.ConnectionString == "" && db.Database == "" && db.ServiceName == "" && db.SID == "" {
		return fmt.Errorf("%w (set connection_string or host/database)", ErrMissingTarget)
	}

	if db.ConnectionString == "" && db.Host != "" {
		if db.Port < 1 || db.Port > 65535 {
			return fmt.Errorf("%w (got %d)", ErrInvalidPort, db.Port)
		}
	}

	if db.ConnectTimeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}
