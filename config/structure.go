// Package config loads and validates the configuration consumed by the
// adapter factories. Sources are merged with the priority defaults < YAML
// file < environment variables.
package config

import "time"

// Config is the root configuration object.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig describes the primary connection target and, optionally, the
// shadow database target used by migration tooling.
type DatabaseConfig struct {
	Provider string `koanf:"provider"` // "postgres", "sqlite" or "oracle"
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"ssl_mode"`

	// Oracle-specific settings
	ServiceName string `koanf:"service_name"`
	SID         string `koanf:"sid"`

	// ConnectionString overrides the individual fields above when set.
	ConnectionString string `koanf:"connection_string"`

	// ShadowConnectionString points at the shadow database used for
	// migration diffing. When empty the primary target is reused.
	ShadowConnectionString string `koanf:"shadow_connection_string"`

	// ConnectTimeout bounds connection establishment including the initial
	// ping. Zero means the 10s default.
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}
