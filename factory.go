// Package adapters selects and constructs the engine-specific adapter
// factory for a configured database provider.
package adapters

import (
	"fmt"
	"slices"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/adapter/oracle"
	"github.com/ormkit/adapters/adapter/postgres"
	"github.com/ormkit/adapters/adapter/sqlite"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

// New creates the adapter factory matching cfg.Provider (supported:
// "postgres", "sqlite", "oracle"). The factory only holds configuration;
// connections are opened by its Connect and ConnectToShadow methods.
func New(cfg *config.DatabaseConfig, log logger.Logger) (adapter.Factory, error) {
	switch adapter.Provider(cfg.Provider) {
	case adapter.Postgres:
		return postgres.NewFactory(cfg, log), nil
	case adapter.SQLite:
		return sqlite.NewFactory(cfg, log), nil
	case adapter.Oracle:
		return oracle.NewFactory(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s (supported: %v)", cfg.Provider, SupportedProviders())
	}
}

// ValidateProvider returns nil if provider is one of the supported database
// providers, otherwise an error listing the supported values.
func ValidateProvider(provider string) error {
	if !slices.Contains(SupportedProviders(), provider) {
		return fmt.Errorf("unsupported database provider: %s (supported: %v)", provider, SupportedProviders())
	}
	return nil
}

// SupportedProviders returns the list of supported database providers.
func SupportedProviders() []string {
	return []string{
		string(adapter.Postgres),
		string(adapter.SQLite),
		string(adapter.Oracle),
	}
}
