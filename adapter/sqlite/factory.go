package sqlite

import (
	"context"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

// Factory constructs SQLite adapters for the primary and shadow targets.
type Factory struct {
	cfg *config.DatabaseConfig
	log logger.Logger
}

// NewFactory creates a Factory bound to the given configuration.
func NewFactory(cfg *config.DatabaseConfig, log logger.Logger) *Factory {
	return &Factory{cfg: cfg, log: log}
}

// Provider returns the engine family tag.
func (f *Factory) Provider() adapter.Provider {
	return adapter.SQLite
}

// Name returns the static adapter identity string.
func (f *Factory) Name() string {
	return "ormkit-sqlite"
}

// Connect opens an adapter bound to the primary database file.
func (f *Factory) Connect(ctx context.Context) (adapter.Adapter, error) {
	return open(ctx, buildDSN(f.cfg), f.cfg, f.log)
}

// ConnectToShadow opens an adapter bound to the shadow database, falling
// back to the primary target when no shadow target is configured.
func (f *Factory) ConnectToShadow(ctx context.Context) (adapter.Adapter, error) {
	dsn := f.cfg.ShadowConnectionString
	if dsn == "" {
		dsn = buildDSN(f.cfg)
	}
	return open(ctx, dsn, f.cfg, f.log)
}
