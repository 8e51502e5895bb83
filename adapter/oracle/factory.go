package oracle

import (
	"context"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

// Factory constructs Oracle adapters for the primary and shadow targets.
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
	return adapter.Oracle
}

// Name returns the static adapter identity string.
func (f *Factory) Name() string {
	return "ormkit-oracle"
}

// Connect opens an adapter bound to the primary connection target.
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
