//go:build integration

// Package containers provides testcontainer helpers for integration tests.
package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgreSQLContainerConfig holds configuration for the PostgreSQL test
// container.
type PostgreSQLContainerConfig struct {
	// ImageTag specifies the PostgreSQL version (default: "17-alpine")
	ImageTag string
	// Username for PostgreSQL authentication (default: "testuser")
	Username string
	// Password for PostgreSQL authentication (default: "testpass")
	Password string
	// Database name to create (default: "testdb")
	Database string
	// StartupTimeout for container initialization (default: 60 seconds)
	StartupTimeout time.Duration
}

// DefaultPostgreSQLConfig returns a PostgreSQLContainerConfig populated with
// sensible defaults.
func DefaultPostgreSQLConfig() *PostgreSQLContainerConfig {
	return &PostgreSQLContainerConfig{
		ImageTag:       "17-alpine",
		Username:       "testuser",
		Password:       "testpass",
		Database:       "testdb",
		StartupTimeout: 60 * time.Second,
	}
}

// PostgreSQLContainer wraps a testcontainers PostgreSQL container with helper
// methods.
type PostgreSQLContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

// StartPostgreSQLContainer starts a PostgreSQL testcontainer using the
// provided configuration. If cfg is nil, DefaultPostgreSQLConfig is used. If
// Docker is not available the test is skipped with a clear message.
func StartPostgreSQLContainer(ctx context.Context, t *testing.T, cfg *PostgreSQLContainerConfig) (*PostgreSQLContainer, error) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultPostgreSQLConfig()
	}

	if !isDockerAvailable(ctx) {
		t.Skip("Docker is not available - skipping integration test")
		return nil, nil
	}

	pgContainer, err := postgres.Run(ctx,
		fmt.Sprintf("postgres:%s", cfg.ImageTag),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2). // Postgres restarts after initial setup
				WithStartupTimeout(cfg.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
	}

	return &PostgreSQLContainer{
		container: pgContainer,
		connStr:   connStr,
	}, nil
}

// ConnectionString returns the PostgreSQL connection string.
func (p *PostgreSQLContainer) ConnectionString() string {
	return p.connStr
}

// Terminate stops and removes the PostgreSQL container.
func (p *PostgreSQLContainer) Terminate(ctx context.Context) error {
	if p.container == nil {
		return nil
	}
	return p.container.Terminate(ctx)
}

// MustStartPostgreSQLContainer starts a PostgreSQL test container and fails
// the test if startup fails.
func MustStartPostgreSQLContainer(ctx context.Context, t *testing.T, cfg *PostgreSQLContainerConfig) *PostgreSQLContainer {
	t.Helper()

	container, err := StartPostgreSQLContainer(ctx, t, cfg)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	return container
}

// WithCleanup registers a cleanup function to terminate the container when
// the test finishes.
func (p *PostgreSQLContainer) WithCleanup(t *testing.T) *PostgreSQLContainer {
	t.Helper()
	t.Cleanup(func() {
		if err := p.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate PostgreSQL container: %v", err)
		}
	})
	return p
}
