//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
	"github.com/ormkit/adapters/testing/containers"
)

// setupAdapter starts a PostgreSQL testcontainer and opens an adapter bound
// to it. Container and adapter are cleaned up when the test finishes.
func setupAdapter(t *testing.T) (adapter.Adapter, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	pgContainer := containers.MustStartPostgreSQLContainer(ctx, t, nil).WithCleanup(t)

	f := NewFactory(&config.DatabaseConfig{
		ConnectionString: pgContainer.ConnectionString(),
	}, logger.New("disabled", false))

	a, err := f.Connect(ctx)
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(func() { _ = a.Dispose() })

	return a, ctx
}

func TestQueryRoundTripIntegration(t *testing.T) {
	a, ctx := setupAdapter(t)

	require.NoError(t, a.ExecuteScript(ctx, `
		CREATE TABLE users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`))

	affected, err := a.ExecuteRaw(ctx, adapter.Query{
		SQL:  "INSERT INTO users (name, email, active) VALUES ($1, $2, $3)",
		Args: []any{"Alice", "alice@example.com", true},
		ArgTypes: []adapter.ArgType{
			{Kind: adapter.ScalarString},
			{Kind: adapter.ScalarString},
			{Kind: adapter.ScalarBoolean},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rs, err := a.QueryRaw(ctx, adapter.Query{SQL: "SELECT id, name, active FROM users"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "active"}, rs.ColumnNames)
	assert.Equal(t, []adapter.ColumnType{adapter.ColInt64, adapter.ColText, adapter.ColBoolean}, rs.ColumnTypes)
	assert.Equal(t, [][]any{{"1", "Alice", true}}, rs.Rows)
}

func TestSavepointsAreRealIntegration(t *testing.T) {
	a, ctx := setupAdapter(t)

	require.NoError(t, a.ExecuteScript(ctx, "CREATE TABLE items (id SERIAL PRIMARY KEY, label TEXT)"))

	insert := func(q adapter.Queryable, label string) {
		t.Helper()
		_, err := q.ExecuteRaw(ctx, adapter.Query{
			SQL:      "INSERT INTO items (label) VALUES ($1)",
			Args:     []any{label},
			ArgTypes: []adapter.ArgType{{Kind: adapter.ScalarString}},
		})
		require.NoError(t, err)
	}

	outer, err := a.StartTransaction(ctx, "")
	require.NoError(t, err)
	insert(outer, "kept")

	inner, err := a.StartTransaction(ctx, "")
	require.NoError(t, err)
	insert(inner, "discarded")

	// The runtime issues terminal SQL itself; lifecycle calls only release
	// depth.
	_, err = inner.ExecuteRaw(ctx, adapter.Query{SQL: "ROLLBACK TO sp_2"})
	require.NoError(t, err)
	require.NoError(t, inner.Rollback())

	_, err = outer.ExecuteRaw(ctx, adapter.Query{SQL: "COMMIT"})
	require.NoError(t, err)
	require.NoError(t, outer.Commit())

	rs, err := a.QueryRaw(ctx, adapter.Query{SQL: "SELECT label FROM items ORDER BY id"})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"kept"}}, rs.Rows)
}

func TestUniqueViolationIntegration(t *testing.T) {
	a, ctx := setupAdapter(t)

	require.NoError(t, a.ExecuteScript(ctx, "CREATE TABLE accounts (email TEXT PRIMARY KEY)"))

	insert := adapter.Query{
		SQL:      "INSERT INTO accounts (email) VALUES ($1)",
		Args:     []any{"alice@example.com"},
		ArgTypes: []adapter.ArgType{{Kind: adapter.ScalarString}},
	}
	_, err := a.ExecuteRaw(ctx, insert)
	require.NoError(t, err)

	_, err = a.ExecuteRaw(ctx, insert)
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	v, ok := adapterErr.Mapped.(*adapter.UniqueConstraintViolation)
	require.True(t, ok)
	assert.Equal(t, "accounts_pkey", v.Constraint)
}

func TestIsolationLevelIntegration(t *testing.T) {
	a, ctx := setupAdapter(t)

	tx, err := a.StartTransaction(ctx, "serializable")
	require.NoError(t, err)

	rs, err := tx.QueryRaw(ctx, adapter.Query{SQL: "SHOW transaction_isolation"})
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, "serializable", rs.Rows[0][0])

	_, err = tx.ExecuteRaw(ctx, adapter.Query{SQL: "COMMIT"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestShadowConnectIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	pgContainer := containers.MustStartPostgreSQLContainer(ctx, t, nil).WithCleanup(t)

	f := NewFactory(&config.DatabaseConfig{
		ConnectionString:       pgContainer.ConnectionString(),
		ShadowConnectionString: pgContainer.ConnectionString(),
	}, logger.New("disabled", false))

	shadow, err := f.ConnectToShadow(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = shadow.Dispose() })

	rs, err := shadow.QueryRaw(ctx, adapter.Query{SQL: "SELECT 1"})
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
}
