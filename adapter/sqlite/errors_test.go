package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/adapters/adapter"
)

func TestUniqueConstraintMapped(t *testing.T) {
	a := openMemory(t)
	ctx := context.Background()
	seedUsers(t, a)

	insert := adapter.Query{
		SQL:      "INSERT INTO users (name, email) VALUES (?, ?)",
		Args:     []any{"Alice", "alice@example.com"},
		ArgTypes: []adapter.ArgType{{Kind: adapter.ScalarString}, {Kind: adapter.ScalarString}},
	}
	_, err := a.ExecuteRaw(ctx, insert)
	require.NoError(t, err)

	_, err = a.ExecuteRaw(ctx, insert)
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	v, ok := adapterErr.Mapped.(*adapter.UniqueConstraintViolation)
	require.True(t, ok)
	assert.Equal(t, "users.email", v.Constraint)
}

func TestPrimaryKeyViolationMapsToUnique(t *testing.T) {
	a := openMemory(t)
	ctx := context.Background()
	seedUsers(t, a)

	insert := adapter.Query{
		SQL:      "INSERT INTO users (id, name) VALUES (?, ?)",
		Args:     []any{"1", "Alice"},
		ArgTypes: []adapter.ArgType{{Kind: adapter.ScalarInt}, {Kind: adapter.ScalarString}},
	}
	_, err := a.ExecuteRaw(ctx, insert)
	require.NoError(t, err)

	_, err = a.ExecuteRaw(ctx, insert)
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	v, ok := adapterErr.Mapped.(*adapter.UniqueConstraintViolation)
	require.True(t, ok)
	assert.Equal(t, "users.id", v.Constraint)
}

func TestNullConstraintMapped(t *testing.T) {
	a := openMemory(t)
	ctx := context.Background()
	seedUsers(t, a)

	_, err := a.ExecuteRaw(ctx, adapter.Query{
		SQL:      "INSERT INTO users (name) VALUES (?)",
		Args:     []any{nil},
		ArgTypes: []adapter.ArgType{{Kind: adapter.ScalarString}},
	})
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	v, ok := adapterErr.Mapped.(*adapter.NullConstraintViolation)
	require.True(t, ok)
	assert.Equal(t, "users.name", v.Column)
}

func TestMissingTableMapped(t *testing.T) {
	a := openMemory(t)

	_, err := a.QueryRaw(context.Background(), adapter.Query{SQL: "SELECT * FROM ghosts"})
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	v, ok := adapterErr.Mapped.(*adapter.TableDoesNotExist)
	require.True(t, ok)
	assert.Equal(t, "ghosts", v.Table)
}

func TestSyntaxErrorPassesThrough(t *testing.T) {
	a := openMemory(t)

	_, err := a.QueryRaw(context.Background(), adapter.Query{SQL: "SELEKT 1"})
	require.Error(t, err)

	var adapterErr *adapter.Error
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "sqlite", adapterErr.Mapped.Kind())
}

func TestMapErrorGenericFallback(t *testing.T) {
	d := &driver{}

	mapped := d.MapError(errors.New("disk I/O failed"))
	generic, ok := mapped.(*adapter.GenericError)
	require.True(t, ok)
	assert.NotEmpty(t, generic.ID)
	assert.Equal(t, "disk I/O failed", generic.Message)
}

func TestDetailAfter(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		marker   string
		expected string
	}{
		{
			"unique detail",
			"UNIQUE constraint failed: users.email (2067)",
			"constraint failed: ",
			"users.email",
		},
		{
			"missing marker",
			"database is locked",
			"constraint failed: ",
			"",
		},
		{
			"trailing code stripped",
			"SQL logic error: no such table: ghosts (1)",
			"no such table: ",
			"ghosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detailAfter(tt.msg, tt.marker))
		})
	}
}
