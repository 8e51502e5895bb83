package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormkit/adapters/adapter"
)

func TestMapErrorConstraintViolations(t *testing.T) {
	d := &driver{}

	tests := []struct {
		name   string
		native *pgconn.PgError
		verify func(t *testing.T, mapped adapter.MappedError)
	}{
		{
			name:   "unique violation",
			native: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			verify: func(t *testing.T, mapped adapter.MappedError) {
				v, ok := mapped.(*adapter.UniqueConstraintViolation)
				require.True(t, ok)
				assert.Equal(t, "users_email_key", v.Constraint)
			},
		},
		{
			name:   "not null violation",
			native: &pgconn.PgError{Code: "23502", ColumnName: "name"},
			verify: func(t *testing.T, mapped adapter.MappedError) {
				v, ok := mapped.(*adapter.NullConstraintViolation)
				require.True(t, ok)
				assert.Equal(t, "name", v.Column)
			},
		},
		{
			name:   "foreign key violation",
			native: &pgconn.PgError{Code: "23503", ConstraintName: "orders_user_id_fkey"},
			verify: func(t *testing.T, mapped adapter.MappedError) {
				v, ok := mapped.(*adapter.ForeignKeyConstraintViolation)
				require.True(t, ok)
				assert.Equal(t, "orders_user_id_fkey", v.Constraint)
			},
		},
		{
			name:   "undefined table",
			native: &pgconn.PgError{Code: "42P01", TableName: "ghosts"},
			verify: func(t *testing.T, mapped adapter.MappedError) {
				v, ok := mapped.(*adapter.TableDoesNotExist)
				require.True(t, ok)
				assert.Equal(t, "ghosts", v.Table)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, d.MapError(tt.native))
		})
	}
}

func TestMapErrorUnmappedCodePassesThrough(t *testing.T) {
	d := &driver{}
	native := &pgconn.PgError{
		Code:     "57014",
		Severity: "ERROR",
		Message:  "canceling statement due to statement timeout",
		Hint:     "retry later",
	}

	mapped := d.MapError(native)
	pg, ok := mapped.(*adapter.PostgresError)
	require.True(t, ok)
	assert.Equal(t, "57014", pg.Code)
	assert.Equal(t, "ERROR", pg.Severity)
	assert.Equal(t, "canceling statement due to statement timeout", pg.Message)
	assert.Equal(t, "retry later", pg.Hint)
}

func TestMapErrorWrappedPgError(t *testing.T) {
	d := &driver{}
	native := fmt.Errorf("exec failed: %w", &pgconn.PgError{Code: "23505", ConstraintName: "pk_users"})

	mapped := d.MapError(native)
	v, ok := mapped.(*adapter.UniqueConstraintViolation)
	require.True(t, ok)
	assert.Equal(t, "pk_users", v.Constraint)
}

func TestMapErrorGenericFallback(t *testing.T) {
	d := &driver{}

	mapped := d.MapError(errors.New("write: broken pipe"))
	generic, ok := mapped.(*adapter.GenericError)
	require.True(t, ok)
	assert.NotEmpty(t, generic.ID)
	assert.Equal(t, "write: broken pipe", generic.Message)

	// Each failure gets its own correlation identifier.
	second := d.MapError(errors.New("write: broken pipe")).(*adapter.GenericError)
	assert.NotEqual(t, generic.ID, second.ID)
}
