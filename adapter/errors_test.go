package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		mapped MappedError
		kind   string
		text   string
	}{
		{
			"unique with constraint",
			&UniqueConstraintViolation{Constraint: "users_email_key"},
			"unique-constraint-violation",
			`unique constraint violation on "users_email_key"`,
		},
		{
			"unique without constraint",
			&UniqueConstraintViolation{},
			"unique-constraint-violation",
			"unique constraint violation",
		},
		{
			"null constraint",
			&NullConstraintViolation{Column: "name"},
			"null-constraint-violation",
			`null constraint violation on column "name"`,
		},
		{
			"foreign key",
			&ForeignKeyConstraintViolation{Constraint: "orders_user_fk"},
			"foreign-key-constraint-violation",
			`foreign key constraint violation on "orders_user_fk"`,
		},
		{
			"missing table",
			&TableDoesNotExist{Table: "ghosts"},
			"table-does-not-exist",
			`table "ghosts" does not exist`,
		},
		{
			"invalid isolation",
			&InvalidIsolationLevel{Level: "SNAPSHOT"},
			"invalid-isolation-level",
			`invalid isolation level "SNAPSHOT"`,
		},
		{
			"postgres passthrough",
			&PostgresError{Code: "57014", Message: "canceling statement"},
			"postgres",
			"postgres error 57014: canceling statement",
		},
		{
			"sqlite passthrough",
			&SQLiteError{ExtendedCode: 5, Message: "database is locked"},
			"sqlite",
			"sqlite error 5: database is locked",
		},
		{
			"oracle passthrough",
			&OracleError{Code: 54, Message: "resource busy"},
			"oracle",
			"ORA-00054: resource busy",
		},
		{
			"generic fallback",
			&GenericError{ID: "abc", Message: "boom"},
			"generic",
			"database error (id abc): boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.mapped.Kind())
			assert.Equal(t, tt.text, NewError(tt.mapped, nil).Error())
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	native := errors.New("connection reset by peer")
	err := NewError(&GenericError{ID: "abc", Message: native.Error()}, native)

	assert.ErrorIs(t, err, native)

	var adapterErr *Error
	require.ErrorAs(t, err, &adapterErr)
	assert.Equal(t, "generic", adapterErr.Mapped.Kind())
}

func TestErrorNilCause(t *testing.T) {
	err := NewError(&InvalidIsolationLevel{Level: "SNAPSHOT"}, nil)
	assert.Nil(t, errors.Unwrap(err))
}
