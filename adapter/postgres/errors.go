package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ormkit/adapters/adapter"
)

// SQLSTATE codes with a dedicated variant in the error taxonomy.
const (
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUndefinedTable      = "42P01"
)

// MapError converts a native PostgreSQL failure into exactly one MappedError
// variant. SQLSTATEs in the mapping table get their named kind; any other
// *pgconn.PgError becomes the Postgres passthrough so the raw code is never
// lost; everything else falls back to the generic variant.
func (d *driver) MapError(err error) adapter.MappedError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return &adapter.GenericError{ID: uuid.NewString(), Message: err.Error()}
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return &adapter.UniqueConstraintViolation{Constraint: pgErr.ConstraintName}
	case codeNotNullViolation:
		return &adapter.NullConstraintViolation{Column: pgErr.ColumnName}
	case codeForeignKeyViolation:
		return &adapter.ForeignKeyConstraintViolation{Constraint: pgErr.ConstraintName}
	case codeUndefinedTable:
		return &adapter.TableDoesNotExist{Table: pgErr.TableName}
	default:
		return &adapter.PostgresError{
			Code:     pgErr.Code,
			Severity: pgErr.Severity,
			Message:  pgErr.Message,
			Detail:   pgErr.Detail,
			Column:   pgErr.ColumnName,
			Hint:     pgErr.Hint,
		}
	}
}
