package sqlite

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/ormkit/adapters/adapter"
)

// Extended result codes with a dedicated variant in the error taxonomy.
const (
	codeConstraintForeignKey = 787  // SQLITE_CONSTRAINT_FOREIGNKEY
	codeConstraintNotNull    = 1299 // SQLITE_CONSTRAINT_NOTNULL
	codeConstraintPrimaryKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
	codeConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE
	codeGenericError         = 1    // SQLITE_ERROR
)

// MapError converts a native SQLite failure into exactly one MappedError
// variant. Codes in the mapping table get their named kind; any other
// *sqlite.Error becomes the SQLite passthrough; everything else falls back
// to the generic variant.
func (d *driver) MapError(err error) adapter.MappedError {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return &adapter.GenericError{ID: uuid.NewString(), Message: err.Error()}
	}

	msg := sqliteErr.Error()

	switch sqliteErr.Code() {
	case codeConstraintUnique, codeConstraintPrimaryKey:
		return &adapter.UniqueConstraintViolation{Constraint: detailAfter(msg, "constraint failed: ")}
	case codeConstraintNotNull:
		return &adapter.NullConstraintViolation{Column: detailAfter(msg, "constraint failed: ")}
	case codeConstraintForeignKey:
		return &adapter.ForeignKeyConstraintViolation{}
	case codeGenericError:
		if table := detailAfter(msg, "no such table: "); table != "" {
			return &adapter.TableDoesNotExist{Table: table}
		}
	}

	return &adapter.SQLiteError{
		ExtendedCode: sqliteErr.Code(),
		Message:      msg,
	}
}

// detailAfter extracts the detail SQLite appends after a fixed marker, e.g.
// the "users.email" in "UNIQUE constraint failed: users.email".
func detailAfter(msg, marker string) string {
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	detail := msg[i+len(marker):]
	if j := strings.IndexByte(detail, '('); j >= 0 {
		detail = detail[:j]
	}
	return strings.TrimSpace(detail)
}
