package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle contract violations.
var (
	// ErrAdapterClosed is returned by any operation issued after Dispose
	// completed.
	ErrAdapterClosed = errors.New("adapter is closed")

	// ErrTxDone is returned when Commit or Rollback is invoked on a
	// transaction that already received its terminal call.
	ErrTxDone = errors.New("transaction has already been committed or rolled back")
)

// MappedError is the normalized representation of a native driver failure.
// The set of implementations is closed: a handful of constraint/structural
// kinds, one engine-specific passthrough per engine family, and a generic
// fallback. Exactly one variant is active per error instance.
type MappedError interface {
	// Kind returns a stable identifier for the variant, e.g.
	// "unique-constraint-violation".
	Kind() string

	// message renders the human-readable form used by Error.Error. Keeping
	// it unexported closes the taxonomy to this package and the engine
	// packages that construct variants.
	message() string
}

// Error wraps a MappedError together with the native failure that produced
// it. It is the only error type the adapter boundary lets through for native
// failures; the cause remains reachable via errors.Unwrap for logging but is
// never returned bare.
type Error struct {
	Mapped MappedError
	cause  error
}

// NewError wraps mapped and its native cause. cause may be nil for failures
// that originate inside the adapter itself, such as isolation validation.
func NewError(mapped MappedError, cause error) *Error {
	return &Error{Mapped: mapped, cause: cause}
}

func (e *Error) Error() string {
	return e.Mapped.message()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// UniqueConstraintViolation reports a violated unique index or primary key.
type UniqueConstraintViolation struct {
	// Constraint is the violated constraint or index name when the engine
	// reports one.
	Constraint string
}

func (e *UniqueConstraintViolation) Kind() string { return "unique-constraint-violation" }

func (e *UniqueConstraintViolation) message() string {
	if e.Constraint == "" {
		return "unique constraint violation"
	}
	return fmt.Sprintf("unique constraint violation on %q", e.Constraint)
}

// NullConstraintViolation reports a NULL written to a NOT NULL column.
type NullConstraintViolation struct {
	Column string
}

func (e *NullConstraintViolation) Kind() string { return "null-constraint-violation" }

func (e *NullConstraintViolation) message() string {
	if e.Column == "" {
		return "null constraint violation"
	}
	return fmt.Sprintf("null constraint violation on column %q", e.Column)
}

// ForeignKeyConstraintViolation reports a violated foreign key.
type ForeignKeyConstraintViolation struct {
	Constraint string
}

func (e *ForeignKeyConstraintViolation) Kind() string { return "foreign-key-constraint-violation" }

func (e *ForeignKeyConstraintViolation) message() string {
	if e.Constraint == "" {
		return "foreign key constraint violation"
	}
	return fmt.Sprintf("foreign key constraint violation on %q", e.Constraint)
}

// TableDoesNotExist reports a statement referencing a missing relation.
type TableDoesNotExist struct {
	Table string
}

func (e *TableDoesNotExist) Kind() string { return "table-does-not-exist" }

func (e *TableDoesNotExist) message() string {
	if e.Table == "" {
		return "table does not exist"
	}
	return fmt.Sprintf("table %q does not exist", e.Table)
}

// InvalidIsolationLevel reports an isolation level outside the engine's
// allow-list. No SQL was sent and transaction depth is unchanged.
type InvalidIsolationLevel struct {
	Level string
}

func (e *InvalidIsolationLevel) Kind() string { return "invalid-isolation-level" }

func (e *InvalidIsolationLevel) message() string {
	return fmt.Sprintf("invalid isolation level %q", e.Level)
}

// PostgresError is the engine-specific passthrough for PostgreSQL failures
// whose SQLSTATE has no entry in the mapping table.
type PostgresError struct {
	Code     string
	Severity string
	Message  string
	Detail   string
	Column   string
	Hint     string
}

func (e *PostgresError) Kind() string { return "postgres" }

func (e *PostgresError) message() string {
	return fmt.Sprintf("postgres error %s: %s", e.Code, e.Message)
}

// SQLiteError is the engine-specific passthrough for SQLite failures.
type SQLiteError struct {
	// ExtendedCode is the extended result code, e.g. 2067 for
	// SQLITE_CONSTRAINT_UNIQUE.
	ExtendedCode int
	Message      string
}

func (e *SQLiteError) Kind() string { return "sqlite" }

func (e *SQLiteError) message() string {
	return fmt.Sprintf("sqlite error %d: %s", e.ExtendedCode, e.Message)
}

// OracleError is the engine-specific passthrough for Oracle failures.
type OracleError struct {
	Code    int
	Message string
}

func (e *OracleError) Kind() string { return "oracle" }

func (e *OracleError) message() string {
	return fmt.Sprintf("ORA-%05d: %s", e.Code, e.Message)
}

// GenericError is the fallback for failures with no recognizable engine
// shape. ID is an opaque identifier for correlating the failure with logs.
type GenericError struct {
	ID      string
	Message string
}

func (e *GenericError) Kind() string { return "generic" }

func (e *GenericError) message() string {
	return fmt.Sprintf("database error (id %s): %s", e.ID, e.Message)
}
