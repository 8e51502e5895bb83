package adapter

import "context"

// Capabilities describes the engine behaviors the shared adapter logic has
// to compensate for.
type Capabilities struct {
	// EmulatesBoolean is set for engines without a native boolean type;
	// boolean arguments are bound as 0/1 integers.
	EmulatesBoolean bool

	// SupportsMultiStatement is set when the native driver executes a whole
	// script in one call. Engines without it get statement-by-statement
	// execution split on statement terminators.
	SupportsMultiStatement bool

	// IsolationLevels is the engine's allow-list for StartTransaction.
	IsolationLevels []IsolationLevel
}

// NativeColumn is column metadata as reported by the native driver.
// TypeKnown is false when the driver supplied no usable type, in which case
// the column type is inferred from row values.
type NativeColumn struct {
	Name      string
	Type      ColumnType
	TypeKnown bool
}

// NativeResult is the engine-native outcome of a read before row mapping.
type NativeResult struct {
	Columns      []NativeColumn
	Rows         [][]any
	LastInsertID *int64
}

// Driver is the engine-facing contract implemented by each engine package
// (postgres, sqlite, oracle). A Driver is bound to exactly one native
// connection; the shared Adapter logic layers value mapping, error wrapping
// and the transaction depth state machine on top of it.
type Driver interface {
	Provider() Provider
	Capabilities() Capabilities
	ConnectionInfo() ConnectionInfo

	// Query runs a read with already-mapped arguments and returns native
	// values plus column metadata.
	Query(ctx context.Context, sql string, args []any) (*NativeResult, error)

	// Exec runs a write with already-mapped arguments and returns the
	// affected-row count (zero when the driver reports none).
	Exec(ctx context.Context, sql string, args []any) (int64, error)

	// BeginStatement returns the statement that opens a top-level
	// transaction, with an isolation clause when level is non-empty. An
	// empty return means the engine starts transactions implicitly and
	// nothing is sent.
	BeginStatement(level IsolationLevel) string

	// MapError converts a native failure into exactly one MappedError
	// variant. It must be a pure function of its input.
	MapError(err error) MappedError

	// Close releases the native connection.
	Close() error
}
