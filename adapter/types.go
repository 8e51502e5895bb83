// Package adapter defines the driver-adapter contract between an ORM runtime
// and a native database driver: the wire-neutral value model, the closed error
// taxonomy, and the connection/transaction lifecycle shared by every engine.
//
// One Adapter owns exactly one native connection. The calling runtime drives
// all work; the adapter never initiates anything on its own and never issues
// COMMIT/ROLLBACK SQL from transaction lifecycle hooks.
package adapter

import (
	"fmt"
	"strings"
)

// Provider identifies a database engine family.
type Provider string

const (
	Postgres Provider = "postgres"
	SQLite   Provider = "sqlite"
	Oracle   Provider = "oracle"
)

// ScalarKind is the logical kind of a bound argument.
type ScalarKind string

const (
	ScalarString   ScalarKind = "string"
	ScalarInt      ScalarKind = "int"
	ScalarBigInt   ScalarKind = "bigint"
	ScalarFloat    ScalarKind = "float"
	ScalarDecimal  ScalarKind = "decimal"
	ScalarBoolean  ScalarKind = "boolean"
	ScalarEnum     ScalarKind = "enum"
	ScalarUUID     ScalarKind = "uuid"
	ScalarJSON     ScalarKind = "json"
	ScalarDateTime ScalarKind = "datetime"
	ScalarBytes    ScalarKind = "bytes"
	ScalarUnknown  ScalarKind = "unknown"
)

// Arity distinguishes scalar arguments from list arguments.
type Arity int

const (
	ArityScalar Arity = iota
	ArityList
)

// ArgType is the type hint attached to one bound argument.
type ArgType struct {
	Kind       ScalarKind
	NativeType string // optional engine type name, e.g. "VARCHAR2"
	Arity      Arity
}

// Query is one parameterized statement with its bound arguments. When
// ArgTypes is non-nil it must have the same length as Args.
type Query struct {
	SQL      string
	Args     []any
	ArgTypes []ArgType
}

// ResultSet is the mapped result of a read. Every row has exactly
// len(ColumnNames) values and len(ColumnTypes) == len(ColumnNames).
type ResultSet struct {
	ColumnNames  []string
	ColumnTypes  []ColumnType
	Rows         [][]any
	LastInsertID *int64
}

// ConnectionInfo is the static capability descriptor of a connection.
type ConnectionInfo struct {
	// SupportsRelationJoins reports whether the engine can evaluate
	// relational JOIN strategies natively.
	SupportsRelationJoins bool

	// MaxBindValues is the engine's bound-parameter limit per statement.
	// Zero means no documented limit.
	MaxBindValues int
}

// TransactionOptions is fixed at transaction creation and read-only
// thereafter.
type TransactionOptions struct {
	// UsePhantomQuery tells the calling runtime to synthesize a phantom
	// BEGIN/COMMIT instead of sending real ones, because the adapter manages
	// transaction boundaries itself.
	UsePhantomQuery bool
}

// IsolationLevel is a transaction consistency strength requested from the
// engine. Values use the SQL spelling ("REPEATABLE READ").
type IsolationLevel string

const (
	ReadUncommitted IsolationLevel = "READ UNCOMMITTED"
	ReadCommitted   IsolationLevel = "READ COMMITTED"
	RepeatableRead  IsolationLevel = "REPEATABLE READ"
	Serializable    IsolationLevel = "SERIALIZABLE"
	Snapshot        IsolationLevel = "SNAPSHOT"
)

// NormalizeIsolationLevel parses a caller-supplied isolation level. Matching
// is case-insensitive and tolerates underscores ("repeatable_read").
func NormalizeIsolationLevel(raw string) (IsolationLevel, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(raw, "_", " ")))
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	switch IsolationLevel(cleaned) {
	case ReadUncommitted, ReadCommitted, RepeatableRead, Serializable, Snapshot:
		return IsolationLevel(cleaned), true
	}
	return "", false
}

// Validate checks the Query argument invariant.
func (q *Query) Validate() error {
	if q.ArgTypes != nil && len(q.ArgTypes) != len(q.Args) {
		return fmt.Errorf("query has %d arguments but %d argument types", len(q.Args), len(q.ArgTypes))
	}
	return nil
}
