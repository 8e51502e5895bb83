package adapter

import "context"

// Queryable executes parameterized reads and writes over a single native
// connection. Implemented by both Adapter and Transaction.
//
// Only one operation may be in flight on a given connection at a time;
// overlapping calls are a caller-contract violation and are not serialized
// internally.
type Queryable interface {
	// QueryRaw executes a read and returns the mapped result set.
	QueryRaw(ctx context.Context, query Query) (*ResultSet, error)

	// ExecuteRaw executes a write and returns the affected-row count.
	ExecuteRaw(ctx context.Context, query Query) (int64, error)
}

// Adapter owns one native connection for its entire lifetime and tracks
// transaction nesting depth. It is not a connection pool and performs no
// internal multiplexing.
//
// While a Transaction obtained from StartTransaction is active, the
// connection is reserved for that transaction; issuing Adapter-level queries
// concurrently with it is forbidden.
type Adapter interface {
	Queryable

	// ExecuteScript runs a block of raw SQL. Engines without native
	// multi-statement execution run it statement by statement.
	ExecuteScript(ctx context.Context, script string) error

	// StartTransaction validates level (empty means engine default),
	// increments the transaction depth and issues BEGIN (depth 1) or
	// SAVEPOINT sp_<depth> (nested). A level outside the engine allow-list
	// fails with InvalidIsolationLevel before any SQL is sent.
	StartTransaction(ctx context.Context, level IsolationLevel) (Transaction, error)

	// ConnectionInfo returns the static capability descriptor.
	ConnectionInfo() ConnectionInfo

	// Dispose releases the native connection. Any operation issued after
	// Dispose completes fails with ErrAdapterClosed.
	Dispose() error
}

// Transaction is a Queryable bound to the same native connection as its
// owning Adapter, plus the commit/rollback lifecycle hooks.
//
// Commit and Rollback are local bookkeeping only: they release the adapter's
// transaction-depth slot and never emit COMMIT, ROLLBACK or RELEASE
// SAVEPOINT SQL. The calling runtime sends that SQL itself through
// ExecuteRaw, exactly once, before invoking the hook. Each transaction must
// receive exactly one terminal call; the second returns ErrTxDone.
type Transaction interface {
	Queryable

	Options() TransactionOptions
	Commit() error
	Rollback() error
}

// Factory constructs Adapters for the primary database and, separately, for
// the shadow database used for migration comparison.
type Factory interface {
	// Provider returns the engine family tag.
	Provider() Provider

	// Name returns the static adapter identity string.
	Name() string

	// Connect opens an Adapter bound to the primary connection target.
	Connect(ctx context.Context) (Adapter, error)

	// ConnectToShadow opens an Adapter bound to the configured shadow
	// target, falling back to the primary target when none is configured.
	// Used exclusively by migration tooling, never by query traffic.
	ConnectToShadow(ctx context.Context) (Adapter, error)
}
