package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ormkit/adapters/adapter/internal/sqlsplit"
	"github.com/ormkit/adapters/logger"
)

// slowQueryThreshold escalates per-operation logging from Debug to Warn.
const slowQueryThreshold = 200 * time.Millisecond

// conn is the shared adapter implementation layered over an engine Driver.
// It owns the transaction-depth counter; Transactions receive only a
// one-shot release callback, never direct access to it.
type conn struct {
	drv  Driver
	log  logger.Logger
	caps Capabilities

	mu     sync.Mutex
	depth  int
	closed bool
}

// NewAdapter wraps an engine driver in an Adapter. Engine packages call this
// from their factories after establishing the native connection.
func NewAdapter(drv Driver, log logger.Logger) Adapter {
	return &conn{
		drv:  drv,
		log:  log.WithFields(map[string]any{"provider": string(drv.Provider())}),
		caps: drv.Capabilities(),
	}
}

// QueryRaw executes a read: arguments are mapped to native values, the
// native result is shaped into a ResultSet with mapped rows, and any native
// failure is converted through the engine's error mapper.
func (c *conn) QueryRaw(ctx context.Context, query Query) (*ResultSet, error) {
	if err := c.live(); err != nil {
		return nil, err
	}

	args, err := MapArguments(query, c.caps)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	native, err := c.drv.Query(ctx, query.SQL, args)
	if err != nil {
		return nil, c.wrap(err)
	}

	rs := c.shapeResult(native)
	c.track("QUERY", query.SQL, start, int64(len(rs.Rows)))
	return rs, nil
}

// ExecuteRaw executes a write and returns the native affected-row count,
// zero when the driver reports none.
func (c *conn) ExecuteRaw(ctx context.Context, query Query) (int64, error) {
	if err := c.live(); err != nil {
		return 0, err
	}

	args, err := MapArguments(query, c.caps)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	affected, err := c.drv.Exec(ctx, query.SQL, args)
	if err != nil {
		return 0, c.wrap(err)
	}

	c.track("EXEC", query.SQL, start, affected)
	return affected, nil
}

// ExecuteScript runs a block of raw SQL text. Engines with native
// multi-statement execution get the script verbatim; the rest run it
// statement by statement, stopping at the first failure.
func (c *conn) ExecuteScript(ctx context.Context, script string) error {
	if err := c.live(); err != nil {
		return err
	}

	if c.caps.SupportsMultiStatement {
		if _, err := c.drv.Exec(ctx, script, nil); err != nil {
			return c.wrap(err)
		}
		return nil
	}

	for _, stmt := range sqlsplit.Statements(script) {
		if _, err := c.drv.Exec(ctx, stmt, nil); err != nil {
			return c.wrap(err)
		}
	}
	return nil
}

// StartTransaction validates the isolation level, bumps the transaction
// depth and issues BEGIN (depth 1) or SAVEPOINT sp_<depth> (nested). A
// failed BEGIN/SAVEPOINT rolls the depth back before the mapped error is
// surfaced, so depth never leaks past a failure.
func (c *conn) StartTransaction(ctx context.Context, level IsolationLevel) (Transaction, error) {
	if err := c.live(); err != nil {
		return nil, err
	}

	if level != "" {
		normalized, ok := NormalizeIsolationLevel(string(level))
		if ok {
			ok = false
			for _, allowed := range c.caps.IsolationLevels {
				if allowed == normalized {
					ok = true
					break
				}
			}
		}
		if !ok {
			return nil, NewError(&InvalidIsolationLevel{Level: string(level)}, nil)
		}
		level = normalized
	}

	c.mu.Lock()
	c.depth++
	depth := c.depth
	c.mu.Unlock()

	var stmt string
	if depth == 1 {
		stmt = c.drv.BeginStatement(level)
	} else {
		stmt = fmt.Sprintf("SAVEPOINT sp_%d", depth)
	}

	if stmt != "" {
		if _, err := c.drv.Exec(ctx, stmt, nil); err != nil {
			c.mu.Lock()
			c.depth--
			c.mu.Unlock()
			return nil, c.wrap(err)
		}
	}

	c.log.Debug().Int("depth", depth).Str("isolation", string(level)).Msg("Transaction started")

	return &transaction{
		conn: c,
		opts: TransactionOptions{UsePhantomQuery: false},
		release: func() {
			c.mu.Lock()
			c.depth--
			c.mu.Unlock()
		},
	}, nil
}

// ConnectionInfo returns the engine's static capability descriptor.
func (c *conn) ConnectionInfo() ConnectionInfo {
	return c.drv.ConnectionInfo()
}

// Dispose releases the native connection. The first call closes the driver;
// every later call, like any other operation on a disposed adapter, fails
// with ErrAdapterClosed without touching the released connection.
func (c *conn) Dispose() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrAdapterClosed
	}
	c.closed = true
	c.mu.Unlock()

	c.log.Info().Msg("Disposing adapter connection")
	return c.drv.Close()
}

func (c *conn) live() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrAdapterClosed
	}
	return nil
}

// wrap funnels a native failure through the engine error mapper. Native
// error types never cross the adapter boundary bare.
func (c *conn) wrap(err error) error {
	return NewError(c.drv.MapError(err), err)
}

// shapeResult applies column-type inference where the driver supplied no
// metadata, then row mapping to every value.
func (c *conn) shapeResult(native *NativeResult) *ResultSet {
	names := make([]string, len(native.Columns))
	types := make([]ColumnType, len(native.Columns))

	for i, col := range native.Columns {
		names[i] = col.Name
		if col.TypeKnown {
			types[i] = col.Type
			continue
		}
		column := make([]any, len(native.Rows))
		for r, row := range native.Rows {
			column[r] = row[i]
		}
		types[i] = InferColumn(column)
	}

	rows := make([][]any, len(native.Rows))
	for r, row := range native.Rows {
		mapped := make([]any, len(row))
		for i, v := range row {
			mapped[i] = MapRowValue(v, types[i])
		}
		rows[r] = mapped
	}

	return &ResultSet{
		ColumnNames:  names,
		ColumnTypes:  types,
		Rows:         rows,
		LastInsertID: native.LastInsertID,
	}
}

func (c *conn) track(op, sql string, start time.Time, rows int64) {
	elapsed := time.Since(start)

	ev := c.log.Debug()
	if elapsed >= slowQueryThreshold {
		ev = c.log.Warn()
	}
	ev.Str("op", op).Str("sql", sql).Dur("elapsed", elapsed).Int64("rows", rows).Msg("Statement executed")
}

// transaction is a Queryable bound to the same native connection as its
// owning adapter. Commit and Rollback are local bookkeeping only: they
// release the depth slot through the one-shot callback and never emit
// COMMIT/ROLLBACK/RELEASE SAVEPOINT SQL. The calling runtime sends that SQL
// itself through ExecuteRaw before invoking the hook.
type transaction struct {
	conn    *conn
	opts    TransactionOptions
	release func()

	mu   sync.Mutex
	done bool
}

func (t *transaction) QueryRaw(ctx context.Context, query Query) (*ResultSet, error) {
	if err := t.live(); err != nil {
		return nil, err
	}
	return t.conn.QueryRaw(ctx, query)
}

func (t *transaction) ExecuteRaw(ctx context.Context, query Query) (int64, error) {
	if err := t.live(); err != nil {
		return 0, err
	}
	return t.conn.ExecuteRaw(ctx, query)
}

func (t *transaction) Options() TransactionOptions {
	return t.opts
}

// Commit releases the transaction-depth slot. It issues no SQL.
func (t *transaction) Commit() error {
	return t.finish()
}

// Rollback releases the transaction-depth slot. It issues no SQL.
func (t *transaction) Rollback() error {
	return t.finish()
}

func (t *transaction) finish() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.release()
	return nil
}

func (t *transaction) live() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	return nil
}
