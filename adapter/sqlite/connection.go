// Package sqlite implements the adapter.Driver contract for SQLite using the
// pure-Go modernc.org/sqlite driver. SQLite is the embedded engine of the
// kit: booleans are emulated as 0/1 integers, scripts run statement by
// statement and SERIALIZABLE is the only accepted isolation level.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

const defaultConnectTimeout = 10 * time.Second

func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}
	return cfg.Database
}

// open opens one SQLite connection and wraps it in an Adapter.
func open(ctx context.Context, dsn string, cfg *config.DatabaseConfig, log logger.Logger) (adapter.Adapter, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// One connection, pinned. This also keeps :memory: databases stable:
	// every handle from this adapter sees the same in-memory database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sqlConn, err := db.Conn(dialCtx)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close SQLite handle after connect failure")
		}
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	if err := sqlConn.PingContext(dialCtx); err != nil {
		_ = sqlConn.Close()
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close SQLite handle after ping failure")
		}
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Info().Str("database", dsn).Msg("Connected to SQLite database")

	return adapter.NewAdapter(newDriver(db, sqlConn), log), nil
}

// driver implements adapter.Driver over one pinned *sql.Conn.
type driver struct {
	db   *sql.DB
	conn *sql.Conn
}

func newDriver(db *sql.DB, conn *sql.Conn) *driver {
	return &driver{db: db, conn: conn}
}

func (d *driver) Provider() adapter.Provider {
	return adapter.SQLite
}

func (d *driver) Capabilities() adapter.Capabilities {
	return adapter.Capabilities{
		EmulatesBoolean:        true,
		SupportsMultiStatement: false,
		IsolationLevels: []adapter.IsolationLevel{
			adapter.Serializable,
		},
	}
}

func (d *driver) ConnectionInfo() adapter.ConnectionInfo {
	return adapter.ConnectionInfo{
		SupportsRelationJoins: true,
		MaxBindValues:         32766,
	}
}

func (d *driver) BeginStatement(level adapter.IsolationLevel) string {
	// SQLite transactions are always serializable; no isolation clause.
	return "BEGIN"
}

func (d *driver) Query(ctx context.Context, query string, args []any) (*adapter.NativeResult, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]adapter.NativeColumn, len(columnTypes))
	for i, ct := range columnTypes {
		colType, known := columnTypeFor(ct.DatabaseTypeName())
		columns[i] = adapter.NativeColumn{Name: ct.Name(), Type: colType, TypeKnown: known}
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &adapter.NativeResult{Columns: columns, Rows: out}, nil
}

func (d *driver) Exec(ctx context.Context, query string, args []any) (int64, error) {
	result, err := d.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

func (d *driver) Close() error {
	connErr := d.conn.Close()
	if err := d.db.Close(); err != nil {
		return err
	}
	return connErr
}

// columnTypeFor maps a declared SQLite column type onto the ColumnType
// enumeration following SQLite's affinity rules. Expression columns report
// no declared type and fall back to inference.
func columnTypeFor(declared string) (adapter.ColumnType, bool) {
	name := strings.ToUpper(declared)
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}

	switch {
	case strings.Contains(name, "INT"):
		return adapter.ColInt64, true
	case strings.Contains(name, "BOOL"):
		return adapter.ColBoolean, true
	case strings.Contains(name, "DATETIME") || strings.Contains(name, "TIMESTAMP"):
		return adapter.ColDateTime, true
	case strings.Contains(name, "DATE"):
		return adapter.ColDate, true
	case strings.Contains(name, "TIME"):
		return adapter.ColTime, true
	case strings.Contains(name, "JSON"):
		return adapter.ColJson, true
	case strings.Contains(name, "CHAR"), strings.Contains(name, "CLOB"), strings.Contains(name, "TEXT"):
		return adapter.ColText, true
	case strings.Contains(name, "BLOB"):
		return adapter.ColBytes, true
	case strings.Contains(name, "REAL"), strings.Contains(name, "FLOA"), strings.Contains(name, "DOUB"):
		return adapter.ColDouble, true
	case strings.Contains(name, "DEC"), strings.Contains(name, "NUM"):
		return adapter.ColNumeric, true
	default:
		return 0, false
	}
}
