// Package postgres implements the adapter.Driver contract for PostgreSQL
// using pgx v5 through database/sql. Each adapter pins one dedicated
// connection for its whole lifetime.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

const defaultConnectTimeout = 10 * time.Second

// quoteDSN quotes a DSN value according to libpq rules:
// - Returns double single quotes for empty strings (empty value)
// - Escapes backslashes and single quotes
// - Wraps in single quotes when value contains non-alphanumeric/._- characters
func quoteDSN(value string) string {
	if value == "" {
		return "''"
	}

	needsQuoting := false
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') && r != '.' && r != '_' && r != '-' {
			needsQuoting = true
			break
		}
	}

	if !needsQuoting {
		return value
	}

	escaped := strings.ReplaceAll(value, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")

	return "'" + escaped + "'"
}

func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	parts := []string{
		fmt.Sprintf("host=%s", quoteDSN(cfg.Host)),
		fmt.Sprintf("port=%d", cfg.Port),
		fmt.Sprintf("user=%s", quoteDSN(cfg.Username)),
		fmt.Sprintf("password=%s", quoteDSN(cfg.Password)),
		fmt.Sprintf("dbname=%s", quoteDSN(cfg.Database)),
	}

	if cfg.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", cfg.SSLMode))
	}

	return strings.Join(parts, " ")
}

// open establishes one PostgreSQL connection and wraps it in an Adapter.
func open(ctx context.Context, dsn string, cfg *config.DatabaseConfig, log logger.Logger) (adapter.Adapter, error) {
	pgxConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	db := stdlib.OpenDB(*pgxConfig)

	// The adapter is not a pool: exactly one connection, pinned below.
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
			log.Error().Err(closeErr).Msg("Failed to close PostgreSQL handle after connect failure")
		}
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := sqlConn.PingContext(dialCtx); err != nil {
		_ = sqlConn.Close()
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close PostgreSQL handle after ping failure")
		}
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	log.Info().
		Str("host", pgxConfig.Host).
		Str("database", pgxConfig.Database).
		Msg("Connected to PostgreSQL database")

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
	return adapter.Postgres
}

func (d *driver) Capabilities() adapter.Capabilities {
	return adapter.Capabilities{
		EmulatesBoolean: false,
		// Scripts run in one round trip through the simple protocol.
		SupportsMultiStatement: true,
		IsolationLevels: []adapter.IsolationLevel{
			adapter.ReadUncommitted,
			adapter.ReadCommitted,
			adapter.RepeatableRead,
			adapter.Serializable,
		},
	}
}

func (d *driver) ConnectionInfo() adapter.ConnectionInfo {
	return adapter.ConnectionInfo{
		SupportsRelationJoins: true,
		MaxBindValues:         65535,
	}
}

func (d *driver) BeginStatement(level adapter.IsolationLevel) string {
	if level == "" {
		return "BEGIN"
	}
	return "BEGIN ISOLATION LEVEL " + string(level)
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

// columnTypeFor maps pgx-reported type names onto the closed ColumnType
// enumeration. A leading underscore marks an array type.
func columnTypeFor(typeName string) (adapter.ColumnType, bool) {
	if elem, ok := strings.CutPrefix(typeName, "_"); ok {
		t, known := scalarColumnType(elem)
		if !known {
			return 0, false
		}
		return adapter.ArrayOf(t), true
	}
	return scalarColumnType(typeName)
}

func scalarColumnType(typeName string) (adapter.ColumnType, bool) {
	switch typeName {
	case "INT2", "INT4":
		return adapter.ColInt32, true
	case "INT8":
		return adapter.ColInt64, true
	case "FLOAT4":
		return adapter.ColFloat, true
	case "FLOAT8":
		return adapter.ColDouble, true
	case "NUMERIC", "MONEY":
		return adapter.ColNumeric, true
	case "BOOL":
		return adapter.ColBoolean, true
	case "CHAR", "BPCHAR":
		return adapter.ColCharacter, true
	case "TEXT", "VARCHAR", "NAME", "XML":
		return adapter.ColText, true
	case "DATE":
		return adapter.ColDate, true
	case "TIME", "TIMETZ":
		return adapter.ColTime, true
	case "TIMESTAMP", "TIMESTAMPTZ":
		return adapter.ColDateTime, true
	case "JSON", "JSONB":
		return adapter.ColJson, true
	case "BYTEA":
		return adapter.ColBytes, true
	case "UUID":
		return adapter.ColUuid, true
	default:
		return 0, false
	}
}
