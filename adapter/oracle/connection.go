// Package oracle implements the adapter.Driver contract for Oracle using
// sijms/go-ora. Oracle starts transactions implicitly, so startTransaction
// sends SQL only when an isolation level is requested; booleans are emulated
// as 0/1 integers and scripts run statement by statement.
package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/ormkit/adapters/adapter"
	"github.com/ormkit/adapters/config"
	"github.com/ormkit/adapters/logger"
)

const defaultConnectTimeout = 10 * time.Second

func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.ConnectionString != "" {
		return cfg.ConnectionString
	}

	if cfg.ServiceName != "" {
		return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.ServiceName, cfg.Username, cfg.Password, nil)
	}
	if cfg.SID != "" {
		urlOpts := map[string]string{"SID": cfg.SID}
		return go_ora.BuildUrl(cfg.Host, cfg.Port, "", cfg.Username, cfg.Password, urlOpts)
	}
	return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, nil)
}

// open establishes one Oracle connection and wraps it in an Adapter.
func open(ctx context.Context, dsn string, cfg *config.DatabaseConfig, log logger.Logger) (adapter.Adapter, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Oracle connection: %w", err)
	}

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
			log.Error().Err(closeErr).Msg("Failed to close Oracle handle after connect failure")
		}
		return nil, fmt.Errorf("failed to connect to Oracle: %w", err)
	}

	if err := sqlConn.PingContext(dialCtx); err != nil {
		_ = sqlConn.Close()
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close Oracle handle after ping failure")
		}
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	ev := log.Info().Str("host", cfg.Host).Int("port", cfg.Port)
	if cfg.ServiceName != "" {
		ev = ev.Str("service_name", cfg.ServiceName)
	} else if cfg.SID != "" {
		ev = ev.Str("sid", cfg.SID)
	} else {
		ev = ev.Str("database", cfg.Database)
	}
	ev.Msg("Connected to Oracle database")

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
	return adapter.Oracle
}

func (d *driver) Capabilities() adapter.Capabilities {
	return adapter.Capabilities{
		EmulatesBoolean:        true,
		SupportsMultiStatement: false,
		IsolationLevels: []adapter.IsolationLevel{
			adapter.ReadCommitted,
			adapter.Serializable,
		},
	}
}

func (d *driver) ConnectionInfo() adapter.ConnectionInfo {
	return adapter.ConnectionInfo{
		SupportsRelationJoins: true,
	}
}

// BeginStatement returns SQL only when an isolation level was requested:
// Oracle opens transactions implicitly with the first statement and has no
// explicit BEGIN.
func (d *driver) BeginStatement(level adapter.IsolationLevel) string {
	if level == "" {
		return ""
	}
	return "SET TRANSACTION ISOLATION LEVEL " + string(level)
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

// columnTypeFor maps go-ora-reported type names onto the ColumnType
// enumeration. Oracle reports NUMBER without precision detail, so numeric
// columns stay Numeric rather than guessing an integer width.
func columnTypeFor(typeName string) (adapter.ColumnType, bool) {
	name := strings.ToUpper(strings.TrimSpace(typeName))
	if name == "" {
		return 0, false
	}

	switch {
	case name == "NUMBER", strings.Contains(name, "DEC"):
		return adapter.ColNumeric, true
	case strings.Contains(name, "FLOAT"), strings.Contains(name, "DOUBLE"):
		return adapter.ColDouble, true
	case strings.Contains(name, "TIMESTAMP"):
		return adapter.ColDateTime, true
	case name == "DATE":
		return adapter.ColDateTime, true
	case strings.Contains(name, "JSON"):
		return adapter.ColJson, true
	case strings.Contains(name, "CHAR"), strings.Contains(name, "CLOB"), name == "LONG":
		return adapter.ColText, true
	case strings.Contains(name, "RAW"), strings.Contains(name, "BLOB"):
		return adapter.ColBytes, true
	default:
		return 0, false
	}
}
