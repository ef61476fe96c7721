// Package db implements the MySQL execution collaborator: statement
// execution, EXPLAIN plan fetch and schema introspection over a pooled
// database/sql connection.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// Manager owns the connection pool. Safe for concurrent use.
type Manager struct {
	db     *sql.DB
	cfg    *core.DatabaseConfig
	logger core.Logger
}

// NewManager opens a pooled connection from configuration.
func NewManager(cfg *core.DatabaseConfig, logger core.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, core.ErrConfiguration
	}

	dsn := mysql.Config{
		User:                 cfg.Username,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DBName:               cfg.Database,
		ParseTime:            true,
		AllowNativePasswords: true,
	}

	conn, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, core.ErrDatabaseConnection.WithCause(err)
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return NewManagerWithDB(conn, cfg, logger), nil
}

// NewManagerWithDB wraps an existing connection. Used by tests to inject a
// mocked database.
func NewManagerWithDB(conn *sql.DB, cfg *core.DatabaseConfig, logger core.Logger) *Manager {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Manager{db: conn, cfg: cfg, logger: logger}
}

// ExplainQuery fetches the execution plan for a statement, one step per
// EXPLAIN row. Rows are scanned by column name so the shape survives MySQL
// version differences.
func (m *Manager) ExplainQuery(ctx context.Context, query string) ([]*core.ExecutionPlanStep, error) {
	rows, err := m.db.QueryContext(ctx, "EXPLAIN "+query)
	if err != nil {
		return nil, core.ErrExplainFailed.WithCause(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, core.ErrExplainFailed.WithCause(err)
	}

	var plan []*core.ExecutionPlanStep
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, core.ErrExplainFailed.WithCause(err)
		}

		step := &core.ExecutionPlanStep{}
		for i, col := range columns {
			assignPlanField(step, col, values[i])
		}
		plan = append(plan, step)
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrExplainFailed.WithCause(err)
	}

	return plan, nil
}

func assignPlanField(step *core.ExecutionPlanStep, column string, value any) {
	text := toString(value)

	switch strings.ToLower(column) {
	case "id":
		step.ID, _ = strconv.Atoi(text)
	case "select_type":
		step.SelectType = text
	case "table":
		step.Table = text
	case "partitions":
		step.Partitions = text
	case "type":
		step.AccessType = core.AccessType(text)
	case "possible_keys":
		step.PossibleKeys = text
	case "key":
		step.Key = text
	case "key_len":
		step.KeyLen = text
	case "ref":
		step.Ref = text
	case "rows":
		step.Rows, _ = strconv.ParseInt(text, 10, 64)
	case "filtered":
		step.Filtered, _ = strconv.ParseFloat(text, 64)
	case "extra":
		step.Extra = text
	}
}

// ExecuteQuery runs a statement and collects its rows, capped at the
// configured maximum.
func (m *Manager) ExecuteQuery(ctx context.Context, query string) (*core.QueryResult, error) {
	queryCtx := ctx
	if m.cfg != nil && m.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, m.cfg.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := m.db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "query execution failed")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to read columns")
	}

	maxRows := 10000
	if m.cfg != nil && m.cfg.MaxRows > 0 {
		maxRows = m.cfg.MaxRows
	}

	data := make([]map[string]any, 0)
	for rows.Next() {
		if len(data) >= maxRows {
			m.logger.Warn("result truncated at row cap", "max_rows", maxRows)
			break
		}

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to scan row")
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = convertValue(values[i])
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to iterate rows")
	}

	result := &core.QueryResult{
		Columns:       columns,
		Rows:          data,
		RowCount:      len(data),
		ExecutionTime: time.Since(start),
	}
	m.logger.Debug("query executed", "rows", result.RowCount, "duration", result.ExecutionTime)
	return result, nil
}

// ListTables returns all table names in the configured database.
func (m *Manager) ListTables(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to list tables")
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to scan table name")
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// DescribeTable returns column metadata for one table.
func (m *Manager) DescribeTable(ctx context.Context, table string) ([]*core.ColumnInfo, error) {
	rows, err := m.db.QueryContext(ctx, "DESCRIBE "+escapeIdentifier(table))
	if err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED",
			fmt.Sprintf("failed to describe table %s", table))
	}
	defer rows.Close()

	var columns []*core.ColumnInfo
	for rows.Next() {
		var field, colType, null string
		var key, def, extra sql.NullString
		if err := rows.Scan(&field, &colType, &null, &key, &def, &extra); err != nil {
			return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED", "failed to scan column")
		}
		columns = append(columns, &core.ColumnInfo{
			Name:     field,
			Type:     colType,
			Nullable: null == "YES",
			Key:      key.String,
			Default:  def.String,
		})
	}
	return columns, rows.Err()
}

// TableStatistics returns row count and on-disk size for one table.
func (m *Manager) TableStatistics(ctx context.Context, table string) (*core.TableStatistics, error) {
	stats := &core.TableStatistics{Table: table}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", escapeIdentifier(table))
	if err := m.db.QueryRowContext(ctx, countQuery).Scan(&stats.RowCount); err != nil {
		return nil, core.WrapError(err, core.ErrorTypeDatabase, "DB_QUERY_FAILED",
			fmt.Sprintf("failed to count rows in %s", table))
	}

	sizeQuery := `SELECT ROUND(((data_length + index_length) / 1024 / 1024), 2)
		FROM information_schema.TABLES
		WHERE table_schema = DATABASE() AND table_name = ?`
	if err := m.db.QueryRowContext(ctx, sizeQuery, table).Scan(&stats.SizeMB); err != nil {
		m.logger.Warn("table size lookup failed", "table", table, "error", err)
	}

	return stats, nil
}

// HealthCheck pings the database.
func (m *Manager) HealthCheck(ctx context.Context) *core.HealthStatus {
	if err := m.db.PingContext(ctx); err != nil {
		return &core.HealthStatus{Status: "unhealthy", Connected: false, Detail: err.Error()}
	}
	return &core.HealthStatus{Status: "healthy", Connected: true}
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	return m.db.Close()
}

// toString renders a scanned value as text. EXPLAIN columns arrive as []byte
// or NULL depending on driver settings.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func convertValue(value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return value
	}
}

func escapeIdentifier(identifier string) string {
	identifier = strings.NewReplacer("`", "", "'", "", `"`, "", ";", "").Replace(identifier)
	return "`" + identifier + "`"
}
