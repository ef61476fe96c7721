package core

import (
	"fmt"
	"strings"
	"time"
)

// Statement is an immutable SQL statement. Normalized holds the uppercase,
// whitespace-trimmed form used for keyword matching; rewrites produce a new
// Statement rather than mutating this one.
type Statement struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// NewStatement builds a Statement from raw SQL text.
func NewStatement(raw string) Statement {
	return Statement{
		Raw:        raw,
		Normalized: strings.ToUpper(strings.TrimSpace(raw)),
	}
}

// AccessType is the access method reported in the `type` column of a MySQL
// EXPLAIN row.
type AccessType string

const (
	AccessTypeAll    AccessType = "ALL"
	AccessTypeIndex  AccessType = "index"
	AccessTypeRange  AccessType = "range"
	AccessTypeRef    AccessType = "ref"
	AccessTypeEqRef  AccessType = "eq_ref"
	AccessTypeConst  AccessType = "const"
	AccessTypeSystem AccessType = "system"
)

// IsFullScan reports whether the step reads the whole table.
func (t AccessType) IsFullScan() bool {
	return t == AccessTypeAll
}

// ExecutionPlanStep is one row of EXPLAIN output. A statement's plan is an
// ordered sequence of steps, one per table or join operand scanned.
type ExecutionPlanStep struct {
	ID           int        `json:"id"`
	SelectType   string     `json:"select_type,omitempty"`
	Table        string     `json:"table,omitempty"`
	Partitions   string     `json:"partitions,omitempty"`
	AccessType   AccessType `json:"access_type,omitempty"`
	PossibleKeys string     `json:"possible_keys,omitempty"`
	Key          string     `json:"key,omitempty"`
	KeyLen       string     `json:"key_len,omitempty"`
	Ref          string     `json:"ref,omitempty"`
	Rows         int64      `json:"rows"`
	Filtered     float64    `json:"filtered,omitempty"`
	Extra        string     `json:"extra,omitempty"`
}

// IssueKind enumerates the performance issue categories the detector emits.
type IssueKind string

const (
	IssueSelectAll      IssueKind = "select_all"
	IssueNoWhere        IssueKind = "no_where"
	IssueTableScan      IssueKind = "table_scan"
	IssueFilesort       IssueKind = "filesort"
	IssueTemporaryTable IssueKind = "temporary_table"
)

// Severity of a detected issue. Severity is fixed by kind, never assigned
// ad hoc.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Penalty returns the score deduction for one issue of this severity.
func (s Severity) Penalty() int {
	switch s {
	case SeverityHigh:
		return 30
	case SeverityMedium:
		return 15
	default:
		return 5
	}
}

// SeverityOf returns the fixed severity for an issue kind.
func SeverityOf(kind IssueKind) Severity {
	switch kind {
	case IssueNoWhere, IssueTableScan:
		return SeverityHigh
	case IssueSelectAll, IssueFilesort, IssueTemporaryTable:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Issue is one detected performance problem. Immutable value; a statement may
// carry several issues of the same kind, e.g. one table_scan per offending
// plan step.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
	Table      string    `json:"table,omitempty"`
	Column     string    `json:"column,omitempty"`
}

// IndexSuggestion is a proposed index over one table. Columns are in
// discovery order and never contain duplicates within one suggestion.
type IndexSuggestion struct {
	Table     string   `json:"table"`
	Columns   []string `json:"columns"`
	Statement string   `json:"statement"`
}

// AnalysisResult is the output of a quick, side-effect-free analysis of a
// single statement.
type AnalysisResult struct {
	Query  string               `json:"query"`
	Issues []*Issue             `json:"issues"`
	Plan   []*ExecutionPlanStep `json:"execution_plan"`
	Score  int                  `json:"score"`
}

// OptimizationReport aggregates everything Optimize produces for one
// statement. Built fresh per call, never cached.
type OptimizationReport struct {
	RequestID        string               `json:"request_id"`
	OriginalQuery    string               `json:"original_query"`
	OptimizedQuery   string               `json:"optimized_query"`
	Issues           []*Issue             `json:"issues_found"`
	IndexSuggestions []*IndexSuggestion   `json:"index_suggestions"`
	Advice           string               `json:"ai_recommendations"`
	Plan             []*ExecutionPlanStep `json:"execution_plan"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// GenerationResult is the outcome of one generate-validate-repair pass.
// SQL always carries a best-effort candidate; callers needing hard failure
// semantics inspect Valid and ValidationError.
type GenerationResult struct {
	SQL             string `json:"sql"`
	Valid           bool   `json:"valid"`
	Attempts        int    `json:"attempts"`
	ValidationError string `json:"validation_error,omitempty"`
	PolicyViolation bool   `json:"policy_violation,omitempty"`
}

// QueryResult holds rows returned by executing a statement.
type QueryResult struct {
	Columns       []string         `json:"columns"`
	Rows          []map[string]any `json:"rows"`
	RowCount      int              `json:"row_count"`
	ExecutionTime time.Duration    `json:"execution_time"`
}

// ColumnInfo describes one column of a table as reported by DESCRIBE.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Key      string `json:"key,omitempty"`
	Default  string `json:"default,omitempty"`
}

// TableSchema describes one table.
type TableSchema struct {
	Name    string        `json:"name"`
	Columns []*ColumnInfo `json:"columns"`
}

// SchemaContext is the snapshot of database structure handed to the
// generation collaborator as prompt context.
type SchemaContext struct {
	Database string         `json:"database"`
	Tables   []*TableSchema `json:"tables"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// Format renders the schema in the plain-text layout used inside prompts.
func (s *SchemaContext) Format() string {
	if s == nil || len(s.Tables) == 0 {
		return "(no tables)"
	}

	var b strings.Builder
	for _, table := range s.Tables {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cols = append(cols, fmt.Sprintf("%s (%s)", col.Name, col.Type))
		}
		fmt.Fprintf(&b, "Table: %s\nColumns: %s\n\n", table.Name, strings.Join(cols, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// TableStatistics holds size information for one table.
type TableStatistics struct {
	Table    string  `json:"table"`
	RowCount int64   `json:"row_count"`
	SizeMB   float64 `json:"size_mb"`
}

// HealthStatus is one component's health report.
type HealthStatus struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
	Detail    string `json:"detail,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	LLM      *LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Log      *LogConfig      `yaml:"log" mapstructure:"log"`
	Advisor  *AdvisorConfig  `yaml:"advisor" mapstructure:"advisor"`
}

// DatabaseConfig defines the MySQL connection parameters.
type DatabaseConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	Username        string        `yaml:"username" mapstructure:"username"`
	Password        string        `yaml:"password" mapstructure:"password"`
	Database        string        `yaml:"database" mapstructure:"database"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout" mapstructure:"query_timeout"`
	MaxRows         int           `yaml:"max_rows" mapstructure:"max_rows"`
}

// LLMConfig defines the text-generation collaborator parameters. Provider
// "mock" selects the deterministic stub implementation.
type LLMConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"`
	Model       string        `yaml:"model" mapstructure:"model"`
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	Output     string `yaml:"output" mapstructure:"output"`
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
}

// AdvisorConfig tunes the rewrite templates.
type AdvisorConfig struct {
	// RewriteColumns replaces SELECT * when no narrower inference is
	// available. A known approximation, not semantic equivalence.
	RewriteColumns string `yaml:"rewrite_columns" mapstructure:"rewrite_columns"`
	// DefaultLimit bounds statements that have no WHERE clause.
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}
