// Package assistant composes the database manager, language model service,
// schema analyzer, query generator and optimizer behind one facade.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/skumarhv16/ai-powered-mysql-assistant/ai"
	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
	"github.com/skumarhv16/ai-powered-mysql-assistant/db"
	"github.com/skumarhv16/ai-powered-mysql-assistant/generator"
	"github.com/skumarhv16/ai-powered-mysql-assistant/optimizer"
	"github.com/skumarhv16/ai-powered-mysql-assistant/schema"
)

// readOnlyPrefixes are the only statement forms allowed through direct
// execution. Anything else is denied, not just the known mutating keywords.
var readOnlyPrefixes = []string{"SELECT", "SHOW", "DESCRIBE", "EXPLAIN"}

// AskResponse is the combined answer to a natural-language question.
type AskResponse struct {
	Question    string                 `json:"question"`
	Generation  *core.GenerationResult `json:"generation"`
	Result      *core.QueryResult      `json:"result,omitempty"`
	Explanation string                 `json:"explanation,omitempty"`
}

// Assistant is the top-level entry point. Safe for concurrent use.
type Assistant struct {
	cfg       *core.Config
	database  *db.Manager
	llm       *ai.Service
	schema    *schema.Analyzer
	generator *generator.Generator
	optimizer *optimizer.Optimizer
	logger    core.Logger
}

// New wires up all components from configuration.
func New(cfg *core.Config, logger core.Logger) (*Assistant, error) {
	if cfg == nil {
		return nil, core.ErrConfiguration
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	database, err := db.NewManager(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	llm, err := ai.NewService(cfg.LLM, logger)
	if err != nil {
		database.Close()
		return nil, err
	}

	analyzer := schema.NewAnalyzer(database, cfg.Database.Database, logger)

	return &Assistant{
		cfg:       cfg,
		database:  database,
		llm:       llm,
		schema:    analyzer,
		generator: generator.New(llm, database, logger),
		optimizer: optimizer.New(database, llm, cfg.Advisor, logger),
		logger:    logger,
	}, nil
}

// Ask answers a natural-language question end to end: generate a statement,
// execute it if valid, and explain the results. Generation failures still
// produce a response carrying the best-effort candidate.
func (a *Assistant) Ask(ctx context.Context, question string) *AskResponse {
	response := &AskResponse{Question: question}

	response.Generation = a.GenerateQuery(ctx, question)
	if !response.Generation.Valid {
		return response
	}

	result, err := a.ExecuteQuery(ctx, response.Generation.SQL)
	if err != nil {
		a.logger.Error("execution failed after validation", "error", err)
		return response
	}
	response.Result = result
	response.Explanation = a.llm.ExplainResults(ctx, question, response.Generation.SQL, result)
	return response
}

// GenerateQuery turns a description into a validated SQL statement. A schema
// load failure degrades to generation without schema context.
func (a *Assistant) GenerateQuery(ctx context.Context, description string) *core.GenerationResult {
	snapshot, err := a.schema.SchemaContext(ctx)
	if err != nil {
		a.logger.Warn("schema unavailable, generating without context", "error", err)
		snapshot = &core.SchemaContext{Database: a.cfg.Database.Database}
	}
	return a.generator.GenerateAndValidate(ctx, description, snapshot)
}

// ExecuteQuery runs a statement after the read-only policy gate.
func (a *Assistant) ExecuteQuery(ctx context.Context, sql string) (*core.QueryResult, error) {
	if !isReadOnly(sql) {
		return nil, core.ErrPolicyViolation
	}
	return a.database.ExecuteQuery(ctx, sql)
}

// AnalyzeQuery detects issues and scores a statement.
func (a *Assistant) AnalyzeQuery(ctx context.Context, sql string) *core.AnalysisResult {
	return a.optimizer.Analyze(ctx, sql)
}

// OptimizeQuery produces the full optimization report for a statement.
func (a *Assistant) OptimizeQuery(ctx context.Context, sql string) *core.OptimizationReport {
	return a.optimizer.Optimize(ctx, sql)
}

// ExplainQuery describes a statement in plain language.
func (a *Assistant) ExplainQuery(ctx context.Context, sql string) string {
	return a.llm.ExplainQuery(ctx, sql)
}

// SuggestIndexes proposes indexes for a statement from its text alone.
func (a *Assistant) SuggestIndexes(sql string) []*core.IndexSuggestion {
	return optimizer.SuggestIndexes(sql)
}

// ReloadSchema refreshes the cached schema snapshot.
func (a *Assistant) ReloadSchema(ctx context.Context) error {
	_, err := a.schema.Reload(ctx)
	return err
}

// GenerateDocumentation writes a markdown overview of every table: columns,
// size statistics and a model-written description.
func (a *Assistant) GenerateDocumentation(ctx context.Context) (string, error) {
	snapshot, err := a.schema.SchemaContext(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Database Documentation: %s\n\n", snapshot.Database)

	for _, table := range snapshot.Tables {
		fmt.Fprintf(&b, "## %s\n\n", table.Name)
		fmt.Fprintf(&b, "%s\n\n", a.llm.DescribeTable(ctx, table))

		if stats, err := a.database.TableStatistics(ctx, table.Name); err == nil {
			fmt.Fprintf(&b, "Rows: %d, Size: %.2f MB\n\n", stats.RowCount, stats.SizeMB)
		}

		b.WriteString("| Column | Type | Nullable | Key |\n")
		b.WriteString("|--------|------|----------|-----|\n")
		for _, col := range table.Columns {
			nullable := "NO"
			if col.Nullable {
				nullable = "YES"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", col.Name, col.Type, nullable, col.Key)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// HealthCheck reports the health of each component.
func (a *Assistant) HealthCheck(ctx context.Context) map[string]*core.HealthStatus {
	return map[string]*core.HealthStatus{
		"database": a.database.HealthCheck(ctx),
		"llm":      a.llm.HealthCheck(),
		"schema": {
			Status:    schemaStatus(a.schema.IsLoaded()),
			Connected: a.schema.IsLoaded(),
		},
	}
}

// Close releases held resources.
func (a *Assistant) Close() error {
	return a.database.Close()
}

func schemaStatus(loaded bool) string {
	if loaded {
		return "loaded"
	}
	return "not_loaded"
}

func isReadOnly(sql string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(sql))
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}
