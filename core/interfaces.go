package core

import (
	"context"
)

// PlanExplainer is the execution collaborator's plan-producing capability.
// An error means the statement could not be explained; callers decide whether
// that is fatal (the repair loop) or degrades to an empty plan (the advisory
// orchestrator).
type PlanExplainer interface {
	ExplainQuery(ctx context.Context, sql string) ([]*ExecutionPlanStep, error)
}

// SQLRunner executes a statement and returns its rows.
type SQLRunner interface {
	ExecuteQuery(ctx context.Context, sql string) (*QueryResult, error)
}

// TextGenerator is the opaque text-completion capability behind SQL
// generation and narrative advice. Implementations must be safe for
// concurrent use.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SchemaProvider supplies the schema snapshot used as prompt context.
type SchemaProvider interface {
	SchemaContext(ctx context.Context) (*SchemaContext, error)
}

// Logger is the logging interface shared by all components.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// NopLogger discards everything. Useful as a test default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
