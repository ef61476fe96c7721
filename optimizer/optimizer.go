// Package optimizer implements the SQL advisory engine: issue detection over
// statement text and execution-plan metadata, health scoring, lexical index
// suggestion, and issue-driven query rewriting.
package optimizer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// AdviceProvider supplies narrative optimization advice. Content is opaque to
// the engine and never validated; implementations degrade to a sentinel
// string instead of failing.
type AdviceProvider interface {
	OptimizationAdvice(ctx context.Context, sql string, plan []*core.ExecutionPlanStep, issues []*core.Issue) string
}

// Optimizer composes the detector, scorer, index advisor and rewriter into
// the analyze and optimize entry points. Stateless; safe for concurrent use
// when its collaborators are.
type Optimizer struct {
	explainer core.PlanExplainer
	advice    AdviceProvider
	rewriter  *Rewriter
	logger    core.Logger
}

// New creates an optimizer. advice may be nil, in which case reports carry no
// narrative advice.
func New(explainer core.PlanExplainer, advice AdviceProvider, cfg *core.AdvisorConfig, logger core.Logger) *Optimizer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Optimizer{
		explainer: explainer,
		advice:    advice,
		rewriter:  NewRewriter(cfg),
		logger:    logger,
	}
}

// Analyze fetches the execution plan, detects issues and scores the
// statement. Side-effect free beyond the read-only plan fetch; a failed fetch
// degrades to an empty plan rather than an error.
func (o *Optimizer) Analyze(ctx context.Context, sql string) *core.AnalysisResult {
	plan := o.fetchPlan(ctx, sql)
	issues := Detect(core.NewStatement(sql), plan)

	return &core.AnalysisResult{
		Query:  sql,
		Issues: issues,
		Plan:   plan,
		Score:  Score(issues),
	}
}

// Optimize produces the full report: detected issues, a rewritten statement,
// index suggestions and narrative advice. Never returns an error; every
// failure mode resolves to a well-defined fallback so downstream layers
// always receive a structurally valid report.
func (o *Optimizer) Optimize(ctx context.Context, sql string) *core.OptimizationReport {
	o.logger.Info("optimizing query", "query", truncate(sql, 100))

	plan := o.fetchPlan(ctx, sql)
	issues := Detect(core.NewStatement(sql), plan)
	rewritten := o.rewriter.Rewrite(sql, issues)
	suggestions := SuggestIndexes(sql)

	advice := ""
	if o.advice != nil {
		advice = o.advice.OptimizationAdvice(ctx, sql, plan, issues)
	}

	return &core.OptimizationReport{
		RequestID:        uuid.NewString(),
		OriginalQuery:    sql,
		OptimizedQuery:   rewritten.Raw,
		Issues:           issues,
		IndexSuggestions: suggestions,
		Advice:           advice,
		Plan:             plan,
		GeneratedAt:      time.Now(),
	}
}

// fetchPlan treats an explain failure as an empty plan: the text rules still
// run and the plan rules contribute nothing.
func (o *Optimizer) fetchPlan(ctx context.Context, sql string) []*core.ExecutionPlanStep {
	plan, err := o.explainer.ExplainQuery(ctx, sql)
	if err != nil {
		o.logger.Warn("explain failed, continuing with empty plan", "error", err)
		return nil
	}
	return plan
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
