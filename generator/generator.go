// Package generator implements the natural-language-to-SQL generation loop:
// a bounded state machine that requests a candidate statement from the
// text-generation collaborator, validates it against the live database, and
// attempts at most one automated repair before returning whatever it has.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// mutatingKeywords combined with a non-SELECT prefix mark a candidate as a
// policy violation. Substring match on the normalized text, mirroring the
// read-only policy gate.
var mutatingKeywords = []string{"DROP", "DELETE", "TRUNCATE", "UPDATE", "INSERT"}

// Generator drives the generate-validate-repair loop.
type Generator struct {
	llm       core.TextGenerator
	explainer core.PlanExplainer
	logger    core.Logger
}

// New creates a generator.
func New(llm core.TextGenerator, explainer core.PlanExplainer, logger core.Logger) *Generator {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Generator{llm: llm, explainer: explainer, logger: logger}
}

// GenerateAndValidate turns a natural-language description into a SQL
// statement. It never returns an error: on any failure the caller receives a
// best-effort candidate with Valid unset and the failure recorded on the
// result. At most two generation calls are issued per invocation — the
// initial request and one repair.
func (g *Generator) GenerateAndValidate(ctx context.Context, description string, schema *core.SchemaContext) *core.GenerationResult {
	g.logger.Info("generating query", "description", description)

	result := &core.GenerationResult{}

	candidate, err := g.complete(ctx, generationPrompt(description, schema))
	result.Attempts = 1
	if err != nil {
		g.logger.Error("generation request failed", "error", err)
		result.ValidationError = err.Error()
		return result
	}
	result.SQL = candidate

	verr := g.validate(ctx, candidate)
	if verr == nil {
		result.Valid = true
		return result
	}

	// A mutating statement is rejected terminally; repair applies only to
	// validation failures.
	if core.IsErrorType(verr, core.ErrorTypePolicy) {
		result.PolicyViolation = true
		result.ValidationError = verr.Error()
		return result
	}

	g.logger.Warn("generated invalid query, attempting repair", "error", verr)

	repaired, err := g.complete(ctx, repairPrompt(candidate, verr.Error(), schema))
	result.Attempts = 2
	if err != nil {
		g.logger.Error("repair request failed", "error", err)
		result.ValidationError = verr.Error()
		return result
	}
	result.SQL = repaired

	verr = g.validate(ctx, repaired)
	if verr == nil {
		result.Valid = true
		return result
	}

	// Exhausted: the second candidate is returned unchanged. Failure here is
	// not escalated; the caller gets a best-effort statement rather than none.
	if core.IsErrorType(verr, core.ErrorTypePolicy) {
		result.PolicyViolation = true
	}
	result.ValidationError = verr.Error()
	return result
}

// complete requests text from the collaborator and strips markdown fences
// the model tends to wrap statements in.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	text, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return "", core.ErrGenerationFailed.WithCause(err)
	}
	return cleanCandidate(text), nil
}

// validate applies the policy gate first, then a live syntax check via the
// execution collaborator. The policy gate never touches the database.
func (g *Generator) validate(ctx context.Context, candidate string) error {
	normalized := strings.ToUpper(strings.TrimSpace(candidate))

	if !strings.HasPrefix(normalized, "SELECT") {
		for _, keyword := range mutatingKeywords {
			if strings.Contains(normalized, keyword) {
				return core.ErrPolicyViolation
			}
		}
	}

	if _, err := g.explainer.ExplainQuery(ctx, candidate); err != nil {
		return core.WrapError(err, core.ErrorTypeValidation, "VALIDATION_FAILED",
			fmt.Sprintf("statement failed validation: %v", err))
	}
	return nil
}

func cleanCandidate(text string) string {
	text = strings.ReplaceAll(text, "```sql", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
