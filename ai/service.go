// Package ai wraps the text-generation collaborator. The capability sits
// behind llms.Model with two implementations, a real OpenAI-compatible client
// and a deterministic stub, selected once at construction and never branched
// on afterwards.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// Fallback values returned when the collaborator is unavailable. Failures
// degrade to these instead of propagating.
const (
	adviceUnavailable      = "Optimization advice unavailable."
	explanationUnavailable = "Query explanation unavailable."
)

// Service talks to the language model. Safe for concurrent use.
type Service struct {
	model       llms.Model
	temperature float64
	maxTokens   int
	provider    string
	modelName   string
	logger      core.Logger
}

// NewService builds a service from configuration. Provider "openai" requires
// an API key; "mock" (or a missing key) selects the deterministic stub.
func NewService(cfg *core.LLMConfig, logger core.Logger) (*Service, error) {
	if cfg == nil {
		return nil, core.ErrConfiguration
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	model, provider, err := newModel(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		provider:    provider,
		modelName:   cfg.Model,
		logger:      logger,
	}, nil
}

func newModel(cfg *core.LLMConfig, logger core.Logger) (llms.Model, string, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	if provider == "openai" && cfg.APIKey == "" {
		logger.Warn("no API key configured, using mock responses")
		provider = "mock"
	}

	switch provider {
	case "openai":
		opts := []openai.Option{
			openai.WithModel(cfg.Model),
			openai.WithToken(cfg.APIKey),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, "", core.WrapError(err, core.ErrorTypeGeneration, "LLM_INIT_FAILED", "failed to initialize LLM client")
		}
		return model, provider, nil

	case "mock":
		return &mockModel{}, provider, nil

	default:
		return nil, "", core.NewError(core.ErrorTypeConfig, "UNSUPPORTED_PROVIDER",
			fmt.Sprintf("unsupported LLM provider: %s", provider))
	}
}

// Complete sends a single-prompt completion request and returns the raw text.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := s.model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		s.logger.Error("LLM request failed", "error", err)
		return "", core.ErrGenerationFailed.WithCause(err)
	}
	if len(response.Choices) == 0 {
		return "", core.NewError(core.ErrorTypeGeneration, "EMPTY_RESPONSE", "LLM returned no choices")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}

// OptimizationAdvice asks for narrative recommendations over a statement, its
// plan and the detected issues. The content is opaque and never validated; on
// failure a sentinel string is returned instead of an error.
func (s *Service) OptimizationAdvice(ctx context.Context, sql string, plan []*core.ExecutionPlanStep, issues []*core.Issue) string {
	var issueLines []string
	for _, issue := range issues {
		issueLines = append(issueLines, "- "+issue.Message)
	}

	var planLines []string
	for _, step := range plan {
		planLines = append(planLines, fmt.Sprintf("- table=%s type=%s rows=%d extra=%s",
			step.Table, step.AccessType, step.Rows, step.Extra))
	}

	prompt := fmt.Sprintf(`Query: %s

Execution Plan:
%s

Issues Found:
%s

Provide 3 specific recommendations to optimize this query.`,
		sql, strings.Join(planLines, "\n"), strings.Join(issueLines, "\n"))

	advice, err := s.Complete(ctx, prompt)
	if err != nil {
		return adviceUnavailable
	}
	return advice
}

// ExplainQuery describes a statement in plain language.
func (s *Service) ExplainQuery(ctx context.Context, sql string) string {
	prompt := fmt.Sprintf("Explain this SQL query in simple language:\n\n%s", sql)
	explanation, err := s.Complete(ctx, prompt)
	if err != nil {
		return explanationUnavailable
	}
	return explanation
}

// ExplainResults summarizes query results against the original question.
func (s *Service) ExplainResults(ctx context.Context, question, sql string, result *core.QueryResult) string {
	if result == nil {
		return explanationUnavailable
	}

	prompt := fmt.Sprintf(`Question: %s

Query Used: %s

Results Summary:
Rows: %d, Columns: %s

Provide a clear, concise explanation of these results in 2-3 sentences.`,
		question, sql, result.RowCount, strings.Join(result.Columns, ", "))

	explanation, err := s.Complete(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Query returned %d rows.", result.RowCount)
	}
	return explanation
}

// DescribeTable writes a short description of what a table likely stores.
func (s *Service) DescribeTable(ctx context.Context, table *core.TableSchema) string {
	cols := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		cols = append(cols, col.Name)
	}

	prompt := fmt.Sprintf(`Table Name: %s
Columns: %s

Write a 1-2 sentence description of what this table likely stores.`,
		table.Name, strings.Join(cols, ", "))

	description, err := s.Complete(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Table: %s", table.Name)
	}
	return description
}

// HealthCheck reports the configured provider and model.
func (s *Service) HealthCheck() *core.HealthStatus {
	status := "healthy"
	if s.provider == "mock" {
		status = "mock_mode"
	}
	return &core.HealthStatus{
		Status:    status,
		Connected: true,
		Detail:    fmt.Sprintf("provider=%s model=%s", s.provider, s.modelName),
	}
}
