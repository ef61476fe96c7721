package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

type failingModel struct{}

func (failingModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return nil, errors.New("rate limited")
}

func (failingModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("rate limited")
}

func mockService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&core.LLMConfig{Provider: "mock", Model: "test"}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceMockProvider(t *testing.T) {
	svc := mockService(t)

	status := svc.HealthCheck()
	assert.Equal(t, "mock_mode", status.Status)
	assert.True(t, status.Connected)
}

func TestNewServiceFallsBackWithoutAPIKey(t *testing.T) {
	svc, err := NewService(&core.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "mock_mode", svc.HealthCheck().Status)
}

func TestNewServiceUnsupportedProvider(t *testing.T) {
	_, err := NewService(&core.LLMConfig{Provider: "carrier-pigeon"}, nil)
	require.Error(t, err)
	assert.True(t, core.IsErrorType(err, core.ErrorTypeConfig))
}

func TestNewServiceNilConfig(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
}

func TestCompleteGenerationPrompt(t *testing.T) {
	svc := mockService(t)

	response, err := svc.Complete(context.Background(), "... User Request: customers in California\n\nSQL Query:")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM customers WHERE state = 'CA' LIMIT 10;", response)
}

func TestCompleteOrderPrompt(t *testing.T) {
	svc := mockService(t)

	response, err := svc.Complete(context.Background(), "... User Request: recent orders\n\nSQL Query:")
	require.NoError(t, err)
	assert.Contains(t, response, "FROM orders")
}

func TestOptimizationAdvice(t *testing.T) {
	svc := mockService(t)

	advice := svc.OptimizationAdvice(context.Background(), "SELECT * FROM orders",
		[]*core.ExecutionPlanStep{{Table: "orders", AccessType: core.AccessTypeAll, Rows: 1000}},
		[]*core.Issue{{Kind: core.IssueTableScan, Message: "Full table scan on orders"}})

	assert.Equal(t, "Consider adding indexes and avoiding table scans.", advice)
}

func TestOptimizationAdviceSentinelOnFailure(t *testing.T) {
	svc := mockService(t)
	svc.model = failingModel{}

	advice := svc.OptimizationAdvice(context.Background(), "SELECT 1", nil, nil)
	assert.Equal(t, adviceUnavailable, advice)
}

func TestExplainQuerySentinelOnFailure(t *testing.T) {
	svc := mockService(t)
	svc.model = failingModel{}

	assert.Equal(t, explanationUnavailable, svc.ExplainQuery(context.Background(), "SELECT 1"))
}

func TestExplainResultsFallback(t *testing.T) {
	svc := mockService(t)
	svc.model = failingModel{}

	explanation := svc.ExplainResults(context.Background(), "how many?", "SELECT COUNT(*) FROM t",
		&core.QueryResult{RowCount: 1, Columns: []string{"count"}})
	assert.Equal(t, "Query returned 1 rows.", explanation)

	assert.Equal(t, explanationUnavailable, svc.ExplainResults(context.Background(), "q", "s", nil))
}

func TestDescribeTableFallback(t *testing.T) {
	svc := mockService(t)
	svc.model = failingModel{}

	table := &core.TableSchema{Name: "users", Columns: []*core.ColumnInfo{{Name: "id"}}}
	assert.Equal(t, "Table: users", svc.DescribeTable(context.Background(), table))
}
