package ai

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// mockModel is the deterministic stub used when no API key is configured and
// in tests. Responses are keyed off the prompt text so the assistant stays
// usable end to end without a remote model.
type mockModel struct{}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	prompt := flattenPrompt(messages)

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: m.respond(prompt)},
		},
	}, nil
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.respond(prompt), nil
}

func (m *mockModel) respond(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(prompt, "SQL Query:") || strings.Contains(prompt, "Corrected Query:"):
		switch {
		case strings.Contains(lower, "customer"):
			return "SELECT * FROM customers WHERE state = 'CA' LIMIT 10;"
		case strings.Contains(lower, "order"):
			return "SELECT * FROM orders WHERE order_date > '2024-01-01' LIMIT 10;"
		default:
			return "SELECT * FROM table LIMIT 10;"
		}
	case strings.Contains(prompt, "recommendations to optimize"):
		return "Consider adding indexes and avoiding table scans."
	case strings.Contains(prompt, "likely stores"):
		return "This table stores related records."
	default:
		return "This query retrieves data from the database with specific conditions."
	}
}

func flattenPrompt(messages []llms.MessageContent) string {
	var b strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				b.WriteString(text.Text)
			}
		}
	}
	return b.String()
}
