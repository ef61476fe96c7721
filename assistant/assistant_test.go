package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

func testConfig() *core.Config {
	return &core.Config{
		Database: &core.DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Username: "root",
			Database: "shop",
		},
		LLM: &core.LLMConfig{Provider: "mock", Model: "test"},
	}
}

func TestNewAndClose(t *testing.T) {
	// The pool is opened lazily, so wiring succeeds without a live server.
	app, err := New(testConfig(), nil)
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		sql      string
		expected bool
	}{
		{"SELECT id FROM users", true},
		{"  select id from users", true},
		{"SHOW TABLES", true},
		{"DESCRIBE users", true},
		{"EXPLAIN SELECT 1", true},
		{"DROP TABLE users", false},
		{"DELETE FROM users", false},
		{"UPDATE users SET name = 'x'", false},
		{"INSERT INTO users VALUES (1)", false},
		{"TRUNCATE TABLE users", false},
		{"CREATE TABLE t (id int)", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isReadOnly(tt.sql), tt.sql)
	}
}

func TestExecuteQueryPolicyGate(t *testing.T) {
	app, err := New(testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	// Rejected before any statement reaches the database.
	_, err = app.ExecuteQuery(context.Background(), "DROP TABLE users")
	assert.ErrorIs(t, err, core.ErrPolicyViolation)
}

func TestSuggestIndexesDelegates(t *testing.T) {
	app, err := New(testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	suggestions := app.SuggestIndexes("SELECT id FROM orders WHERE status = 'open'")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "orders", suggestions[0].Table)
}
