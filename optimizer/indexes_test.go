package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestIndexesFilterColumns(t *testing.T) {
	suggestions := SuggestIndexes("SELECT id FROM orders WHERE status = 'open'")

	require.Len(t, suggestions, 1)
	assert.Equal(t, "orders", suggestions[0].Table)
	assert.Equal(t, []string{"status"}, suggestions[0].Columns)
	assert.Equal(t, "CREATE INDEX idx_orders_status ON orders(status);", suggestions[0].Statement)
}

func TestSuggestIndexesJoinAndFilterCombined(t *testing.T) {
	sql := "SELECT o.id FROM orders o JOIN customers c ON c.id = o.customer_id WHERE status = 'open'"
	suggestions := SuggestIndexes(sql)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, []string{"status", "id"}, suggestions[0].Columns)
}

func TestSuggestIndexesOrderBySeparate(t *testing.T) {
	suggestions := SuggestIndexes("SELECT id FROM orders WHERE status = 'open' ORDER BY created_at")

	require.Len(t, suggestions, 2)
	assert.Equal(t, []string{"status"}, suggestions[0].Columns)
	assert.Equal(t, []string{"created_at"}, suggestions[1].Columns)
	assert.Equal(t, "CREATE INDEX idx_orders_created_at ON orders(created_at);", suggestions[1].Statement)
}

func TestSuggestIndexesDeduplicates(t *testing.T) {
	// customer_id appears both as a filter column and as a join column.
	sql := "SELECT o.id FROM orders o JOIN customers c ON c.customer_id = o.customer_id WHERE customer_id = 7"
	suggestions := SuggestIndexes(sql)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, []string{"customer_id"}, suggestions[0].Columns)
}

func TestSuggestIndexesComparisonOperators(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		col  string
	}{
		{"equals", "SELECT id FROM t WHERE a = 1", "a"},
		{"greater", "SELECT id FROM t WHERE b > 1", "b"},
		{"less or equal", "SELECT id FROM t WHERE c <= 1", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := SuggestIndexes(tt.sql)
			require.Len(t, suggestions, 1)
			assert.Equal(t, []string{tt.col}, suggestions[0].Columns)
		})
	}
}

func TestSuggestIndexesNothingToSuggest(t *testing.T) {
	assert.Empty(t, SuggestIndexes("SELECT id FROM orders"))
	assert.Empty(t, SuggestIndexes("SELECT 1"))
}

func TestSuggestIndexesMultipleTables(t *testing.T) {
	sql := "SELECT * FROM orders WHERE status = 'x' UNION SELECT * FROM archive WHERE status = 'x'"
	suggestions := SuggestIndexes(sql)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "orders", suggestions[0].Table)
	assert.Equal(t, "archive", suggestions[1].Table)
}
