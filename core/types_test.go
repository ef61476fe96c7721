package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatement(t *testing.T) {
	stmt := NewStatement("  select * from users  ")
	assert.Equal(t, "  select * from users  ", stmt.Raw)
	assert.Equal(t, "SELECT * FROM USERS", stmt.Normalized)
}

func TestAccessTypeIsFullScan(t *testing.T) {
	assert.True(t, AccessTypeAll.IsFullScan())
	assert.False(t, AccessTypeRef.IsFullScan())
	assert.False(t, AccessTypeRange.IsFullScan())
	assert.False(t, AccessType("").IsFullScan())
}

func TestSeverityPenalty(t *testing.T) {
	assert.Equal(t, 30, SeverityHigh.Penalty())
	assert.Equal(t, 15, SeverityMedium.Penalty())
	assert.Equal(t, 5, SeverityLow.Penalty())
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityOf(IssueNoWhere))
	assert.Equal(t, SeverityHigh, SeverityOf(IssueTableScan))
	assert.Equal(t, SeverityMedium, SeverityOf(IssueSelectAll))
	assert.Equal(t, SeverityMedium, SeverityOf(IssueFilesort))
	assert.Equal(t, SeverityMedium, SeverityOf(IssueTemporaryTable))
}

func TestSchemaContextFormat(t *testing.T) {
	ctx := &SchemaContext{
		Database: "shop",
		Tables: []*TableSchema{
			{Name: "users", Columns: []*ColumnInfo{
				{Name: "id", Type: "int"},
				{Name: "name", Type: "varchar(255)"},
			}},
			{Name: "orders", Columns: []*ColumnInfo{
				{Name: "id", Type: "int"},
			}},
		},
	}

	formatted := ctx.Format()
	assert.Contains(t, formatted, "Table: users")
	assert.Contains(t, formatted, "id (int), name (varchar(255))")
	assert.Contains(t, formatted, "Table: orders")
}

func TestSchemaContextFormatEmpty(t *testing.T) {
	assert.Equal(t, "(no tables)", (&SchemaContext{}).Format())
	assert.Equal(t, "(no tables)", (*SchemaContext)(nil).Format())
}
