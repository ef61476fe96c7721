package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

func TestDetectSelectAll(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected bool
	}{
		{"plain select star", "SELECT * FROM users WHERE id = 1", true},
		{"lowercase", "select * from users where id = 1", true},
		{"extra whitespace", "SELECT   *   FROM users WHERE id = 1", true},
		{"explicit columns", "SELECT id, name FROM users WHERE id = 1", false},
		{"count star", "SELECT COUNT(*) FROM users WHERE id = 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Detect(core.NewStatement(tt.sql), nil)
			assert.Equal(t, tt.expected, hasIssue(issues, core.IssueSelectAll))
		})
	}
}

func TestDetectSelectAllReportedOnce(t *testing.T) {
	issues := Detect(core.NewStatement("SELECT * FROM (SELECT * FROM users) AS u"), nil)

	count := 0
	for _, issue := range issues {
		if issue.Kind == core.IssueSelectAll {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDetectNoWhere(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected bool
	}{
		{"missing where", "SELECT id FROM users", true},
		{"has where", "SELECT id FROM users WHERE id = 1", false},
		{"lowercase where", "select id from users where id = 1", false},
		{"no from clause", "SELECT 1", false},
		{"where as substring only", "SELECT id FROM nowhere_log", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Detect(core.NewStatement(tt.sql), nil)
			assert.Equal(t, tt.expected, hasIssue(issues, core.IssueNoWhere))
		})
	}
}

func TestDetectTableScanPerStep(t *testing.T) {
	plan := []*core.ExecutionPlanStep{
		{Table: "orders", AccessType: core.AccessTypeAll},
		{Table: "customers", AccessType: core.AccessTypeRef},
		{Table: "items", AccessType: core.AccessTypeAll},
	}

	issues := Detect(core.NewStatement("SELECT id FROM orders WHERE x = 1"), plan)

	var tables []string
	for _, issue := range issues {
		if issue.Kind == core.IssueTableScan {
			tables = append(tables, issue.Table)
			assert.Equal(t, "Full table scan on "+issue.Table, issue.Message)
		}
	}
	assert.Equal(t, []string{"orders", "items"}, tables)
}

func TestDetectExtraFlagsCaseSensitive(t *testing.T) {
	tests := []struct {
		name     string
		extra    string
		filesort bool
		tmpTable bool
	}{
		{"filesort", "Using filesort", true, false},
		{"temporary", "Using temporary", false, true},
		{"both", "Using temporary; Using filesort", true, true},
		{"wrong case ignored", "using filesort", false, false},
		{"unrelated", "Using index", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := []*core.ExecutionPlanStep{{Table: "t", AccessType: core.AccessTypeRef, Extra: tt.extra}}
			issues := Detect(core.NewStatement("SELECT id FROM t WHERE id = 1"), plan)

			assert.Equal(t, tt.filesort, hasIssue(issues, core.IssueFilesort))
			assert.Equal(t, tt.tmpTable, hasIssue(issues, core.IssueTemporaryTable))
		})
	}
}

func TestDetectRuleOrder(t *testing.T) {
	plan := []*core.ExecutionPlanStep{
		{Table: "orders", AccessType: core.AccessTypeAll, Extra: "Using temporary; Using filesort"},
	}
	issues := Detect(core.NewStatement("SELECT * FROM orders"), plan)

	require.Len(t, issues, 5)
	assert.Equal(t, core.IssueSelectAll, issues[0].Kind)
	assert.Equal(t, core.IssueNoWhere, issues[1].Kind)
	assert.Equal(t, core.IssueTableScan, issues[2].Kind)
	assert.Equal(t, core.IssueFilesort, issues[3].Kind)
	assert.Equal(t, core.IssueTemporaryTable, issues[4].Kind)
}

func TestDetectSeverities(t *testing.T) {
	plan := []*core.ExecutionPlanStep{
		{Table: "orders", AccessType: core.AccessTypeAll, Extra: "Using temporary; Using filesort"},
	}
	issues := Detect(core.NewStatement("SELECT * FROM orders"), plan)

	bySeverity := map[core.IssueKind]core.Severity{}
	for _, issue := range issues {
		bySeverity[issue.Kind] = issue.Severity
	}

	assert.Equal(t, core.SeverityMedium, bySeverity[core.IssueSelectAll])
	assert.Equal(t, core.SeverityHigh, bySeverity[core.IssueNoWhere])
	assert.Equal(t, core.SeverityHigh, bySeverity[core.IssueTableScan])
	assert.Equal(t, core.SeverityMedium, bySeverity[core.IssueFilesort])
	assert.Equal(t, core.SeverityMedium, bySeverity[core.IssueTemporaryTable])
}

func TestDetectEmptyPlanOnlyTextRules(t *testing.T) {
	issues := Detect(core.NewStatement("SELECT * FROM orders"), nil)

	require.Len(t, issues, 2)
	assert.Equal(t, core.IssueSelectAll, issues[0].Kind)
	assert.Equal(t, core.IssueNoWhere, issues[1].Kind)
}

func TestDetectCleanQuery(t *testing.T) {
	plan := []*core.ExecutionPlanStep{{Table: "users", AccessType: core.AccessTypeRef, Key: "PRIMARY"}}
	issues := Detect(core.NewStatement("SELECT id, name FROM users WHERE id = 1"), plan)
	assert.Empty(t, issues)
}
