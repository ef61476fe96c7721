package optimizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// Text patterns are deliberately literal keyword matching, not a SQL grammar.
var (
	selectAllPattern = regexp.MustCompile(`(?i)SELECT\s+\*`)
	fromTablePattern = regexp.MustCompile(`(?i)FROM\s+\w+`)
	whereKeyword     = regexp.MustCompile(`(?i)\bWHERE\b`)
)

// Plan Extra flags, matched on MySQL's literal wording.
const (
	extraFilesort  = "Using filesort"
	extraTemporary = "Using temporary"
)

// Detect scans a statement's text and its execution plan and returns the
// detected issues. Pure function of its inputs; issues are appended in fixed
// rule order so callers can assert exact sequences. A nil or empty plan only
// silences the plan-driven rules, it never fails detection.
func Detect(stmt core.Statement, plan []*core.ExecutionPlanStep) []*core.Issue {
	issues := make([]*core.Issue, 0)

	// Rule 1: SELECT * retrieves unnecessary columns. At most one issue per
	// statement regardless of repeated occurrences.
	if selectAllPattern.MatchString(stmt.Raw) {
		issues = append(issues, newIssue(core.IssueSelectAll,
			"Using SELECT * can retrieve unnecessary columns",
			"Specify only the columns you need", ""))
	}

	// Rule 2: a FROM clause with no WHERE may scan the entire table. Not
	// raised for statements without a FROM clause at all.
	if !whereKeyword.MatchString(stmt.Raw) && fromTablePattern.MatchString(stmt.Raw) {
		issues = append(issues, newIssue(core.IssueNoWhere,
			"Query has no WHERE clause, may scan entire table",
			"Add WHERE clause to filter results", ""))
	}

	// Rule 3: one table_scan issue per full-scan plan step.
	for _, step := range plan {
		if step.AccessType.IsFullScan() {
			issues = append(issues, newIssue(core.IssueTableScan,
				fmt.Sprintf("Full table scan on %s", step.Table),
				"Consider adding an index", step.Table))
		}
	}

	// Rule 4: filesort reported by the plan.
	for _, step := range plan {
		if strings.Contains(step.Extra, extraFilesort) {
			issues = append(issues, newIssue(core.IssueFilesort,
				"Query requires filesort operation",
				"Add index on ORDER BY columns", step.Table))
		}
	}

	// Rule 5: temporary table reported by the plan.
	for _, step := range plan {
		if strings.Contains(step.Extra, extraTemporary) {
			issues = append(issues, newIssue(core.IssueTemporaryTable,
				"Query creates temporary table",
				"Optimize joins or use covering index", step.Table))
		}
	}

	return issues
}

func newIssue(kind core.IssueKind, message, suggestion, table string) *core.Issue {
	return &core.Issue{
		Kind:       kind,
		Severity:   core.SeverityOf(kind),
		Message:    message,
		Suggestion: suggestion,
		Table:      table,
	}
}
