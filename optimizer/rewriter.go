package optimizer

import (
	"fmt"
	"regexp"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

var limitKeyword = regexp.MustCompile(`(?i)\bLIMIT\b`)

// Defaults used when no advisor configuration is supplied. The column list is
// a fallback approximation, not a semantic equivalent of SELECT *.
const (
	DefaultRewriteColumns = "id, name, created_at"
	DefaultLimit          = 1000
)

// Rewriter applies issue-driven template rewrites to a statement's text.
type Rewriter struct {
	columns      string
	defaultLimit int
}

// NewRewriter builds a rewriter from advisor configuration; nil selects the
// defaults.
func NewRewriter(cfg *core.AdvisorConfig) *Rewriter {
	r := &Rewriter{
		columns:      DefaultRewriteColumns,
		defaultLimit: DefaultLimit,
	}
	if cfg != nil {
		if cfg.RewriteColumns != "" {
			r.columns = cfg.RewriteColumns
		}
		if cfg.DefaultLimit > 0 {
			r.defaultLimit = cfg.DefaultLimit
		}
	}
	return r
}

// Rewrite returns a new statement addressing the detectable issues: the first
// SELECT * is replaced with an explicit column list, and a bounding LIMIT is
// appended when the statement filters nothing and has no LIMIT of its own.
// The two transforms are independent and order-insensitive; with neither
// issue present the rewrite is a no-op, never a failure.
func (r *Rewriter) Rewrite(sql string, issues []*core.Issue) core.Statement {
	rewritten := sql

	if hasIssue(issues, core.IssueSelectAll) {
		if loc := selectAllPattern.FindStringIndex(rewritten); loc != nil {
			rewritten = rewritten[:loc[0]] + "SELECT " + r.columns + rewritten[loc[1]:]
		}
	}

	if hasIssue(issues, core.IssueNoWhere) && !limitKeyword.MatchString(rewritten) {
		rewritten += fmt.Sprintf(" LIMIT %d", r.defaultLimit)
	}

	return core.NewStatement(rewritten)
}

func hasIssue(issues []*core.Issue, kind core.IssueKind) bool {
	for _, issue := range issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}
