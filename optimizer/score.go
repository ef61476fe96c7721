package optimizer

import (
	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// Score reduces an issue list to a health score in [0, 100]. Each issue
// deducts a fixed penalty by severity; the running total is clamped at zero.
// Issue order does not affect the result.
func Score(issues []*core.Issue) int {
	score := 100
	for _, issue := range issues {
		score -= issue.Severity.Penalty()
	}
	if score < 0 {
		score = 0
	}
	return score
}
