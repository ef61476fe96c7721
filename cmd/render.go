package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	sqlColor     = color.New(color.FgGreen)
	highColor    = color.New(color.FgRed, color.Bold)
	mediumColor  = color.New(color.FgYellow)
	lowColor     = color.New(color.FgWhite)
	subtextColor = color.New(color.Faint)
)

func severityColor(severity core.Severity) *color.Color {
	switch severity {
	case core.SeverityHigh:
		return highColor
	case core.SeverityMedium:
		return mediumColor
	default:
		return lowColor
	}
}

func renderIssues(issues []*core.Issue) {
	if len(issues) == 0 {
		fmt.Println("No issues found.")
		return
	}

	headerColor.Println("Issues:")
	for _, issue := range issues {
		severityColor(issue.Severity).Printf("  [%s] ", strings.ToUpper(string(issue.Severity)))
		fmt.Println(issue.Message)
		if issue.Suggestion != "" {
			subtextColor.Printf("        %s\n", issue.Suggestion)
		}
	}
}

func renderScore(score int) {
	c := highColor
	switch {
	case score >= 80:
		c = sqlColor
	case score >= 50:
		c = mediumColor
	}
	headerColor.Print("Score: ")
	c.Printf("%d/100\n", score)
}

func renderPlan(plan []*core.ExecutionPlanStep) {
	if len(plan) == 0 {
		return
	}

	headerColor.Println("Execution Plan:")
	for _, step := range plan {
		fmt.Printf("  table=%s type=%s key=%s rows=%d", step.Table, step.AccessType, step.Key, step.Rows)
		if step.Extra != "" {
			subtextColor.Printf(" (%s)", step.Extra)
		}
		fmt.Println()
	}
}

func renderSuggestions(suggestions []*core.IndexSuggestion) {
	if len(suggestions) == 0 {
		return
	}

	headerColor.Println("Index Suggestions:")
	for _, s := range suggestions {
		sqlColor.Printf("  %s\n", s.Statement)
	}
}
