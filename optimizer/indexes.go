package optimizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

var (
	fromIdentPattern  = regexp.MustCompile(`(?i)FROM\s+(\w+)`)
	whereColPattern   = regexp.MustCompile(`(?i)WHERE\s+(\w+)\s*(?:<=|>=|=|<|>)`)
	joinColPattern    = regexp.MustCompile(`(?i)ON\s+\w+\.(\w+)\s*=`)
	orderByColPattern = regexp.MustCompile(`(?i)ORDER\s+BY\s+(\w+)`)
)

// SuggestIndexes extracts candidate filter, join and order columns from the
// statement text and proposes CREATE INDEX statements. Extraction is purely
// lexical: it needs no live connection and is safe to call on statements that
// do not execute. Per table it emits one suggestion over the de-duplicated
// union of filter and join columns, then one further suggestion over the
// order columns, each in discovery order.
func SuggestIndexes(sql string) []*core.IndexSuggestion {
	tables := captureAll(fromIdentPattern, sql)
	filterCols := captureAll(whereColPattern, sql)
	joinCols := captureAll(joinColPattern, sql)
	orderCols := captureAll(orderByColPattern, sql)

	filterAndJoin := dedupe(append(filterCols, joinCols...))
	order := dedupe(orderCols)

	suggestions := make([]*core.IndexSuggestion, 0)
	for _, table := range tables {
		if len(filterAndJoin) > 0 {
			suggestions = append(suggestions, buildSuggestion(table, filterAndJoin))
		}
		if len(order) > 0 {
			suggestions = append(suggestions, buildSuggestion(table, order))
		}
	}
	return suggestions
}

func buildSuggestion(table string, columns []string) *core.IndexSuggestion {
	cols := make([]string, len(columns))
	copy(cols, columns)

	return &core.IndexSuggestion{
		Table:   table,
		Columns: cols,
		Statement: fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s(%s);",
			table, strings.Join(cols, "_"), table, strings.Join(cols, ", ")),
	}
}

func captureAll(pattern *regexp.Regexp, sql string) []string {
	matches := pattern.FindAllStringSubmatch(sql, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// dedupe keeps the first occurrence of each name, preserving discovery order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
