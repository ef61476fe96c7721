package generator

import (
	"fmt"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

func generationPrompt(description string, schema *core.SchemaContext) string {
	return fmt.Sprintf(`You are an expert MySQL query generator.

Database Schema:
%s

User Request: %s

Generate a MySQL query that:
1. Answers the user's request accurately
2. Uses proper MySQL syntax
3. Follows best practices (proper joins, WHERE clauses, etc.)
4. Includes appropriate LIMIT clauses if needed
5. Returns only the SQL query, no explanations

SQL Query:`, schema.Format(), description)
}

func repairPrompt(candidate, errorText string, schema *core.SchemaContext) string {
	return fmt.Sprintf(`The following MySQL query has an error:

Query: %s
Error: %s

Database Schema:
%s

Please provide a corrected version of the query that fixes the error.
Return only the corrected SQL query, no explanations.

Corrected Query:`, candidate, errorText, schema.Format())
}
