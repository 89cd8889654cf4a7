package bigquery

import (
	"regexp"
	"strings"
)

// Bare table references following these keywords get qualified into
// `project.dataset.table` form. This is textual substitution, not SQL
// parsing: multi-table joins, subqueries reusing bare names, and quoted or
// backtick-qualified identifiers are not guaranteed to survive intact. The
// guarantee is limited to the common single unqualified-identifier case.
var (
	fromPattern   = regexp.MustCompile(`(?i)\b(FROM)\s+([a-zA-Z_][a-zA-Z0-9_]*)\b`)
	intoPattern   = regexp.MustCompile(`(?i)\b(INTO)\s+([a-zA-Z_][a-zA-Z0-9_]*)\b`)
	updatePattern = regexp.MustCompile(`(?i)\b(UPDATE)\s+([a-zA-Z_][a-zA-Z0-9_]*)\b`)
	// Go regexp has no negative lookahead, so the IF EXISTS exclusion is an
	// optional capture checked in the replacement callback.
	tablePattern = regexp.MustCompile(`(?i)\b(TABLE)\s+(IF\s+EXISTS\s+)?([a-zA-Z_][a-zA-Z0-9_]*)\b`)
)

// QualifyTables rewrites unqualified table references into fully qualified
// form. Statements already mentioning project.dataset pass through untouched.
func QualifyTables(query, project, dataset string) string {
	prefix := project + "." + dataset
	if strings.Contains(query, prefix) {
		return query
	}

	for _, re := range []*regexp.Regexp{fromPattern, intoPattern, updatePattern} {
		query = re.ReplaceAllString(query, "${1} `"+prefix+".${2}`")
	}
	query = tablePattern.ReplaceAllStringFunc(query, func(match string) string {
		sub := tablePattern.FindStringSubmatch(match)
		if sub[2] != "" {
			return match
		}
		return sub[1] + " `" + prefix + "." + sub[3] + "`"
	})
	return query
}

// isReadStatement classifies by leading keyword: SELECT and WITH produce a
// result set, everything else is treated as DML/DDL.
func isReadStatement(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH")
}
