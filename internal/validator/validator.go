// Package validator checks machine-generated SQL against the schema
// catalog before execution. It is a structural identifier check aimed at
// hallucinated table and column names, not a SQL parser: syntax errors
// are left to the database and handled by a different retry category.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

// Result reports whether a query references only known identifiers.
type Result struct {
	Valid          bool     `json:"valid"`
	Errors         []string `json:"errors"`
	InvalidTables  []string `json:"invalid_tables"`
	InvalidColumns []string `json:"invalid_columns"`
}

// Validator extracts identifiers from generated query text and checks
// them against the catalog.
type Validator struct {
	cat *catalog.Catalog
}

// New creates a validator over the given catalog.
func New(cat *catalog.Catalog) *Validator {
	return &Validator{cat: cat}
}

var (
	// Clauses that introduce a row source: FROM and any JOIN variant.
	// A "(" after the clause is a subquery and is intentionally skipped.
	tableRe = regexp.MustCompile(`(?i)\b(?:from|join)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	identRe = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)

	stringLiteralRe = regexp.MustCompile(`'[^']*'`)
)

// keywordAllowlist contains aggregate functions, SQL keywords, and common
// scalar functions that may appear in a projection without being columns.
var keywordAllowlist = map[string]struct{}{
	"select": {}, "distinct": {}, "as": {}, "all": {},
	"sum": {}, "count": {}, "avg": {}, "min": {}, "max": {},
	"case": {}, "when": {}, "then": {}, "else": {}, "end": {},
	"and": {}, "or": {}, "not": {}, "in": {}, "is": {}, "null": {},
	"like": {}, "between": {}, "true": {}, "false": {},
	"nullif": {}, "coalesce": {}, "cast": {}, "round": {}, "abs": {},
	"lower": {}, "upper": {}, "substr": {}, "concat": {}, "length": {},
	"extract": {}, "date_trunc": {}, "strftime": {}, "current_date": {},
	"interval": {}, "over": {}, "partition": {}, "by": {}, "order": {},
	"asc": {}, "desc": {}, "integer": {}, "numeric": {}, "real": {},
	"text": {}, "varchar": {}, "boolean": {}, "date": {}, "timestamp": {},
	"float": {}, "lag": {}, "lead": {}, "rank": {}, "row_number": {},
}

// Validate checks the table and projection-column identifiers of the
// given query text against the catalog. Valid is true iff no unknown
// identifiers were found.
func (v *Validator) Validate(queryText string) Result {
	res := Result{Valid: true}

	seenTables := map[string]struct{}{}
	aliases := map[string]struct{}{}

	for _, m := range tableRe.FindAllStringSubmatch(queryText, -1) {
		name := m[1]
		key := strings.ToLower(name)
		// A FROM directly followed by SELECT means the regex crossed into
		// a subquery; ignore it.
		if key == "select" {
			continue
		}
		if _, dup := seenTables[key]; dup {
			continue
		}
		seenTables[key] = struct{}{}
		if !v.cat.HasTable(name) {
			res.InvalidTables = append(res.InvalidTables, name)
			res.Errors = append(res.Errors, fmt.Sprintf("unknown table %q: not present in the schema catalog", name))
		}
	}

	// Table aliases ("FROM accounts a") are legal column qualifiers.
	for _, m := range regexp.MustCompile(`(?i)\b(?:from|join)\s+[a-zA-Z_][a-zA-Z0-9_]*(?:\s+(?:as\s+)?([a-zA-Z_][a-zA-Z0-9_]*))?`).FindAllStringSubmatch(queryText, -1) {
		if m[1] != "" {
			lower := strings.ToLower(m[1])
			if _, kw := keywordAllowlist[lower]; !kw && lower != "where" && lower != "group" && lower != "on" && lower != "join" && lower != "inner" && lower != "left" && lower != "right" && lower != "outer" && lower != "cross" && lower != "limit" && lower != "having" {
				aliases[lower] = struct{}{}
			}
		}
	}

	seenColumns := map[string]struct{}{}
	for _, ident := range projectionIdentifiers(queryText) {
		key := strings.ToLower(ident)
		if _, dup := seenColumns[key]; dup {
			continue
		}
		seenColumns[key] = struct{}{}
		if _, isTable := seenTables[key]; isTable {
			continue
		}
		if _, isAlias := aliases[key]; isAlias {
			continue
		}
		if !v.cat.HasColumnOrMetric(ident) {
			res.InvalidColumns = append(res.InvalidColumns, ident)
			res.Errors = append(res.Errors, fmt.Sprintf("unknown column %q: not present in the schema catalog", ident))
		}
	}

	res.Valid = len(res.InvalidTables) == 0 && len(res.InvalidColumns) == 0
	return res
}

// projectionIdentifiers extracts candidate column identifiers from the
// outermost SELECT's projection clause. Keywords, aggregate functions,
// aliases introduced with AS, and "*" are excluded.
func projectionIdentifiers(queryText string) []string {
	clause, ok := projectionClause(queryText)
	if !ok {
		return nil
	}

	clause = stringLiteralRe.ReplaceAllString(clause, "''")

	var out []string
	tokens := identRe.FindAllStringIndex(clause, -1)
	skipNext := false
	for _, loc := range tokens {
		tok := clause[loc[0]:loc[1]]
		lower := strings.ToLower(tok)

		if skipNext {
			skipNext = false
			continue
		}
		if lower == "as" {
			skipNext = true
			continue
		}
		if _, kw := keywordAllowlist[lower]; kw {
			continue
		}
		// A qualifier like "a." in "a.balance" is a table or alias
		// reference, not a column.
		if loc[1] < len(clause) && nextNonSpace(clause, loc[1]) == '.' {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// projectionClause returns the text between the outermost SELECT and its
// FROM at parenthesis depth zero.
func projectionClause(queryText string) (string, bool) {
	lower := strings.ToLower(queryText)
	start := strings.Index(lower, "select")
	if start < 0 {
		return "", false
	}
	start += len("select")

	depth := 0
	for i := start; i < len(lower); i++ {
		switch lower[i] {
		case '(':
			depth++
		case ')':
			depth--
		case 'f':
			if depth == 0 && strings.HasPrefix(lower[i:], "from") &&
				isBoundary(lower, i-1) && isBoundary(lower, i+4) {
				return queryText[start:i], true
			}
		}
	}
	// SELECT without FROM (constant expressions); the whole remainder is
	// the projection.
	return queryText[start:], true
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'))
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			return s[i]
		}
	}
	return 0
}
