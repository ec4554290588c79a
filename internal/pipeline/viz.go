package pipeline

import "strings"

// SuggestVisualization picks a chart hint from the query shape and the
// result size. Heuristics only; the frontend may override.
func SuggestVisualization(sql string, rows []map[string]any) string {
	if len(rows) == 0 {
		return "table"
	}

	numColumns := len(rows[0])
	numRows := len(rows)
	lower := strings.ToLower(sql)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	if containsAny("date", "month", "year", "quarter") && numRows > 1 {
		return "line"
	}

	if containsAny("region", "product", "segment") {
		if numRows <= 10 {
			return "bar"
		}
		if numRows <= 50 {
			return "horizontal_bar"
		}
	}

	if containsAny("sum(", "avg(", "count(") && numRows <= 10 {
		return "bar"
	}

	if numRows > 50 || numColumns > 5 {
		return "table"
	}

	return "bar"
}
