package pipeline

import "testing"

func TestSuggestVisualization(t *testing.T) {
	rows := func(n, cols int) []map[string]any {
		out := make([]map[string]any, n)
		for i := range out {
			row := map[string]any{}
			for c := 0; c < cols; c++ {
				row[string(rune('a'+c))] = i
			}
			out[i] = row
		}
		return out
	}

	tests := []struct {
		name string
		sql  string
		rows []map[string]any
		want string
	}{
		{"empty result", "SELECT region_code FROM accounts", nil, "table"},
		{"time series", "SELECT as_of_date, x FROM computed_metrics ORDER BY as_of_date", rows(8, 2), "line"},
		{"region comparison", "SELECT region_code, SUM(x) FROM accounts GROUP BY region_code", rows(4, 2), "bar"},
		{"many regions", "SELECT region_code, SUM(x) FROM accounts GROUP BY region_code", rows(30, 2), "horizontal_bar"},
		{"single aggregate", "SELECT SUM(adjusted_eop_balance) FROM accounts", rows(1, 1), "bar"},
		{"wide result", "SELECT * FROM accounts", rows(10, 8), "table"},
		{"large result", "SELECT account_id FROM accounts", rows(200, 1), "table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestVisualization(tt.sql, tt.rows); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
