package catalog

// Default returns the built-in CR360 semantic model, used when no catalog
// file is configured. The shipped configs/semantic_model.yaml mirrors it.
func Default() *Catalog {
	c, err := New(defaultModel())
	if err != nil {
		// The built-in model is validated by tests; failing here means the
		// binary itself is broken.
		panic(err)
	}
	return c
}

func defaultModel() Model {
	return Model{
		Tables: []Table{
			{
				Name:        "accounts",
				Description: "Account-level granular data, one row per account per as-of date.",
				RoutingHint: "Use for breakdowns, GROUP BY queries, account filters, and drill-downs.",
				Columns: []Column{
					{Name: "account_id", Type: "text", Description: "Account identifier"},
					{Name: "as_of_date", Type: "date", Description: "Snapshot date (quarter end)"},
					{Name: "customer_id", Type: "text", Description: "Customer identifier"},
					{Name: "product_code", Type: "text", Description: "Product code (MORT, AUTO, CARD, PERS)"},
					{Name: "region_code", Type: "text", Description: "Region code (NORTH, SOUTH, EAST, WEST)"},
					{Name: "customer_segment", Type: "text", Description: "Customer segment (PRIME, NEAR_PRIME, SUBPRIME)"},
					{Name: "adjusted_eop_balance", Type: "numeric", Description: "End-of-period outstanding balance"},
					{Name: "original_balance", Type: "numeric", Description: "Balance at origination"},
					{Name: "days_past_due", Type: "integer", Description: "Days past due as of the snapshot"},
					{Name: "current_credit_score", Type: "integer", Description: "Latest refreshed credit score"},
					{Name: "origination_date", Type: "date", Description: "Account origination date"},
				},
			},
			{
				Name:        "computed_metrics",
				Description: "Pre-aggregated portfolio metrics, one row per quarter.",
				RoutingHint: "Use for portfolio totals and pre-calculated ratios with no dimensional breakdown.",
				Columns: []Column{
					{Name: "as_of_date", Type: "date", Description: "Snapshot date (quarter end)"},
					{Name: "total_outstanding_balance", Type: "numeric", Description: "Portfolio outstanding balance"},
					{Name: "total_accounts", Type: "integer", Description: "Number of open accounts"},
					{Name: "total_originations", Type: "numeric", Description: "New balances originated in the quarter"},
					{Name: "delinquency_rate_30_plus", Type: "numeric", Description: "30+ DPD balance share, percent"},
					{Name: "delinquency_rate_90_plus", Type: "numeric", Description: "90+ DPD balance share, percent"},
					{Name: "gross_charge_off_rate", Type: "numeric", Description: "Annualized gross charge-off rate, percent"},
					{Name: "net_charge_off_rate", Type: "numeric", Description: "Annualized net charge-off rate, percent"},
					{Name: "ecl_coverage_ratio", Type: "numeric", Description: "ECL allowance over outstanding balance, percent"},
				},
			},
		},
		Metrics: []Metric{
			{
				Name:        "gross_exposure",
				Description: "Total committed balances before collateral and hedges.",
				Table:       "accounts",
				Formula:     "SUM(adjusted_eop_balance)",
				Synonyms:    []string{"total exposure", "gross balance"},
			},
			{
				Name:        "net_exposure",
				Description: "Exposure after collateral offsets.",
				Table:       "accounts",
				Formula:     "SUM(adjusted_eop_balance) minus collateral offsets",
				Synonyms:    []string{"exposure net of collateral"},
			},
			{
				Name:        "exposure_at_default",
				Description: "Regulatory EAD estimate including undrawn commitments.",
				Table:       "computed_metrics",
				Synonyms:    []string{"ead"},
			},
			{
				Name:        "delinquency_rate",
				Description: "Share of balances 30 or more days past due.",
				Table:       "computed_metrics",
				Formula:     "delinquency_rate_30_plus",
				Synonyms:    []string{"dpd rate", "past due rate"},
			},
			{
				Name:        "net_charge_offs",
				Description: "Charge-offs net of recoveries.",
				Table:       "computed_metrics",
				Formula:     "net_charge_off_rate",
				Synonyms:    []string{"nco", "net losses"},
			},
			{
				Name:        "originations",
				Description: "New balances originated in the period.",
				Table:       "computed_metrics",
				Formula:     "total_originations",
				Synonyms:    []string{"new business", "new volume"},
			},
		},
		AmbiguousTerms: []AmbiguousTerm{
			{
				Term:     "exposure",
				Triggers: []string{"exposure", "exposures"},
				Options: []Option{
					{ID: "gross_exposure", Name: "Gross Exposure", Description: "Total committed balances before collateral and hedges", MetricID: "gross_exposure"},
					{ID: "net_exposure", Name: "Net Exposure", Description: "Exposure after collateral offsets", MetricID: "net_exposure"},
					{ID: "exposure_at_default", Name: "Exposure at Default", Description: "Regulatory EAD estimate including undrawn commitments", MetricID: "exposure_at_default"},
				},
				DefaultOptionID: "gross_exposure",
			},
			{
				Term:     "delinquency",
				Triggers: []string{"delinquency", "delinquent", "past due"},
				Options: []Option{
					{ID: "dpd_30", Name: "30+ DPD Delinquency", Description: "Balances 30 or more days past due", MetricID: "delinquency_rate"},
					{ID: "dpd_60", Name: "60+ DPD Delinquency", Description: "Balances 60 or more days past due", MetricID: "delinquency_rate"},
					{ID: "dpd_90", Name: "90+ DPD Delinquency", Description: "Balances 90 or more days past due", MetricID: "delinquency_rate"},
				},
				DefaultOptionID: "dpd_30",
			},
			{
				Term:     "loss",
				Triggers: []string{"loss", "losses", "charge-off", "charge off", "chargeoff"},
				Options: []Option{
					{ID: "gross_charge_off", Name: "Gross Charge-offs", Description: "Balances written off before recoveries", MetricID: "net_charge_offs"},
					{ID: "net_charge_off", Name: "Net Charge-offs", Description: "Charge-offs net of recoveries", MetricID: "net_charge_offs"},
					{ID: "expected_credit_loss", Name: "Expected Credit Loss", Description: "Forward-looking ECL allowance", MetricID: "net_charge_offs"},
				},
				DefaultOptionID: "net_charge_off",
			},
			{
				Term:     "balance",
				Triggers: []string{"balance", "balances"},
				Options: []Option{
					{ID: "outstanding_balance", Name: "Outstanding Balance", Description: "End-of-period outstanding balance", MetricID: "gross_exposure"},
					{ID: "average_balance", Name: "Average Balance", Description: "Average balance over the period", MetricID: "gross_exposure"},
					{ID: "original_balance", Name: "Original Balance", Description: "Balance at origination", MetricID: "originations"},
				},
				DefaultOptionID: "outstanding_balance",
			},
		},
		Patterns: Patterns{
			Regions: []SlotPattern{
				{Match: `\bnortheast\b`, Value: "Northeast"},
				{Match: `\bnorthwest\b`, Value: "Northwest"},
				{Match: `\bsoutheast\b`, Value: "Southeast"},
				{Match: `\bsouthwest\b`, Value: "Southwest"},
				{Match: `\bmidwest\b`, Value: "Midwest"},
				{Match: `\bnorth\b`, Value: "North"},
				{Match: `\bsouth\b`, Value: "South"},
				{Match: `\beast\b`, Value: "East"},
				{Match: `\bwest\b`, Value: "West"},
			},
			Products: []SlotPattern{
				{Match: `\bmortgages?\b`, Value: "Mortgage"},
				{Match: `\bauto(?:\s+loans?)?\b`, Value: "Auto Loan"},
				{Match: `\b(?:credit\s+)?cards?\b`, Value: "Credit Card"},
				{Match: `\bpersonal\s+loans?\b`, Value: "Personal Loan"},
				{Match: `\bheloc\b`, Value: "HELOC"},
			},
			Segments: []SlotPattern{
				{Match: `\bnear[\s-]?prime\b`, Value: "Near-Prime"},
				{Match: `\bsub[\s-]?prime\b`, Value: "Subprime"},
				{Match: `\bprime\b`, Value: "Prime"},
				{Match: `\bretail\b`, Value: "Retail"},
				{Match: `\bcommercial\b`, Value: "Commercial"},
			},
			Metrics: []SlotPattern{
				{Match: `\boriginations?\b`, Value: "originations"},
				{Match: `\bexposures?\b`, Value: "exposure"},
				{Match: `\bdelinquen(?:cy|cies|t)\b`, Value: "delinquency"},
				{Match: `\bcharge[\s-]?offs?\b`, Value: "charge-offs"},
				{Match: `\bloss(?:es)?\b`, Value: "losses"},
				{Match: `\bbalances?\b`, Value: "balance"},
				{Match: `\butilization\b`, Value: "utilization"},
			},
			TimePeriods: []SlotPattern{
				{Match: `\bq[1-4][\s-]?20\d\d\b`},
				{Match: `\b20\d\d\b`},
				{Match: `\b(?:this|current)\s+(?:quarter|month|year)\b`},
				{Match: `\blatest\b`, Value: "latest"},
				{Match: `\byear[\s-]to[\s-]date\b|\bytd\b`, Value: "year-to-date"},
			},
			Comparisons: []SlotPattern{
				{Match: `\b(?:last|previous|prior)\s+quarter\b`, Value: "quarter_over_quarter"},
				{Match: `\b(?:last|previous|prior)\s+month\b`, Value: "month_over_month"},
				{Match: `\b(?:last|previous|prior)\s+year\b`, Value: "year_over_year"},
				{Match: `\byear[\s-]over[\s-]year\b|\byoy\b`, Value: "year_over_year"},
				{Match: `\bquarter[\s-]over[\s-]quarter\b|\bqoq\b`, Value: "quarter_over_quarter"},
			},
		},
		BusinessRules: []string{
			"Only SELECT statements may be executed against the portfolio database.",
			"Rate calculations must guard denominators with NULLIF to avoid division by zero.",
			"Use computed_metrics for portfolio-level ratios; never recompute them from accounts.",
		},
		ExampleQuestions: []string{
			"What is the total outstanding balance for the latest quarter?",
			"Show the 30+ delinquency rate by product.",
			"How did net charge-offs trend over the last four quarters?",
			"Which region has the highest gross exposure?",
		},
	}
}
