package catalog

// Column describes one physical column of an analytical table.
type Column struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Table describes one queryable table and a hint on when the SQL
// generator should route a question to it.
type Table struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	RoutingHint string   `yaml:"routing_hint"`
	Columns     []Column `yaml:"columns"`
}

// Metric is a named business metric. Metric names are treated as virtual
// columns for validation purposes.
type Metric struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Table       string   `yaml:"table"`
	Formula     string   `yaml:"formula"`
	Synonyms    []string `yaml:"synonyms"`
}

// Option is one concrete interpretation of an ambiguous domain term.
type Option struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MetricID    string `yaml:"metric_id"`
}

// AmbiguousTerm maps a polysemous domain term to its trigger words and
// the ordered interpretations a user can choose between.
type AmbiguousTerm struct {
	Term            string   `yaml:"term"`
	Triggers        []string `yaml:"triggers"`
	Options         []Option `yaml:"options"`
	DefaultOptionID string   `yaml:"default_option_id"`
}

// SlotPattern is one extraction rule for a conversation-context slot.
// Match is a regular expression applied to the lower-cased turn text;
// Value is the canonical value stored when the pattern matches. An empty
// Value stores the matched text itself.
type SlotPattern struct {
	Match string `yaml:"match"`
	Value string `yaml:"value"`
}

// Patterns groups extraction rules per context slot. Comparisons hold
// relative-time phrases; their Value is the comparison mode and the
// matched phrase becomes the comparison period.
type Patterns struct {
	Regions     []SlotPattern `yaml:"regions"`
	Products    []SlotPattern `yaml:"products"`
	Segments    []SlotPattern `yaml:"segments"`
	Metrics     []SlotPattern `yaml:"metrics"`
	TimePeriods []SlotPattern `yaml:"time_periods"`
	Comparisons []SlotPattern `yaml:"comparisons"`
}

// Model is the full semantic model as declared in the catalog YAML file.
type Model struct {
	Tables           []Table         `yaml:"tables"`
	Metrics          []Metric        `yaml:"metrics"`
	AmbiguousTerms   []AmbiguousTerm `yaml:"ambiguous_terms"`
	Patterns         Patterns        `yaml:"patterns"`
	BusinessRules    []string        `yaml:"business_rules"`
	ExampleQuestions []string        `yaml:"example_questions"`
}
