package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the immutable in-memory index over the semantic model.
// It is built once at startup and only read afterward, so it needs no
// synchronization.
type Catalog struct {
	model   Model
	tables  map[string]struct{}
	columns map[string]struct{}
}

// Load reads the semantic model from the given YAML file and builds a
// catalog. A missing or malformed file is a startup failure, not a
// per-request condition.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading semantic model %s: %w", path, err)
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing semantic model %s: %w", path, err)
	}

	return New(m)
}

// New builds a catalog from an in-memory model.
func New(m Model) (*Catalog, error) {
	if len(m.Tables) == 0 {
		return nil, fmt.Errorf("semantic model declares no tables")
	}

	c := &Catalog{
		model:   m,
		tables:  make(map[string]struct{}),
		columns: make(map[string]struct{}),
	}

	for _, t := range m.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("semantic model contains a table without a name")
		}
		c.tables[strings.ToLower(t.Name)] = struct{}{}
		for _, col := range t.Columns {
			c.columns[strings.ToLower(col.Name)] = struct{}{}
		}
	}

	// Metric names act as virtual columns.
	for _, metric := range m.Metrics {
		c.columns[strings.ToLower(metric.Name)] = struct{}{}
	}

	for _, term := range m.AmbiguousTerms {
		if len(term.Options) == 0 {
			return nil, fmt.Errorf("ambiguous term %q declares no options", term.Term)
		}
	}

	return c, nil
}

// HasTable reports whether the given table name exists in the catalog.
// Matching is case-insensitive and exact; near-misses are not corrected.
func (c *Catalog) HasTable(name string) bool {
	_, ok := c.tables[strings.ToLower(name)]
	return ok
}

// HasColumnOrMetric reports whether the given identifier is a known
// column or metric name.
func (c *Catalog) HasColumnOrMetric(name string) bool {
	_, ok := c.columns[strings.ToLower(name)]
	return ok
}

// Tables returns the declared tables.
func (c *Catalog) Tables() []Table { return c.model.Tables }

// Metrics returns the declared metrics.
func (c *Catalog) Metrics() []Metric { return c.model.Metrics }

// AmbiguousTerms returns the configured ambiguous-term table.
func (c *Catalog) AmbiguousTerms() []AmbiguousTerm { return c.model.AmbiguousTerms }

// Patterns returns the entity-extraction pattern tables.
func (c *Catalog) Patterns() Patterns { return c.model.Patterns }

// BusinessRules returns the declared business rules.
func (c *Catalog) BusinessRules() []string { return c.model.BusinessRules }

// ExampleQuestions returns suggested questions used in fallback responses.
func (c *Catalog) ExampleQuestions() []string { return c.model.ExampleQuestions }

// MetricByName returns the metric with the given name, or nil.
// Matching is case-insensitive.
func (c *Catalog) MetricByName(name string) *Metric {
	for i := range c.model.Metrics {
		if strings.EqualFold(c.model.Metrics[i].Name, name) {
			return &c.model.Metrics[i]
		}
	}
	return nil
}

// SearchMetrics returns metrics whose name, synonyms, or description
// contain the query as a substring (case-insensitive).
func (c *Catalog) SearchMetrics(query string) []Metric {
	q := strings.ToLower(query)
	var matches []Metric
	for _, m := range c.model.Metrics {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q) {
			matches = append(matches, m)
			continue
		}
		for _, syn := range m.Synonyms {
			if strings.Contains(strings.ToLower(syn), q) {
				matches = append(matches, m)
				break
			}
		}
	}
	return matches
}
