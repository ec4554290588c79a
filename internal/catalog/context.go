package catalog

import (
	"fmt"
	"strings"
)

// ContextForLLM renders the semantic model as a prompt section: tables
// with their columns and routing hints, metric definitions, and business
// rules.
func (c *Catalog) ContextForLLM() string {
	var b strings.Builder

	b.WriteString("# Database Schema\n")
	for _, t := range c.model.Tables {
		fmt.Fprintf(&b, "\n## Table `%s`\n", t.Name)
		if t.Description != "" {
			fmt.Fprintf(&b, "%s\n", t.Description)
		}
		if t.RoutingHint != "" {
			fmt.Fprintf(&b, "Routing: %s\n", t.RoutingHint)
		}
		b.WriteString("Columns:\n")
		for _, col := range t.Columns {
			fmt.Fprintf(&b, "  - %s (%s): %s\n", col.Name, col.Type, col.Description)
		}
	}

	if len(c.model.Metrics) > 0 {
		b.WriteString("\n# Metrics\n")
		for _, m := range c.model.Metrics {
			fmt.Fprintf(&b, "  - %s: %s", m.Name, m.Description)
			if m.Formula != "" {
				fmt.Fprintf(&b, " [%s]", m.Formula)
			}
			if len(m.Synonyms) > 0 {
				fmt.Fprintf(&b, " (also: %s)", strings.Join(m.Synonyms, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(c.model.BusinessRules) > 0 {
		b.WriteString("\n# Business Rules\n")
		for _, rule := range c.model.BusinessRules {
			fmt.Fprintf(&b, "  - %s\n", rule)
		}
	}

	return b.String()
}

// CompactContext lists just table and metric names, for lightweight prompts.
func (c *Catalog) CompactContext() string {
	var b strings.Builder

	b.WriteString("Tables:\n")
	for _, t := range c.model.Tables {
		names := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			names = append(names, col.Name)
		}
		fmt.Fprintf(&b, "  - %s: %s\n", t.Name, strings.Join(names, ", "))
	}

	if len(c.model.Metrics) > 0 {
		b.WriteString("Metrics:\n")
		for _, m := range c.model.Metrics {
			fmt.Fprintf(&b, "  - %s\n", m.Name)
		}
	}

	return b.String()
}
