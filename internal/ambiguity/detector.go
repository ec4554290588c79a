// Package ambiguity decides, before any SQL is generated, whether a
// question uses a domain term with multiple valid meanings and none of
// them is named. Missing context (for example no time period) is not
// treated as ambiguity; those gaps fall back to documented defaults in
// the generation prompt.
package ambiguity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

// Option is one concrete interpretation the user can choose.
type Option struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	CanonicalMetricID string `json:"canonical_metric_id"`
}

// Term is one ambiguous term found in a question, with its candidate
// interpretations.
type Term struct {
	Term            string   `json:"term"`
	Options         []Option `json:"options"`
	DefaultOptionID string   `json:"default_option_id"`
}

// Request asks the user to disambiguate before the pipeline proceeds.
// It is a legitimate terminal outcome, not a failure.
type Request struct {
	Message        string `json:"message"`
	AmbiguousTerms []Term `json:"ambiguous_terms"`
	DefaultAction  string `json:"default_action"`
	ExampleQuery   string `json:"example_query"`
}

type compiledTerm struct {
	cfg      catalog.AmbiguousTerm
	triggers []*regexp.Regexp
}

// Detector pattern-matches questions against the catalog's ambiguous-term
// table. It is immutable after construction.
type Detector struct {
	terms []compiledTerm
}

// NewDetector compiles the ambiguous-term table. Trigger words match on
// word boundaries within the lower-cased question.
func NewDetector(terms []catalog.AmbiguousTerm) (*Detector, error) {
	d := &Detector{}
	for _, t := range terms {
		ct := compiledTerm{cfg: t}
		for _, trigger := range t.Triggers {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(trigger)) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compiling trigger %q for term %q: %w", trigger, t.Term, err)
			}
			ct.triggers = append(ct.triggers, re)
		}
		d.terms = append(d.terms, ct)
	}
	return d, nil
}

// Detect returns a clarification request if the question contains an
// ambiguous term that is not disambiguated by its own wording, or nil
// when the question may proceed to generation.
func (d *Detector) Detect(question string) *Request {
	lower := strings.ToLower(question)

	var found []compiledTerm
	for _, ct := range d.terms {
		if !ct.triggered(lower) {
			continue
		}
		if ct.disambiguated(lower) {
			continue
		}
		found = append(found, ct)
	}

	if len(found) == 0 {
		return nil
	}

	terms := make([]Term, 0, len(found))
	for _, ct := range found {
		terms = append(terms, toTerm(ct.cfg))
	}

	primary := found[0].cfg
	def := defaultOption(primary)

	return &Request{
		Message:        buildMessage(primary),
		AmbiguousTerms: terms,
		DefaultAction:  fmt.Sprintf("If you continue without clarifying, %q will be interpreted as %s (%s).", primary.Term, def.Name, def.Description),
		ExampleQuery:   exampleQuery(question, found[0], def),
	}
}

func (ct compiledTerm) triggered(lower string) bool {
	for _, re := range ct.triggers {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// disambiguated reports whether the question already names one of the
// term's option names verbatim.
func (ct compiledTerm) disambiguated(lower string) bool {
	for _, opt := range ct.cfg.Options {
		if strings.Contains(lower, strings.ToLower(opt.Name)) {
			return true
		}
	}
	return false
}

func defaultOption(t catalog.AmbiguousTerm) catalog.Option {
	for _, opt := range t.Options {
		if opt.ID == t.DefaultOptionID {
			return opt
		}
	}
	return t.Options[0]
}

func toTerm(t catalog.AmbiguousTerm) Term {
	out := Term{Term: t.Term, DefaultOptionID: t.DefaultOptionID}
	for _, opt := range t.Options {
		out.Options = append(out.Options, Option{
			Name:              opt.Name,
			Description:       opt.Description,
			CanonicalMetricID: opt.MetricID,
		})
	}
	return out
}

func buildMessage(t catalog.AmbiguousTerm) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q can mean several things. Which did you have in mind?\n", t.Term)
	for i, opt := range t.Options {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, opt.Name, opt.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// exampleQuery rewrites the question with the default option substituted
// into the detected metric slot, so the user sees what a confirmed query
// would look like.
func exampleQuery(question string, ct compiledTerm, def catalog.Option) string {
	for _, re := range ct.triggers {
		loc := re.FindStringIndex(strings.ToLower(question))
		if loc != nil {
			return question[:loc[0]] + def.Name + question[loc[1]:]
		}
	}
	return fmt.Sprintf("%s (using %s)", question, def.Name)
}
