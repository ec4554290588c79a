package memory

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

// slotKind identifies which ActiveContext field a pattern writes.
type slotKind int

const (
	slotRegion slotKind = iota
	slotProduct
	slotSegment
	slotMetric
	slotTimePeriod
	slotComparison
)

type compiledPattern struct {
	re    *regexp.Regexp
	kind  slotKind
	value string // canonical value; "" means use the matched text
}

// extractor scans user messages for entity mentions. Patterns come from
// the catalog so deployments can extend them in the semantic model file.
type extractor struct {
	patterns []compiledPattern
}

func newExtractor(p catalog.Patterns) (*extractor, error) {
	e := &extractor{}

	add := func(kind slotKind, sps []catalog.SlotPattern) error {
		for _, sp := range sps {
			re, err := regexp.Compile(`(?i)` + sp.Match)
			if err != nil {
				return fmt.Errorf("compiling slot pattern %q: %w", sp.Match, err)
			}
			e.patterns = append(e.patterns, compiledPattern{re: re, kind: kind, value: sp.Value})
		}
		return nil
	}

	if err := add(slotRegion, p.Regions); err != nil {
		return nil, err
	}
	if err := add(slotProduct, p.Products); err != nil {
		return nil, err
	}
	if err := add(slotSegment, p.Segments); err != nil {
		return nil, err
	}
	if err := add(slotMetric, p.Metrics); err != nil {
		return nil, err
	}
	if err := add(slotTimePeriod, p.TimePeriods); err != nil {
		return nil, err
	}
	if err := add(slotComparison, p.Comparisons); err != nil {
		return nil, err
	}

	return e, nil
}

// apply updates the active context with entities found in content.
// When several patterns for the same slot match, the one whose match
// starts last in the message wins. Slots with no match keep their
// previous value.
func (e *extractor) apply(active *ActiveContext, content string) {
	type hit struct {
		start   int
		end     int
		matched string
		value   string
	}
	best := map[slotKind]hit{}

	for _, cp := range e.patterns {
		all := cp.re.FindAllStringIndex(content, -1)
		if all == nil {
			continue
		}
		// The same pattern may match several times; take its last match.
		loc := all[len(all)-1]

		h := hit{start: loc[0], end: loc[1], matched: strings.ToLower(content[loc[0]:loc[1]])}
		h.value = cp.value
		if h.value == "" {
			h.value = h.matched
		}
		// Later mentions win; on overlapping matches ending at the same
		// place ("Q2 2025" vs "2025") the longer one wins.
		if prev, ok := best[cp.kind]; !ok || h.end > prev.end || (h.end == prev.end && h.start < prev.start) {
			best[cp.kind] = h
		}
	}

	if h, ok := best[slotRegion]; ok {
		active.RegionFocus = h.value
	}
	if h, ok := best[slotProduct]; ok {
		active.ProductFocus = h.value
	}
	if h, ok := best[slotSegment]; ok {
		active.SegmentFocus = h.value
	}
	if h, ok := best[slotMetric]; ok {
		active.MetricFocus = h.value
	}
	if h, ok := best[slotTimePeriod]; ok {
		active.TimePeriod = h.value
	}
	if h, ok := best[slotComparison]; ok {
		// Comparison phrases fill two slots: the matched phrase and the
		// canonical mode it implies.
		active.ComparisonPeriod = h.matched
		active.ComparisonMode = h.value
	}
}
