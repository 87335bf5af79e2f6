// Package heuristic turns free-form RU/EN metric questions into DSL queries
// with deterministic rules: one dictionary scan over the normalized text,
// then positional resolution of metric, aggregation, scope, dates, threshold
// and identifiers. Same question in, same query out.
package heuristic

import (
	"strings"
	"time"

	"vidtally/internal/core/dsl"
	"vidtally/internal/core/lexicon"
	"vidtally/internal/core/normalize"
	"vidtally/internal/core/vocab"

	perr "vidtally/internal/platform/errors"
)

// Parser is safe for concurrent use; all state is immutable after New
type Parser struct {
	norm    *normalize.Normalizer
	scanner *lexicon.Scanner
	now     func() time.Time
}

// New builds a Parser over the embedded lexicon with the wall clock
func New() (*Parser, error) {
	return NewWithClock(time.Now)
}

// NewWithClock injects the clock relative date phrases resolve against
func NewWithClock(now func() time.Time) (*Parser, error) {
	pack, err := lexicon.Load()
	if err != nil {
		return nil, err
	}
	return &Parser{
		norm:    normalize.New(),
		scanner: lexicon.NewScanner(pack),
		now:     now,
	}, nil
}

// Parse resolves one question into a validated query. It never guesses a
// metric: with no metric wording and no count-of-videos reading it fails
// with an unparsable error rather than invent an answer
func (p *Parser) Parse(question string) (*dsl.Query, error) {
	norm := p.norm.Normalize(question)
	if strings.TrimSpace(norm) == "" {
		return nil, perr.Unparsablef("empty question")
	}
	ms := p.scanner.Scan(norm)

	cmp := resolveComparator(ms)
	agg := resolveAggregation(ms, cmp)

	metric, haveMetric := resolveMetric(ms)
	if !haveMetric {
		if agg != vocab.AggCount {
			return nil, perr.Unparsablef("no metric recognized")
		}
		metric = vocab.MetricViews // counting videos never reads the column
	}

	q := dsl.Query{
		Metric:      metric,
		Aggregation: agg,
		Scope:       resolveScope(ms),
	}
	q.CreatorID, q.VideoID = resolveIdentifiers(norm, ms)
	q.TimeRange = resolveRange(norm, p.now())

	if agg == vocab.AggCount {
		if cmp != nil {
			if v, ok := amountAfter(norm, cmp.End); ok {
				op, _ := vocab.ParseComparator(cmp.Key)
				q.Threshold = &dsl.Threshold{Cmp: op, Value: v}
			}
		}
		q.Distinct = hasKind(ms, lexicon.KindDistinct)
	}

	q = q.Normalized()
	if err := dsl.Validate(q); err != nil {
		return nil, err
	}
	return &q, nil
}

// resolveMetric takes the earliest metric mention; the scan order already
// breaks same-position ties toward the longer match
func resolveMetric(ms []lexicon.Match) (vocab.Metric, bool) {
	for _, m := range ms {
		if m.Kind != lexicon.KindMetric {
			continue
		}
		return vocab.ParseMetric(m.Key)
	}
	return "", false
}

// resolveComparator picks the first comparator not swallowed by a longer
// one, so "не больше" reads lte even though it contains "больше"
func resolveComparator(ms []lexicon.Match) *lexicon.Match {
	for i, m := range ms {
		if m.Kind != lexicon.KindComparator {
			continue
		}
		swallowed := false
		for _, o := range ms {
			if o.Kind == lexicon.KindComparator && covers(o, m) {
				swallowed = true
				break
			}
		}
		if !swallowed {
			return &ms[i]
		}
	}
	return nil
}

// resolveAggregation applies the keyword rules. A count trigger stands only
// when the question counts videos themselves; otherwise the first other
// keyword applies and sum is the default. Keywords inside a comparator
// phrase never count: "как минимум" is a bound, not a min
func resolveAggregation(ms []lexicon.Match, cmp *lexicon.Match) vocab.Aggregation {
	var aggs []lexicon.Match
	for _, m := range ms {
		if m.Kind != lexicon.KindAgg {
			continue
		}
		if cmp != nil && covers(*cmp, m) {
			continue
		}
		aggs = append(aggs, m)
	}

	for _, a := range aggs {
		if a.Key != string(vocab.AggCount) {
			continue
		}
		if countsVideos(ms, a) {
			return vocab.AggCount
		}
	}
	for _, a := range aggs {
		if a.Key == string(vocab.AggCount) {
			continue
		}
		if agg, ok := vocab.ParseAggregation(a.Key); ok {
			return agg
		}
	}
	return vocab.AggSum
}

// countsVideos reports whether the nearest count noun after the trigger has
// no metric wording between them. "сколько видео" counts videos; "сколько
// просмотров у видео" asks for an amount of views
func countsVideos(ms []lexicon.Match, trigger lexicon.Match) bool {
	for _, m := range ms {
		if m.Kind != lexicon.KindCountNoun || m.Start < trigger.End {
			continue
		}
		if coveredByKind(ms, m, lexicon.KindVideoMarker) {
			// the видео in "видео с id" names one video, it counts nothing
			continue
		}
		return !metricBetween(ms, trigger.End, m.Start)
	}
	return false
}

func metricBetween(ms []lexicon.Match, from, to int) bool {
	for _, m := range ms {
		if m.Kind == lexicon.KindMetric && m.Start >= from && m.End <= to {
			return true
		}
	}
	return false
}

// resolveScope prefers growth wording over snapshot wording; with neither
// the query reads final values
func resolveScope(ms []lexicon.Match) vocab.Scope {
	scope := vocab.ScopeFinal
	for _, m := range ms {
		if m.Kind != lexicon.KindScope {
			continue
		}
		if m.Key == string(vocab.ScopeDelta) {
			return vocab.ScopeDelta
		}
		scope = vocab.ScopeSnapshot
	}
	return scope
}

func hasKind(ms []lexicon.Match, kind lexicon.Kind) bool {
	for _, m := range ms {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// covers reports whether a strictly contains b
func covers(a, b lexicon.Match) bool {
	return a.Start <= b.Start && b.End <= a.End && a.Len() > b.Len()
}

func coveredByKind(ms []lexicon.Match, m lexicon.Match, kind lexicon.Kind) bool {
	for _, o := range ms {
		if o.Kind == kind && covers(o, m) {
			return true
		}
	}
	return false
}
