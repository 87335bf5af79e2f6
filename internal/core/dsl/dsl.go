// Package dsl defines the validated query value that parsing strategies
// produce and the SQL compiler consumes. A Query is immutable once built:
// helpers hand out copies, never views into shared state
package dsl

import (
	"time"

	"vidtally/internal/core/vocab"
)

// Range is a half-open UTC time window [Start, End).
// Start == End is a valid empty window
type Range struct {
	Start time.Time
	End   time.Time
}

// Threshold is a count filter like "more than 1000000"
type Threshold struct {
	Cmp   vocab.Comparator
	Value int64
}

// Query is one fully resolved analytics question
type Query struct {
	Metric      vocab.Metric
	Aggregation vocab.Aggregation
	Scope       vocab.Scope
	TimeRange   *Range
	CreatorID   string
	VideoID     string
	Threshold   *Threshold
	Distinct    bool
}

// Normalized returns a copy with defaults applied: an unset scope becomes
// final and range bounds are pinned to UTC
func (q Query) Normalized() Query {
	out := q.Clone()
	if out.Scope == "" {
		out.Scope = vocab.ScopeFinal
	}
	if out.TimeRange != nil {
		out.TimeRange.Start = out.TimeRange.Start.UTC()
		out.TimeRange.End = out.TimeRange.End.UTC()
	}
	return out
}

// Clone returns a deep copy; pointer fields are duplicated so the copy
// shares nothing with the original
func (q Query) Clone() Query {
	out := q
	if q.TimeRange != nil {
		r := *q.TimeRange
		out.TimeRange = &r
	}
	if q.Threshold != nil {
		th := *q.Threshold
		out.Threshold = &th
	}
	return out
}

// Equal reports semantic equality, comparing time bounds with time.Equal
func (q Query) Equal(o Query) bool {
	if q.Metric != o.Metric ||
		q.Aggregation != o.Aggregation ||
		q.Scope != o.Scope ||
		q.CreatorID != o.CreatorID ||
		q.VideoID != o.VideoID ||
		q.Distinct != o.Distinct {
		return false
	}
	switch {
	case q.TimeRange == nil && o.TimeRange != nil,
		q.TimeRange != nil && o.TimeRange == nil:
		return false
	case q.TimeRange != nil:
		if !q.TimeRange.Start.Equal(o.TimeRange.Start) || !q.TimeRange.End.Equal(o.TimeRange.End) {
			return false
		}
	}
	switch {
	case q.Threshold == nil && o.Threshold != nil,
		q.Threshold != nil && o.Threshold == nil:
		return false
	case q.Threshold != nil:
		if q.Threshold.Cmp != o.Threshold.Cmp || q.Threshold.Value != o.Threshold.Value {
			return false
		}
	}
	return true
}

// Sentinel returns the guaranteed-parse fallback query. Its compiled form,
// count(*) over videos with views_count < 0, counts zero rows, so the user
// sees the answer 0
func Sentinel() Query {
	return Query{
		Metric:      vocab.MetricViews,
		Aggregation: vocab.AggCount,
		Scope:       vocab.ScopeFinal,
		Threshold:   &Threshold{Cmp: vocab.CmpLT, Value: 0},
	}
}
