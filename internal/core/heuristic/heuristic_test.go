package heuristic

import (
	"testing"
	"time"

	"vidtally/internal/core/dsl"
	"vidtally/internal/core/vocab"

	perr "vidtally/internal/platform/errors"
)

var testNow = time.Date(2025, 11, 6, 15, 30, 0, 0, time.UTC)

func mustParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewWithClock(func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("NewWithClock: %v", err)
	}
	return p
}

func TestParse_CreatorWeekQuestion(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("Сколько всего просмотров у видео creator123 за последнюю неделю?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := dsl.Query{
		Metric:      vocab.MetricViews,
		Aggregation: vocab.AggSum,
		Scope:       vocab.ScopeFinal,
		CreatorID:   "creator123",
		TimeRange:   &dsl.Range{Start: testNow.AddDate(0, 0, -7), End: testNow},
	}
	if !got.Equal(want) {
		t.Fatalf("query mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got.VideoID != "" {
		t.Fatalf("creator-prefixed token must become a creator filter, got video %q", got.VideoID)
	}
}

func TestParse_CountWithThreshold(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("How many videos have more than 1000000 likes?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := dsl.Query{
		Metric:      vocab.MetricLikes,
		Aggregation: vocab.AggCount,
		Scope:       vocab.ScopeFinal,
		Threshold:   &dsl.Threshold{Cmp: vocab.CmpGT, Value: 1000000},
	}
	if !got.Equal(want) {
		t.Fatalf("query mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_CountDefaultsToViews(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("Сколько всего видео?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Aggregation != vocab.AggCount {
		t.Fatalf("aggregation = %q, want count", got.Aggregation)
	}
	if got.Metric != vocab.MetricViews {
		t.Fatalf("counting videos with no metric must default to views, got %q", got.Metric)
	}
	if got.Threshold != nil {
		t.Fatalf("unexpected threshold %+v", got.Threshold)
	}
}

func TestParse_Unparsable(t *testing.T) {
	p := mustParser(t)

	for _, q := range []string{
		"",
		"???",
		"фыва олдж",
		"tell me a story",
		"за последние 7 дней",
	} {
		t.Run(q, func(t *testing.T) {
			got, err := p.Parse(q)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", q, got)
			}
			if !perr.IsCode(err, perr.ErrorCodeUnparsable) {
				t.Fatalf("Parse(%q) error code = %v, want unparsable", q, perr.CodeOf(err))
			}
		})
	}
}

func TestParse_AggregationRules(t *testing.T) {
	p := mustParser(t)

	tests := []struct {
		q      string
		metric vocab.Metric
		agg    vocab.Aggregation
	}{
		// a count trigger followed by a metric asks for an amount
		{"минимальное количество просмотров", vocab.MetricViews, vocab.AggMin},
		{"какое максимальное число лайков за замер", vocab.MetricLikes, vocab.AggMax},
		{"сколько в среднем комментариев у видео", vocab.MetricComments, vocab.AggAvg},
		// the noun right after the trigger counts videos
		{"сколько роликов набрали больше 1 000 лайков", vocab.MetricLikes, vocab.AggCount},
		// no keyword at all defaults to sum
		{"просмотры за сегодня", vocab.MetricViews, vocab.AggSum},
		// comparator phrasing must not read as an aggregation
		{"сколько видео с как минимум 10 жалобами", vocab.MetricReports, vocab.AggCount},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			got, err := p.Parse(tc.q)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.q, err)
			}
			if got.Metric != tc.metric || got.Aggregation != tc.agg {
				t.Fatalf("Parse(%q) = %s/%s, want %s/%s",
					tc.q, got.Metric, got.Aggregation, tc.metric, tc.agg)
			}
		})
	}
}

func TestParse_ScopeRules(t *testing.T) {
	p := mustParser(t)

	tests := []struct {
		q     string
		scope vocab.Scope
	}{
		{"сколько новых просмотров сегодня", vocab.ScopeDelta},
		{"средний прирост лайков за замер", vocab.ScopeDelta}, // growth wording wins
		{"максимальный замер просмотров", vocab.ScopeSnapshot},
		{"сколько просмотров", vocab.ScopeFinal},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			got, err := p.Parse(tc.q)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.q, err)
			}
			if got.Scope != tc.scope {
				t.Fatalf("Parse(%q) scope = %q, want %q", tc.q, got.Scope, tc.scope)
			}
		})
	}
}

func TestParse_LatestCurrentValue(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("сколько сейчас лайков у видео с id 2b6f34f1-7a1f-4c89-b0e6-0f54d86b2f11")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := dsl.Query{
		Metric:      vocab.MetricLikes,
		Aggregation: vocab.AggLatest,
		Scope:       vocab.ScopeFinal,
		VideoID:     "2b6f34f1-7a1f-4c89-b0e6-0f54d86b2f11",
	}
	if !got.Equal(want) {
		t.Fatalf("query mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_DistinctCount(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("сколько разных видео выросло по просмотрам вчера")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dayStart := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	want := dsl.Query{
		Metric:      vocab.MetricViews,
		Aggregation: vocab.AggCount,
		Scope:       vocab.ScopeDelta,
		Distinct:    true,
		TimeRange:   &dsl.Range{Start: dayStart.AddDate(0, 0, -1), End: dayStart},
	}
	if !got.Equal(want) {
		t.Fatalf("query mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_CreatorMarkerPointsAtToken(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("сколько жалоб у креатора 9f3a1c2b за последние 3 дня")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := dsl.Query{
		Metric:      vocab.MetricReports,
		Aggregation: vocab.AggSum,
		Scope:       vocab.ScopeFinal,
		CreatorID:   "9f3a1c2b",
		TimeRange:   &dsl.Range{Start: testNow.AddDate(0, 0, -3), End: testNow},
	}
	if !got.Equal(want) {
		t.Fatalf("query mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestParse_CreatorMarkerWithoutID(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("сколько просмотров у креатора за последнюю неделю")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.CreatorID != "" {
		t.Fatalf("date words after the marker must not become an id, got %q", got.CreatorID)
	}
}

func TestParse_NegatedComparator(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("сколько видео набрало не больше 5000 просмотров")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Aggregation != vocab.AggCount {
		t.Fatalf("aggregation = %q, want count", got.Aggregation)
	}
	if got.Threshold == nil {
		t.Fatal("missing threshold")
	}
	if got.Threshold.Cmp != vocab.CmpLTE || got.Threshold.Value != 5000 {
		t.Fatalf("threshold = %+v, want lte 5000", got.Threshold)
	}
}

func TestParse_ThresholdOnlyWithCount(t *testing.T) {
	p := mustParser(t)

	got, err := p.Parse("в среднем больше 100 лайков за замер")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Aggregation != vocab.AggAvg {
		t.Fatalf("aggregation = %q, want avg", got.Aggregation)
	}
	if got.Threshold != nil {
		t.Fatalf("comparator outside a count question must be dropped, got %+v", got.Threshold)
	}
}

func TestParse_GroupedThresholdDigits(t *testing.T) {
	p := mustParser(t)

	tests := []struct {
		q     string
		cmp   vocab.Comparator
		value int64
	}{
		{"сколько видео набрало больше 1 000 000 просмотров", vocab.CmpGT, 1000000},
		{"how many videos have at least 2,500,000 views", vocab.CmpGTE, 2500000},
		{"how many videos have under 10_000 comments", vocab.CmpLT, 10000},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			got, err := p.Parse(tc.q)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.q, err)
			}
			if got.Threshold == nil {
				t.Fatalf("Parse(%q): missing threshold", tc.q)
			}
			if got.Threshold.Cmp != tc.cmp || got.Threshold.Value != tc.value {
				t.Fatalf("Parse(%q) threshold = %+v, want %s %d", tc.q, got.Threshold, tc.cmp, tc.value)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := mustParser(t)

	const q = "Сколько всего просмотров у видео creator123 за последнюю неделю?"
	first, err := p.Parse(q)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := p.Parse(q)
		if err != nil {
			t.Fatalf("Parse #%d: %v", i, err)
		}
		if !again.Equal(*first) {
			t.Fatalf("Parse #%d diverged:\n got %+v\nwant %+v", i, again, first)
		}
	}
}

func TestParse_ResultValidates(t *testing.T) {
	p := mustParser(t)

	for _, q := range []string{
		"сколько видео набрало больше 100 лайков за последние 2 дня",
		"how many distinct videos gained views yesterday",
		"пиковое число просмотров за замер у видео с id abc123",
	} {
		t.Run(q, func(t *testing.T) {
			got, err := p.Parse(q)
			if err != nil {
				t.Fatalf("Parse(%q): %v", q, err)
			}
			if err := dsl.Validate(*got); err != nil {
				t.Fatalf("Parse(%q) produced an invalid query: %v", q, err)
			}
		})
	}
}
