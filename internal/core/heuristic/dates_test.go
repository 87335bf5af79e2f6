package heuristic

import (
	"testing"
	"time"

	"vidtally/internal/core/dsl"
)

func TestResolveRange_Forms(t *testing.T) {
	// Thursday afternoon, so the ISO week starts Monday Nov 3
	now := time.Date(2025, 11, 6, 15, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		q    string
		want *dsl.Range
	}{
		{"ru last n days", "за последние 7 дней", &dsl.Range{Start: now.AddDate(0, 0, -7), End: now}},
		{"en last n hours", "last 24 hours", &dsl.Range{Start: now.Add(-24 * time.Hour), End: now}},
		{"en in the last", "in the last 90 days", &dsl.Range{Start: now.AddDate(0, 0, -90), End: now}},
		{"ru last week", "за последнюю неделю", &dsl.Range{Start: now.AddDate(0, 0, -7), End: now}},
		{"en last week", "last week", &dsl.Range{Start: now.AddDate(0, 0, -7), End: now}},
		{"ru yesterday", "вчера", &dsl.Range{Start: day(2025, 11, 5), End: day(2025, 11, 6)}},
		{"en yesterday", "yesterday", &dsl.Range{Start: day(2025, 11, 5), End: day(2025, 11, 6)}},
		{"ru today", "сегодня", &dsl.Range{Start: day(2025, 11, 6), End: now}},
		{"en today", "today", &dsl.Range{Start: day(2025, 11, 6), End: now}},
		{"ru this week", "на этой неделе", &dsl.Range{Start: day(2025, 11, 3), End: now}},
		{"en this week", "this week", &dsl.Range{Start: day(2025, 11, 3), End: now}},
		{"iso day", "2025-11-28", &dsl.Range{Start: day(2025, 11, 28), End: day(2025, 11, 29)}},
		{"ru month name", "28 ноября 2025", &dsl.Range{Start: day(2025, 11, 28), End: day(2025, 11, 29)}},
		{"en month first", "november 28 2025", &dsl.Range{Start: day(2025, 11, 28), End: day(2025, 11, 29)}},
		{"ru day month no year", "5 мая", &dsl.Range{Start: day(2025, 5, 5), End: day(2025, 5, 6)}},
		{"ru from to", "с 1 по 5 ноября 2025", &dsl.Range{Start: day(2025, 11, 1), End: day(2025, 11, 5)}},
		{"ru from to inclusive", "с 1 по 5 ноября 2025 включительно", &dsl.Range{Start: day(2025, 11, 1), End: day(2025, 11, 6)}},
		{"iso from to", "from 2025-06-01 to 2025-07-01", &dsl.Range{Start: day(2025, 6, 1), End: day(2025, 7, 1)}},
		{"iso from to inclusive", "с 2025-06-01 по 2025-07-01 включительно", &dsl.Range{Start: day(2025, 6, 1), End: day(2025, 7, 2)}},
		{"left borrows month and year", "с 28 октября по 3 ноября", &dsl.Range{Start: day(2025, 10, 28), End: day(2025, 11, 3)}},
		{"no date", "сколько просмотров", nil},
		{"number is not a date", "больше 5 тысяч просмотров", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveRange(tc.q, now)
			switch {
			case got == nil && tc.want == nil:
				return
			case got == nil || tc.want == nil:
				t.Fatalf("resolveRange(%q) = %+v, want %+v", tc.q, got, tc.want)
			}
			if !got.Start.Equal(tc.want.Start) || !got.End.Equal(tc.want.End) {
				t.Fatalf("resolveRange(%q) = [%v, %v), want [%v, %v)",
					tc.q, got.Start, got.End, tc.want.Start, tc.want.End)
			}
			if got.Start.Location() != time.UTC || got.End.Location() != time.UTC {
				t.Fatalf("resolveRange(%q) bounds not UTC", tc.q)
			}
		})
	}
}

func TestResolveRange_RelativeFormsTrackClock(t *testing.T) {
	a := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	b := a.Add(26 * time.Hour)

	ra := resolveRange("за последние 2 дня", a)
	rb := resolveRange("за последние 2 дня", b)
	if ra == nil || rb == nil {
		t.Fatal("relative range missing")
	}
	if !rb.End.Equal(b) || !rb.Start.Equal(b.AddDate(0, 0, -2)) {
		t.Fatalf("range did not follow the clock: [%v, %v)", rb.Start, rb.End)
	}
	if rb.Start.Equal(ra.Start) {
		t.Fatal("two clock readings produced the same window")
	}
}

func TestAmountAfter(t *testing.T) {
	tests := []struct {
		s    string
		pos  int
		want int64
		ok   bool
	}{
		{"больше 1 000 000 просмотров", 0, 1000000, true},
		{"more than 1,000,000", 0, 1000000, true},
		{"at least 5_000", 0, 5000, true},
		{"under 42 views", 0, 42, true},
		{"no digits here", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range tests {
		got, ok := amountAfter(tc.s, tc.pos)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("amountAfter(%q, %d) = %d, %v; want %d, %v", tc.s, tc.pos, got, ok, tc.want, tc.ok)
		}
	}
}
