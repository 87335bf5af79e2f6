package heuristic

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"vidtally/internal/core/dsl"
)

// month stems accept Russian case endings and English full or short names
var monthStems = []struct {
	stem string
	m    time.Month
}{
	{"янв", time.January}, {"jan", time.January},
	{"фев", time.February}, {"feb", time.February},
	{"мар", time.March}, {"mar", time.March},
	{"апр", time.April}, {"apr", time.April},
	{"мая", time.May}, {"май", time.May}, {"may", time.May},
	{"июн", time.June}, {"jun", time.June},
	{"июл", time.July}, {"jul", time.July},
	{"авг", time.August}, {"aug", time.August},
	{"сен", time.September}, {"sep", time.September},
	{"окт", time.October}, {"oct", time.October},
	{"ноя", time.November}, {"nov", time.November},
	{"дек", time.December}, {"dec", time.December},
}

func monthOf(tok string) (time.Month, bool) {
	for _, ms := range monthStems {
		if strings.HasPrefix(tok, ms.stem) {
			return ms.m, true
		}
	}
	return 0, false
}

var (
	reFromTo = regexp.MustCompile(`(?:^|\s)(?:с|со|from)\s+` +
		`(\d{4}-\d{2}-\d{2}|\d{1,2}(?:\s+\p{L}+)?(?:\s+\d{4})?)` +
		`\s+(?:по|до|to|till|until)\s+` +
		`(\d{4}-\d{2}-\d{2}|\d{1,2}(?:\s+\p{L}+)?(?:\s+\d{4})?)` +
		`(\s+(?:включительно|inclusive))?`)
	reLastN    = regexp.MustCompile(`(?:за\s+последни\p{L}*|last|past|in\s+the\s+last)\s+(\d+)\s+(\p{L}+)`)
	reISO      = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	reDayMonth = regexp.MustCompile(`(?:^|\s)(\d{1,2})\b\s+(\p{L}+)(?:\s+(\d{4})\b)?`)
	reMonthDay = regexp.MustCompile(`(?:^|\s)(\p{L}+)\s+(\d{1,2})\b(?:\s+(\d{4})\b)?`)
)

// resolveRange extracts at most one UTC time range from the question.
// More specific phrasings are tried first; with nothing recognized the
// query carries no range at all
func resolveRange(norm string, now time.Time) *dsl.Range {
	now = now.UTC()

	if r := rangeFromTo(norm, now); r != nil {
		return r
	}
	if r := rangeLastN(norm, now); r != nil {
		return r
	}
	if containsAny(norm, "за последнюю неделю", "за прошлую неделю", "last week", "past week") {
		return &dsl.Range{Start: now.AddDate(0, 0, -7), End: now}
	}
	if containsAny(norm, "вчера", "yesterday") {
		ds := dayStartOf(now)
		return &dsl.Range{Start: ds.AddDate(0, 0, -1), End: ds}
	}
	if containsAny(norm, "сегодня", "today") {
		return &dsl.Range{Start: dayStartOf(now), End: now}
	}
	if containsAny(norm, "на этой неделе", "этой неделе", "this week") {
		wd := int(now.Weekday())
		if wd == 0 {
			wd = 7
		}
		monday := dayStartOf(now).AddDate(0, 0, -(wd - 1))
		return &dsl.Range{Start: monday, End: now}
	}
	return rangeSingleDay(norm, now)
}

type dayExpr struct {
	day   int
	month time.Month
	year  int
}

// parseDayExpr reads "2025-11-28", "28 ноября 2025", "28 ноября" or "28";
// missing parts stay zero for the caller to borrow
func parseDayExpr(s string) (dayExpr, bool) {
	s = strings.TrimSpace(s)
	if m := reISO.FindStringSubmatch(s); m != nil && len(m[0]) == len(s) {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo < 1 || mo > 12 || d < 1 || d > 31 {
			return dayExpr{}, false
		}
		return dayExpr{day: d, month: time.Month(mo), year: y}, true
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return dayExpr{}, false
	}
	d, err := strconv.Atoi(fields[0])
	if err != nil || d < 1 || d > 31 {
		return dayExpr{}, false
	}
	e := dayExpr{day: d}
	for _, f := range fields[1:] {
		if mo, ok := monthOf(f); ok && e.month == 0 {
			e.month = mo
			continue
		}
		if y, err := strconv.Atoi(f); err == nil && y >= 2000 && y <= 2100 && e.year == 0 {
			e.year = y
			continue
		}
		return dayExpr{}, false
	}
	return e, true
}

// rangeFromTo handles "с X по Y [включительно]" / "from X to Y [inclusive]".
// The right bound anchors: a bare day on the left borrows its month and year
func rangeFromTo(norm string, now time.Time) *dsl.Range {
	m := reFromTo.FindStringSubmatch(norm)
	if m == nil {
		return nil
	}
	right, ok := parseDayExpr(m[2])
	if !ok || right.month == 0 {
		return nil
	}
	if right.year == 0 {
		right.year = now.Year()
	}
	left, ok := parseDayExpr(m[1])
	if !ok {
		return nil
	}
	if left.month == 0 {
		left.month = right.month
	}
	if left.year == 0 {
		left.year = right.year
	}

	start := time.Date(left.year, left.month, left.day, 0, 0, 0, 0, time.UTC)
	end := time.Date(right.year, right.month, right.day, 0, 0, 0, 0, time.UTC)
	if m[3] != "" {
		end = end.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return nil
	}
	return &dsl.Range{Start: start, End: end}
}

// rangeLastN handles "за последние N дней|часов" / "last N days|hours"
func rangeLastN(norm string, now time.Time) *dsl.Range {
	m := reLastN.FindStringSubmatch(norm)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 || n > 100000 {
		return nil
	}
	switch unit := m[2]; {
	case strings.HasPrefix(unit, "дн") || strings.HasPrefix(unit, "ден") || strings.HasPrefix(unit, "day"):
		return &dsl.Range{Start: now.AddDate(0, 0, -n), End: now}
	case strings.HasPrefix(unit, "час") || strings.HasPrefix(unit, "hour") || strings.HasPrefix(unit, "hr"):
		return &dsl.Range{Start: now.Add(-time.Duration(n) * time.Hour), End: now}
	default:
		return nil
	}
}

// rangeSingleDay handles a lone date mention: ISO, "28 ноября [2025]" or
// "november 28 [2025]". A single day covers [day, next day)
func rangeSingleDay(norm string, now time.Time) *dsl.Range {
	if m := reISO.FindStringSubmatch(norm); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return dayRange(y, time.Month(mo), d)
		}
	}

	for _, m := range reDayMonth.FindAllStringSubmatch(norm, -1) {
		mo, ok := monthOf(m[2])
		if !ok {
			continue
		}
		d, _ := strconv.Atoi(m[1])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return dayRange(year, mo, d)
	}

	for _, m := range reMonthDay.FindAllStringSubmatch(norm, -1) {
		mo, ok := monthOf(m[1])
		if !ok {
			continue
		}
		d, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return dayRange(year, mo, d)
	}
	return nil
}

func dayRange(y int, m time.Month, d int) *dsl.Range {
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &dsl.Range{Start: start, End: start.AddDate(0, 0, 1)}
}

func dayStartOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
