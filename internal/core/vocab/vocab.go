// Package vocab pins the closed question vocabulary to real schema identifiers.
// Parsers validate against these sets and the SQL compiler consults only these
// mappings when emitting identifiers, so user text can never reach SQL as an
// identifier
package vocab

// Metric is a countable video measure
type Metric string

// Metric values
const (
	MetricViews    Metric = "views"
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
	MetricReports  Metric = "reports"
)

// Aggregation names the scalar reduction applied to a metric
type Aggregation string

// Aggregation values
const (
	AggSum    Aggregation = "sum"
	AggAvg    Aggregation = "avg"
	AggMax    Aggregation = "max"
	AggMin    Aggregation = "min"
	AggCount  Aggregation = "count"
	AggLatest Aggregation = "latest"
)

// Scope selects which table a query reads and how metric columns resolve
type Scope string

// Scope values
const (
	// ScopeFinal reads current totals from videos
	ScopeFinal Scope = "final"
	// ScopeDelta reads per-snapshot changes from video_snapshots
	ScopeDelta Scope = "delta"
	// ScopeSnapshot reads absolute values at measurement time from video_snapshots
	ScopeSnapshot Scope = "snapshot"
)

// Comparator is a threshold comparison in wire spelling
type Comparator string

// Comparator values
const (
	CmpGT  Comparator = "gt"
	CmpGTE Comparator = "gte"
	CmpLT  Comparator = "lt"
	CmpLTE Comparator = "lte"
)

var finalColumns = map[Metric]string{
	MetricViews:    "views_count",
	MetricLikes:    "likes_count",
	MetricComments: "comments_count",
	MetricReports:  "reports_count",
}

var snapshotColumns = map[Metric]string{
	MetricViews:    "views_count",
	MetricLikes:    "likes_count",
	MetricComments: "comments_count",
	MetricReports:  "reports_count",
}

var deltaColumns = map[Metric]string{
	MetricViews:    "delta_views_count",
	MetricLikes:    "delta_likes_count",
	MetricComments: "delta_comments_count",
	MetricReports:  "delta_reports_count",
}

var comparatorSQL = map[Comparator]string{
	CmpGT:  ">",
	CmpGTE: ">=",
	CmpLT:  "<",
	CmpLTE: "<=",
}

// ParseMetric accepts only the closed metric set
func ParseMetric(s string) (Metric, bool) {
	m := Metric(s)
	_, ok := finalColumns[m]
	return m, ok
}

// ParseAggregation accepts only the closed aggregation set
func ParseAggregation(s string) (Aggregation, bool) {
	switch a := Aggregation(s); a {
	case AggSum, AggAvg, AggMax, AggMin, AggCount, AggLatest:
		return a, true
	default:
		return "", false
	}
}

// ParseScope accepts only the closed scope set
func ParseScope(s string) (Scope, bool) {
	switch sc := Scope(s); sc {
	case ScopeFinal, ScopeDelta, ScopeSnapshot:
		return sc, true
	default:
		return "", false
	}
}

// ParseComparator accepts only the closed comparator set
func ParseComparator(s string) (Comparator, bool) {
	c := Comparator(s)
	_, ok := comparatorSQL[c]
	return c, ok
}

// Column resolves the metric to the column read under the given scope
func (m Metric) Column(s Scope) (string, bool) {
	switch s {
	case ScopeFinal:
		col, ok := finalColumns[m]
		return col, ok
	case ScopeSnapshot:
		col, ok := snapshotColumns[m]
		return col, ok
	case ScopeDelta:
		col, ok := deltaColumns[m]
		return col, ok
	default:
		return "", false
	}
}

// FinalColumn resolves the metric to its videos column
func (m Metric) FinalColumn() (string, bool) {
	col, ok := finalColumns[m]
	return col, ok
}

// SnapshotColumn resolves the metric to its absolute video_snapshots column
func (m Metric) SnapshotColumn() (string, bool) {
	col, ok := snapshotColumns[m]
	return col, ok
}

// DeltaColumn resolves the metric to its per-snapshot change column
func (m Metric) DeltaColumn() (string, bool) {
	col, ok := deltaColumns[m]
	return col, ok
}

// Table resolves the scope to the table it reads
func (s Scope) Table() (string, bool) {
	switch s {
	case ScopeFinal:
		return "videos", true
	case ScopeDelta, ScopeSnapshot:
		return "video_snapshots", true
	default:
		return "", false
	}
}

// TimeColumn resolves the scope to the column range filters apply to.
// Final scope filters on when the video was published, snapshot scopes on
// when the measurement was taken
func (s Scope) TimeColumn() (string, bool) {
	switch s {
	case ScopeFinal:
		return "video_created_at", true
	case ScopeDelta, ScopeSnapshot:
		return "created_at", true
	default:
		return "", false
	}
}

// KeyColumn resolves the scope to the column identifying the video a row
// belongs to: rows of videos are videos, snapshot rows reference one.
// Video filters and distinct counts both go through it
func (s Scope) KeyColumn() (string, bool) {
	switch s {
	case ScopeFinal:
		return "id", true
	case ScopeDelta, ScopeSnapshot:
		return "video_id", true
	default:
		return "", false
	}
}

// SQL renders the comparator as its SQL operator
func (c Comparator) SQL() (string, bool) {
	op, ok := comparatorSQL[c]
	return op, ok
}

// Metrics returns the closed metric set in stable order
func Metrics() []Metric {
	return []Metric{MetricViews, MetricLikes, MetricComments, MetricReports}
}

// Aggregations returns the closed aggregation set in stable order
func Aggregations() []Aggregation {
	return []Aggregation{AggSum, AggAvg, AggMax, AggMin, AggCount, AggLatest}
}
