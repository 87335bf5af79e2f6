// Package sqlgen compiles validated DSL queries into parameterized SQL.
// Compilation is pure: same query and dialect always render the same plan,
// identifiers come only from vocab lookups, every runtime value binds as a
// placeholder
package sqlgen

import (
	"fmt"
	"strings"

	"vidtally/internal/core/dsl"
	"vidtally/internal/core/vocab"
	perr "vidtally/internal/platform/errors"
)

// Dialect selects the placeholder style of the target database
type Dialect string

const (
	// DialectPostgres numbers placeholders $1..$n
	DialectPostgres Dialect = "postgres"
	// DialectClickHouse binds positionally with ?
	DialectClickHouse Dialect = "clickhouse"
)

// Plan is a compiled query: one statement, bound args, one scalar out
type Plan struct {
	SQL  string
	Args []any
}

// Compile renders q for the dialect.
// Filters append in fixed order: creator, video, range start, range end,
// threshold. Absent filters are omitted entirely
func Compile(q dsl.Query, d Dialect) (Plan, error) {
	switch d {
	case DialectPostgres, DialectClickHouse:
	default:
		return Plan{}, perr.Compilef("unknown dialect %q", d)
	}

	table, ok := q.Scope.Table()
	if !ok {
		return Plan{}, perr.Compilef("scope %q resolves no table", q.Scope)
	}
	timeCol, ok := q.Scope.TimeColumn()
	if !ok {
		return Plan{}, perr.Compilef("scope %q resolves no time column", q.Scope)
	}
	col, ok := q.Metric.Column(q.Scope)
	if !ok {
		return Plan{}, perr.Compilef("metric %q has no column in scope %q", q.Metric, q.Scope)
	}

	var head, tail string
	switch q.Aggregation {
	case vocab.AggSum, vocab.AggAvg, vocab.AggMax, vocab.AggMin:
		head = fmt.Sprintf("SELECT COALESCE(%s(%s), 0) FROM %s", string(q.Aggregation), col, table)
	case vocab.AggCount:
		if q.Distinct {
			key, ok := q.Scope.KeyColumn()
			if !ok {
				return Plan{}, perr.Compilef("scope %q resolves no key column", q.Scope)
			}
			head = fmt.Sprintf("SELECT count(DISTINCT %s) FROM %s", key, table)
		} else {
			head = fmt.Sprintf("SELECT count(*) FROM %s", table)
		}
	case vocab.AggLatest:
		head = fmt.Sprintf("SELECT %s FROM %s", col, table)
		tail = fmt.Sprintf(" ORDER BY %s DESC LIMIT 1", timeCol)
	default:
		return Plan{}, perr.Compilef("unknown aggregation %q", q.Aggregation)
	}

	args := argList{dialect: d}
	var where []string

	if q.CreatorID != "" {
		ph := args.bind(q.CreatorID)
		if q.Scope == vocab.ScopeFinal {
			where = append(where, "creator_id = "+ph)
		} else {
			// snapshot rows carry no creator; filter through the owning video
			where = append(where, "video_id IN (SELECT id FROM videos WHERE creator_id = "+ph+")")
		}
	}
	if q.VideoID != "" {
		key, ok := q.Scope.KeyColumn()
		if !ok {
			return Plan{}, perr.Compilef("scope %q resolves no key column", q.Scope)
		}
		where = append(where, key+" = "+args.bind(q.VideoID))
	}
	if q.TimeRange != nil {
		where = append(where, timeCol+" >= "+args.bind(q.TimeRange.Start))
		where = append(where, timeCol+" < "+args.bind(q.TimeRange.End))
	}
	if q.Threshold != nil {
		op, ok := q.Threshold.Cmp.SQL()
		if !ok {
			return Plan{}, perr.Compilef("unknown comparator %q", q.Threshold.Cmp)
		}
		where = append(where, col+" "+op+" "+args.bind(q.Threshold.Value))
	}

	var sb strings.Builder
	sb.WriteString(head)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(tail)

	return Plan{SQL: sb.String(), Args: args.args}, nil
}

// argList numbers placeholders while collecting bound values.
// The dialect is validated before any bind call
type argList struct {
	dialect Dialect
	args    []any
}

func (a *argList) bind(v any) string {
	a.args = append(a.args, v)
	if a.dialect == DialectClickHouse {
		return "?"
	}
	return fmt.Sprintf("$%d", len(a.args))
}
