// Package repo executes compiled scalar plans against the backing stores
package repo

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"vidtally/internal/core/dsl"
	"vidtally/internal/core/sqlgen"
	"vidtally/internal/core/vocab"
	perr "vidtally/internal/platform/errors"
	"vidtally/internal/platform/store"
)

// Scalar runs compiled scalar plans with a per query deadline.
// Snapshot scoped queries route to ClickHouse when a client is wired,
// everything else reads Postgres
type Scalar struct {
	PG      store.RowQuerier
	CH      store.Clickhouse
	Timeout time.Duration
}

// NewScalar constructs the evaluator; chdb may be nil
func NewScalar(pg store.RowQuerier, chdb store.Clickhouse, timeout time.Duration) *Scalar {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scalar{PG: pg, CH: chdb, Timeout: timeout}
}

// Eval compiles q for the chosen backend, runs it, and scans the one value.
// Zero rows and NULL results both read as 0
func (s *Scalar) Eval(ctx context.Context, q dsl.Query) (int64, error) {
	d := sqlgen.DialectPostgres
	if s.CH != nil && q.Scope != vocab.ScopeFinal {
		d = sqlgen.DialectClickHouse
	}

	plan, err := sqlgen.Compile(q, d)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if d == sqlgen.DialectClickHouse {
		return s.evalCH(ctx, q, plan)
	}
	return s.evalPG(ctx, q, plan)
}

func (s *Scalar) evalPG(ctx context.Context, q dsl.Query, plan sqlgen.Plan) (int64, error) {
	row := s.PG.QueryRow(ctx, plan.SQL, plan.Args...)
	v, err := scanScalar(row, q.Aggregation)
	if errors.Is(err, pgx.ErrNoRows) {
		// latest over an empty window
		return 0, nil
	}
	if err != nil {
		return 0, perr.FromPostgres(err, "scalar query failed")
	}
	return v, nil
}

func (s *Scalar) evalCH(ctx context.Context, q dsl.Query, plan sqlgen.Plan) (int64, error) {
	rows, err := s.CH.Query(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeDB, "clickhouse scalar query failed")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, perr.Wrapf(err, perr.ErrorCodeDB, "clickhouse scalar query failed")
		}
		return 0, nil
	}
	v, err := scanScalar(rows, q.Aggregation)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeDB, "clickhouse scalar scan failed")
	}
	return v, nil
}

// scanScalar reads the single result column with a destination matching the
// aggregate's wire type: avg arrives as a float, count as unsigned on
// ClickHouse, everything else as a signed integer
func scanScalar(row store.Row, agg vocab.Aggregation) (int64, error) {
	switch agg {
	case vocab.AggAvg:
		var v float64
		if err := row.Scan(&v); err != nil {
			return 0, err
		}
		// ClickHouse reports avg over zero rows as NaN
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nil
		}
		return int64(v), nil
	case vocab.AggCount:
		var v uint64
		if err := row.Scan(&v); err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			return math.MaxInt64, nil
		}
		return int64(v), nil
	default:
		var v int64
		if err := row.Scan(&v); err != nil {
			return 0, err
		}
		return v, nil
	}
}
