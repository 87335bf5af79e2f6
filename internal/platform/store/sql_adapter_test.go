package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRowStub implements pgx.Row
type pgxRowStub struct {
	scan func(dest ...any) error
}

func (r *pgxRowStub) Scan(dest ...any) error {
	if r.scan != nil {
		return r.scan(dest...)
	}
	return nil
}

// pgxRowsStub implements pgx.Rows
type pgxRowsStub struct {
	fields []pgconn.FieldDescription
	data   [][]any
	idx    int
	err    error
	closed bool
	ct     pgconn.CommandTag
}

func pgxRowsOf(cols []string, data [][]any) *pgxRowsStub {
	fds := make([]pgconn.FieldDescription, len(cols))
	for i, c := range cols {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return &pgxRowsStub{fields: fds, data: data, idx: -1}
}

func (r *pgxRowsStub) Conn() *pgx.Conn { return nil }

func (r *pgxRowsStub) Close()                        { r.closed = true }
func (r *pgxRowsStub) Err() error                    { return r.err }
func (r *pgxRowsStub) CommandTag() pgconn.CommandTag { return r.ct }
func (r *pgxRowsStub) FieldDescriptions() []pgconn.FieldDescription {
	return r.fields
}
func (r *pgxRowsStub) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx >= 0 && r.idx < len(r.data)
}
func (r *pgxRowsStub) RawValues() [][]byte { return nil }
func (r *pgxRowsStub) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.data) {
		return nil, errors.New("out of range")
	}
	return r.data[r.idx], nil
}
func (r *pgxRowsStub) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	return assignRow(dest, r.data[r.idx])
}

// pgxTxStub covers the pgx.Tx methods txQuerier calls; the rest error out
type pgxTxStub struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (f *pgxTxStub) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFn != nil {
		return f.execFn(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("OK"), nil
}
func (f *pgxTxStub) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, sql, args...)
	}
	return pgxRowsOf([]string{"n"}, [][]any{{1}}), nil
}
func (f *pgxTxStub) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.queryRowFn != nil {
		return f.queryRowFn(ctx, sql, args...)
	}
	return &pgxRowStub{scan: func(dest ...any) error {
		if len(dest) > 0 {
			if p, ok := dest[0].(*int); ok {
				*p = 7
			}
		}
		return nil
	}}
}

// interface filler
func (f *pgxTxStub) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (f *pgxTxStub) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *pgxTxStub) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (f *pgxTxStub) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}
func (f *pgxTxStub) Conn() *pgx.Conn              { return nil }
func (f *pgxTxStub) Commit(context.Context) error { return nil }
func (f *pgxTxStub) Rollback(context.Context) error { return nil }
func (f *pgxTxStub) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }

func TestTag_StringAndRowsAffected(t *testing.T) {
	t.Parallel()

	ct := pgconn.NewCommandTag("INSERT 0 1")
	tg := tag{}
	tg.t = ct

	if got := tg.String(); got != "INSERT 0 1" {
		t.Fatalf("tag.String mismatch got=%q", got)
	}
	if got := tg.RowsAffected(); got != 1 {
		t.Fatalf("tag.RowsAffected mismatch got=%d want=1", got)
	}
}

func TestRows_Columns_Next_Scan_Close(t *testing.T) {
	t.Parallel()

	fr := pgxRowsOf(
		[]string{"id", "creator_id"},
		[][]any{{"vid-1", "creator123"}, {"vid-2", "creator456"}},
	)
	rs := rows{r: fr}

	cols := rs.Columns()
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "creator_id" {
		t.Fatalf("Columns mismatch: %#v", cols)
	}

	var ids []string
	var creators []string
	for rs.Next() {
		var id string
		var creator string
		if err := rs.Scan(&id, &creator); err != nil {
			t.Fatalf("Scan error: %v", err)
		}
		ids = append(ids, id)
		creators = append(creators, creator)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows.Err: %v", err)
	}
	rs.Close()
	if !fr.closed {
		t.Fatalf("underlying rows not closed")
	}
	if !reflect.DeepEqual(ids, []string{"vid-1", "vid-2"}) ||
		!reflect.DeepEqual(creators, []string{"creator123", "creator456"}) {
		t.Fatalf("data mismatch ids=%v creators=%v", ids, creators)
	}
}

func TestRow_ScanDelegates(t *testing.T) {
	t.Parallel()

	r := row{r: &pgxRowStub{scan: func(dest ...any) error {
		if len(dest) != 1 {
			return errors.New("want 1")
		}
		if p, ok := dest[0].(*int64); ok {
			*p = 1000000
			return nil
		}
		return errors.New("bad type")
	}}}

	var n int64
	if err := r.Scan(&n); err != nil {
		t.Fatalf("row.Scan error: %v", err)
	}
	if n != 1000000 {
		t.Fatalf("row.Scan mismatch got=%d", n)
	}
}

func TestTxQuerier_Exec_Query_QueryRow(t *testing.T) {
	t.Parallel()

	fx := &pgxTxStub{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if sql != "update videos set views_count = $1 where id = $2" {
				return pgconn.NewCommandTag(""), errors.New("unexpected sql")
			}
			if len(args) != 2 || args[0] != 9 || args[1] != "vid-1" {
				return pgconn.NewCommandTag(""), errors.New("unexpected args")
			}
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
		queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			if sql != "select id, creator_id from videos where id = $1" || len(args) != 1 || args[0] != "vid-1" {
				return nil, errors.New("unexpected query")
			}
			return pgxRowsOf([]string{"id", "creator_id"}, [][]any{{"vid-1", "creator123"}}), nil
		},
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &pgxRowStub{scan: func(dest ...any) error {
				if len(dest) != 1 {
					return errors.New("want 1 dest")
				}
				if p, ok := dest[0].(*int); ok {
					*p = 42
					return nil
				}
				return errors.New("bad type")
			}}
		},
	}
	q := txQuerier{tx: fx}

	// Exec path
	ct, err := q.Exec(context.Background(), "update videos set views_count = $1 where id = $2", 9, "vid-1")
	if err != nil {
		t.Fatalf("txQuerier.Exec error: %v", err)
	}
	if ct.String() != "UPDATE 1" {
		t.Fatalf("CommandTag mismatch got=%q", ct.String())
	}
	if ct.RowsAffected() != 1 {
		t.Fatalf("RowsAffected mismatch got=%d", ct.RowsAffected())
	}

	// Query path
	rs, err := q.Query(context.Background(), "select id, creator_id from videos where id = $1", "vid-1")
	if err != nil {
		t.Fatalf("txQuerier.Query error: %v", err)
	}
	defer rs.Close()

	if gotCols := rs.Columns(); len(gotCols) != 2 || gotCols[0] != "id" || gotCols[1] != "creator_id" {
		t.Fatalf("Columns mismatch: %#v", gotCols)
	}
	if !rs.Next() {
		t.Fatalf("expected one row")
	}
	var id string
	var creator string
	if err := rs.Scan(&id, &creator); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if id != "vid-1" || creator != "creator123" {
		t.Fatalf("row mismatch id=%q creator=%q", id, creator)
	}
	if rs.Next() {
		t.Fatalf("unexpected extra row")
	}

	// QueryRow path
	var n int
	if err := q.QueryRow(context.Background(), "select 1").Scan(&n); err != nil {
		t.Fatalf("txQuerier.QueryRow scan: %v", err)
	}
	if n != 42 {
		t.Fatalf("QueryRow value mismatch got=%d", n)
	}
}

func TestRows_ScanErrorsAndErrPropagation(t *testing.T) {
	t.Parallel()

	{
		fr := pgxRowsOf([]string{"id", "creator_id"}, [][]any{{"vid-1", "x"}})
		rs := rows{r: fr}

		if !rs.Next() {
			t.Fatal("expected Next true")
		}
		var onlyOne string
		if err := rs.Scan(&onlyOne); err == nil {
			t.Fatal("expected dest len mismatch error")
		}
	}

	{
		fr := pgxRowsOf([]string{"n"}, [][]any{})
		fr.err = errors.New("boom")

		rs := rows{r: fr}
		if rs.Next() {
			t.Fatal("expected Next false when rows has error")
		}
		if err := rs.Err(); err == nil || err.Error() != "boom" {
			t.Fatalf("rows.Err mismatch: %v", err)
		}
	}
}

func TestTxQuerier_PropagatesErrors(t *testing.T) {
	t.Parallel()

	fx := &pgxTxStub{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag(""), errors.New("exec failed")
		},
		queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, errors.New("query failed")
		},
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &pgxRowStub{scan: func(dest ...any) error { return errors.New("scan failed") }}
		},
	}
	q := txQuerier{tx: fx}

	if _, err := q.Exec(context.Background(), "x"); err == nil {
		t.Fatalf("expected Exec error")
	}

	if _, err := q.Query(context.Background(), "x"); err == nil {
		t.Fatalf("expected Query error")
	}

	var n int
	if err := q.QueryRow(context.Background(), "x").Scan(&n); err == nil {
		t.Fatalf("expected QueryRow.Scan error")
	}
}
