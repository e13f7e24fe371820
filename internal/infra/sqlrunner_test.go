package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const markedQuery = `--sql 3f1c2b9a-0d4e-4c6b-9a1f-7e2d5c8b0a11
select 1;
`

type recordingExec struct {
	queries []string
	execErr error
}

func (r *recordingExec) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, query)
	return pgconn.NewCommandTag("UPDATE 1"), r.execErr
}

func (r *recordingExec) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	r.queries = append(r.queries, query)
	return errorRow{err: pgx.ErrNoRows}
}

func (r *recordingExec) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	r.queries = append(r.queries, query)
	return nil, errors.New("not supported")
}

type fakeTx struct {
	pgx.Tx
	recordingExec
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return f.recordingExec.Exec(ctx, query, args...)
}

func (f *fakeTx) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return f.recordingExec.QueryRow(ctx, query, args...)
}

func (f *fakeTx) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return f.recordingExec.Query(ctx, query, args...)
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakePool struct {
	recordingExec
	tx *fakeTx
}

func (f *fakePool) Begin(context.Context) (pgx.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

func TestExtractMarker(t *testing.T) {
	marker, body, err := ExtractMarker(markedQuery)
	if err != nil {
		t.Fatalf("ExtractMarker() unexpected error: %v", err)
	}
	if marker != "3f1c2b9a-0d4e-4c6b-9a1f-7e2d5c8b0a11" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q, want %q", body, "select 1;")
	}

	for _, q := range []string{"", "select 1;", "--sql not-a-uuid\nselect 1;"} {
		if _, _, err := ExtractMarker(q); err == nil {
			t.Fatalf("ExtractMarker(%q) expected error", q)
		}
	}
}

func TestSQLRunnerExecStripsMarker(t *testing.T) {
	pool := &fakePool{}
	runner := NewSQLRunner(pool, zerolog.Nop())

	if _, err := runner.Exec(context.Background(), markedQuery); err != nil {
		t.Fatalf("Exec() unexpected error: %v", err)
	}
	if len(pool.queries) != 1 || pool.queries[0] != "select 1;" {
		t.Fatalf("pool received %#v", pool.queries)
	}

	if _, err := runner.Exec(context.Background(), "select 1;"); err == nil {
		t.Fatalf("Exec() expected marker error")
	}
	if len(pool.queries) != 1 {
		t.Fatalf("unmarked query reached the pool: %#v", pool.queries)
	}
}

func TestSQLRunnerInTxCommits(t *testing.T) {
	pool := &fakePool{}
	runner := NewSQLRunner(pool, zerolog.Nop())

	err := runner.InTx(context.Background(), func(tx *SQLRunner) error {
		_, err := tx.Exec(context.Background(), markedQuery)
		return err
	})
	if err != nil {
		t.Fatalf("InTx() unexpected error: %v", err)
	}
	if !pool.tx.committed || pool.tx.rolledBack {
		t.Fatalf("tx state committed=%v rolledBack=%v", pool.tx.committed, pool.tx.rolledBack)
	}
	if len(pool.queries) != 0 || len(pool.tx.queries) != 1 {
		t.Fatalf("query routed to pool=%d tx=%d, want 0/1", len(pool.queries), len(pool.tx.queries))
	}
}

func TestSQLRunnerInTxRollsBack(t *testing.T) {
	pool := &fakePool{}
	runner := NewSQLRunner(pool, zerolog.Nop())
	boom := errors.New("boom")

	err := runner.InTx(context.Background(), func(tx *SQLRunner) error {
		return tx.InTx(context.Background(), func(inner *SQLRunner) error {
			if inner != tx {
				t.Fatalf("nested InTx should reuse the outer transaction")
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx() error = %v, want %v", err, boom)
	}
	if pool.tx.committed || !pool.tx.rolledBack {
		t.Fatalf("tx state committed=%v rolledBack=%v", pool.tx.committed, pool.tx.rolledBack)
	}
}
