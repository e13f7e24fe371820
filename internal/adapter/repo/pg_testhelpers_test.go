package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubCall struct {
	query string
	args  []any
}

type stubSQL struct {
	calls    []stubCall
	row      func(query string, args []any) pgx.Row
	rows     [][2]string
	execTag  pgconn.CommandTag
	queryErr error
	execErr  error
}

func (s *stubSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	return s.execTag, s.execErr
}

func (s *stubSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	if s.row == nil {
		return stubRow{}
	}
	return s.row(query, args)
}

func (s *stubSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return &stubRows{rows: s.rows}, nil
}

type stubRows struct {
	pgx.Rows
	rows [][2]string
	idx  int
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	if len(dest) != 2 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	row := r.rows[r.idx-1]
	*dest[0].(*string) = row[0]
	*dest[1].(*string) = row[1]
	return nil
}

func (r *stubRows) Err() error { return nil }

func (r *stubRows) Close() {}

func scanStrings(values ...string) func(dest ...any) error {
	return func(dest ...any) error {
		for i, v := range values {
			*dest[i].(*string) = v
		}
		for _, d := range dest[len(values):] {
			if t, ok := d.(*time.Time); ok {
				*t = time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
			}
		}
		return nil
	}
}
