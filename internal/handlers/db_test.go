package handlers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB stands in for the pgx pool in handler tests. Unset callbacks mean
// lookups find nothing and writes succeed.
type fakeDB struct {
	queryRowFunc func(sql string, args ...any) pgx.Row
	execFunc     func(sql string, args ...any) (pgconn.CommandTag, error)
	pingErr      error
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if f.queryRowFunc != nil {
		return f.queryRowFunc(sql, args...)
	}
	return errRow{pgx.ErrNoRows}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFunc != nil {
		return f.execFunc(sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

// errRow is a pgx.Row whose Scan fails with a fixed error.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// scanRow is a pgx.Row that fills scan destinations through fill.
type scanRow struct{ fill func(dest ...any) error }

func (r scanRow) Scan(dest ...any) error { return r.fill(dest...) }
