package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/store/pg"
)

// pgAdapter adapts a pgx pool to the TxRunner seam
type pgAdapter struct {
	db  *pg.PG
	cfg PGConfig
	log logger.Logger
}

func newPGAdapter(db *pg.PG, cfg PGConfig, log logger.Logger) *pgAdapter {
	return &pgAdapter{db: db, cfg: cfg, log: log}
}

func (a *pgAdapter) emit(ctx context.Context, sql string, took time.Duration, err error) {
	slow := a.cfg.SlowQuery > 0 && took >= a.cfg.SlowQuery
	if !a.cfg.LogSQL && !slow && err == nil {
		return
	}
	ev := logger.C(ctx).Debug()
	if slow {
		ev = logger.C(ctx).Warn().Bool("slow", true)
	}
	if err != nil {
		ev = logger.C(ctx).Error().Err(err)
	}
	ev.Str("sql", sql).Dur("took", took).Msg("pg query")
}

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	tag, err := a.db.Pool.Exec(ctx, sql, args...)
	a.emit(ctx, sql, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return tagAdapter{tag}, nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := a.db.Pool.Query(ctx, sql, args...)
	a.emit(ctx, sql, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	row := a.db.Pool.QueryRow(ctx, sql, args...)
	a.emit(ctx, sql, time.Since(start), nil)
	return row
}

// Tx runs fn inside a transaction, rolling back on error or panic
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()
	if err := fn(&txQuerier{tx: tx, a: a}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.db.Ping(ctx) }

func (a *pgAdapter) Close() error {
	a.db.Close()
	return nil
}

// txQuerier routes queries through an open transaction
type txQuerier struct {
	tx pgx.Tx
	a  *pgAdapter
}

func (t *txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	tag, err := t.tx.Exec(ctx, sql, args...)
	t.a.emit(ctx, sql, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return tagAdapter{tag}, nil
}

func (t *txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := t.tx.Query(ctx, sql, args...)
	t.a.emit(ctx, sql, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

func (t *txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

type rowsAdapter struct{ rows pgx.Rows }

func (r rowsAdapter) Next() bool             { return r.rows.Next() }
func (r rowsAdapter) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r rowsAdapter) Err() error             { return r.rows.Err() }
func (r rowsAdapter) Close()                 { r.rows.Close() }

func (r rowsAdapter) Columns() []string {
	fields := r.rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols
}

type tagAdapter struct{ tag pgconn.CommandTag }

func (t tagAdapter) String() string      { return t.tag.String() }
func (t tagAdapter) RowsAffected() int64 { return t.tag.RowsAffected() }
