package store

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"sahayak/internal/platform/store/ch"
)

// chAdapter adapts the native client to the Clickhouse seam
type chAdapter struct {
	client *ch.CH
}

func newCHAdapter(client *ch.CH) *chAdapter {
	return &chAdapter{client: client}
}

func (a *chAdapter) Insert(ctx context.Context, stmt string, rows [][]any) error {
	return a.client.Insert(ctx, stmt, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.client.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rows}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error { return a.client.Ping(ctx) }

func (a *chAdapter) Close() error { return a.client.Close() }

type chRows struct{ rows driver.Rows }

func (r chRows) Next() bool             { return r.rows.Next() }
func (r chRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r chRows) Err() error             { return r.rows.Err() }
func (r chRows) Close()                 { _ = r.rows.Close() }
func (r chRows) Columns() []string      { return r.rows.Columns() }
