// Package ch owns the clickhouse connection lifecycle
package ch

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// CH wraps a native clickhouse connection
type CH struct {
	Conn driver.Conn
}

// Open parses the DSN and dials clickhouse
func Open(dsn string) (*CH, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{Conn: conn}, nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error {
	return c.Conn.Ping(ctx)
}

// Insert sends rows as one batch.
// stmt is the INSERT prefix with the column list spelled out
func (c *CH) Insert(ctx context.Context, stmt string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.Conn.PrepareBatch(ctx, stmt)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return err
		}
	}
	return batch.Send()
}

// Query runs a read statement
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.Conn.Query(ctx, sql, args...)
}

// Close releases the connection
func (c *CH) Close() error {
	return c.Conn.Close()
}
