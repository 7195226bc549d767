// Package pg owns the postgres pool lifecycle
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PG wraps a pgx pool
type PG struct {
	Pool *pgxpool.Pool
}

// Open parses the URL and constructs the pool without pinging
func Open(ctx context.Context, url string) (*PG, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool}, nil
}

// Ping verifies connectivity
func (p *PG) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Close releases the pool
func (p *PG) Close() {
	p.Pool.Close()
}
