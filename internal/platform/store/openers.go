package store

import (
	"context"
	"fmt"
	"time"

	"sahayak/internal/platform/store/ch"
	"sahayak/internal/platform/store/pg"
)

func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.Open(ctx, cfg.PG.URL)
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}

	retries := cfg.PG.PingRetries
	if retries <= 0 {
		retries = 1
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			break
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("pg ping failed, retrying")
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
		}
	}
	if lastErr != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", lastErr)
	}

	return newPGAdapter(pool, cfg.PG, s.Log), nil
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	client, err := ch.Open(cfg.CH.URL)
	if err != nil {
		return nil, fmt.Errorf("ch open: %w", err)
	}
	timeout := cfg.CH.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ch ping: %w", err)
	}
	return newCHAdapter(client), nil
}
