package store

import (
	"time"

	"sahayak/internal/platform/config"
)

// Config declares which backends to open and how
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled bool
	URL     string

	// LogSQL emits every statement at debug level when set
	LogSQL bool

	// SlowQuery marks statements slower than this in logs, 0 disables
	SlowQuery time.Duration

	PingTimeout time.Duration
	PingRetries int
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string

	PingTimeout time.Duration
}

// FromConf builds a Config from env via the given conf reader
func FromConf(cfg config.Conf) Config {
	c := Config{
		PG: PGConfig{
			Enabled:     cfg.MayBool("PG_ENABLED", true),
			LogSQL:      cfg.MayBool("PG_LOG_SQL", false),
			SlowQuery:   cfg.MayDuration("PG_SLOW_QUERY", 250*time.Millisecond),
			PingTimeout: cfg.MayDuration("PG_PING_TIMEOUT", 5*time.Second),
			PingRetries: cfg.MayInt("PG_PING_RETRIES", 5),
		},
		CH: CHConfig{
			Enabled:     cfg.MayBool("CH_ENABLED", false),
			PingTimeout: cfg.MayDuration("CH_PING_TIMEOUT", 5*time.Second),
		},
	}
	if c.PG.Enabled {
		c.PG.URL = cfg.MustString("PG_URL")
	}
	if c.CH.Enabled {
		c.CH.URL = cfg.MustString("CH_URL")
	}
	return c
}
