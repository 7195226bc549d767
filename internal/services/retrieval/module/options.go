package module

import (
	"time"

	"sahayak/internal/platform/config"
)

// Options holds configuration settings for the retrieval module
type Options struct {
	TTL         time.Duration
	K           int
	MaxAttempts int
	BaseDelay   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_RETRIEVAL_")
	return Options{
		TTL:         rf.MayDuration("CACHE_TTL", time.Hour),
		K:           rf.MayInt("TOP_K", 5),
		MaxAttempts: rf.MayInt("RETRY_ATTEMPTS", 3),
		BaseDelay:   rf.MayDuration("RETRY_BASE_DELAY", 200*time.Millisecond),
	}
}
