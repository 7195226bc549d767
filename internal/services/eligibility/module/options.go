package module

import (
	"time"

	"sahayak/internal/platform/config"
)

// Options holds configuration settings for the eligibility module
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ELIGIBILITY_")
	return Options{
		MaxAttempts: ef.MayInt("RETRY_ATTEMPTS", 3),
		BaseDelay:   ef.MayDuration("RETRY_BASE_DELAY", 200*time.Millisecond),
	}
}
