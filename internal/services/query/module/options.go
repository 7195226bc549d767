package module

import (
	"time"

	"sahayak/internal/platform/config"
)

// Options holds configuration settings for the query module
type Options struct {
	Deadline    time.Duration
	K           int
	Voice       string
	MaxAttempts int
	BaseDelay   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	qf := cfg.Prefix("CORE_QUERY_")
	return Options{
		Deadline:    qf.MayDuration("DEADLINE", 20*time.Second),
		K:           qf.MayInt("TOP_K", 5),
		Voice:       qf.MayString("TTS_VOICE", "female-1"),
		MaxAttempts: qf.MayInt("RETRY_ATTEMPTS", 3),
		BaseDelay:   qf.MayDuration("RETRY_BASE_DELAY", 200*time.Millisecond),
	}
}
