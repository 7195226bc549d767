package module

import (
	"time"

	"sahayak/internal/platform/config"
)

// Options holds configuration settings for the answer module
type Options struct {
	AnswerTTL   time.Duration
	Threshold   float64
	MaxAttempts int
	BaseDelay   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ANSWER_")
	return Options{
		AnswerTTL:   af.MayDuration("CACHE_TTL", 24*time.Hour),
		Threshold:   af.MayFloat64("GROUNDING_THRESHOLD", 0.3),
		MaxAttempts: af.MayInt("RETRY_ATTEMPTS", 3),
		BaseDelay:   af.MayDuration("RETRY_BASE_DELAY", 200*time.Millisecond),
	}
}
