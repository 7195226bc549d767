package domain

import (
	"context"
	"time"
)

// Speech is the voice capability. ASR failures are not retried here;
// the user is re-prompted instead. TTS is retried exactly once
type Speech interface {
	ASR(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	TTS(ctx context.Context, text, language, voice string) (audio []byte, duration time.Duration, err error)
}

// Translator normalizes non-English queries before embedding and
// generation and translates responses back
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// IntentClassifier decides whether a query asks about the user's own
// eligibility for a specific scheme
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (Intent, error)
}

// RecordWriter appends query records to the persistent store
type RecordWriter interface {
	Write(ctx context.Context, rec Record) error
}

// OrchestratorPort is the single entrypoint the API surface consumes
type OrchestratorPort interface {
	Ask(ctx context.Context, req Request) (Response, error)
}
