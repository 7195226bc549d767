// Package domain holds eligibility types and ports
package domain

import (
	"context"
	"time"

	"sahayak/internal/core/rules"
)

// ProfileStore fetches citizen profiles. Absent users are a typed
// NotFound error
type ProfileStore interface {
	Get(ctx context.Context, userID string) (rules.Profile, error)
}

// SpecStore fetches a scheme's eligibility specification
type SpecStore interface {
	Get(ctx context.Context, schemeID string) (rules.Spec, error)
}

// Record is the append-only eligibility check record
type Record struct {
	QueryID    string
	UserID     string
	SchemeID   string
	Eligible   bool
	Confidence float64
	Reason     string
	CheckedAt  time.Time
}

// RecordWriter appends eligibility records to the persistent store
type RecordWriter interface {
	Write(ctx context.Context, rec Record) error
}

// CheckerPort is what the orchestrator consumes
type CheckerPort interface {
	// Check evaluates userID against schemeID's rules. Persistence of
	// the record is asynchronous and never blocks the result
	Check(ctx context.Context, queryID, userID, schemeID string) (rules.Result, error)
}
