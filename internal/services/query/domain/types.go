// Package domain holds the query lifecycle types and capability ports
package domain

import "time"

// State is a query's lifecycle position. The orchestrator is the only
// writer; transitions only move forward, with Failed reachable from
// any state
type State string

const (
	StateReceived            State = "RECEIVED"
	StateTranscriptValidated State = "TRANSCRIPT_VALIDATED"
	StateRetrieving          State = "RETRIEVING"
	StateGenerating          State = "GENERATING"
	StateEligibilityCheck    State = "ELIGIBILITY_CHECK"
	StateResponseReady       State = "RESPONSE_READY"
	StateDelivered           State = "DELIVERED"
	StateFailed              State = "FAILED"
)

// Failure kinds carried on a Failed response
const (
	FailureEmptyTranscript = "empty_transcript"
	FailureBadLanguage     = "bad_language"
	FailureTimeout         = "timeout"
)

// Request is one incoming query. Audio and Text are alternatives; when
// both are set Text wins and no transcription runs
type Request struct {
	UserID    string
	Text      string
	Audio     []byte
	Language  string
	WantVoice bool
}

// EligibilityOutcome is the checked-eligibility slice of a response
type EligibilityOutcome struct {
	SchemeID   string  `json:"scheme_id"`
	Eligible   bool    `json:"eligible"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// Response is the orchestrator's final product. Failed outcomes the
// caller can act on (re-prompt, show a timeout notice) are normal
// responses with State Failed and a Failure kind, not errors
type Response struct {
	QueryID     string              `json:"query_id"`
	State       State               `json:"state"`
	Failure     string              `json:"failure,omitempty"`
	Text        string              `json:"text"`
	Language    string              `json:"language"`
	Audio       []byte              `json:"audio,omitempty"`
	Grounded    bool                `json:"grounded"`
	FromCache   bool                `json:"from_cache"`
	Fallback    bool                `json:"fallback"`
	Eligibility *EligibilityOutcome `json:"eligibility,omitempty"`
}

// Record is the append-only archival row for a completed query
type Record struct {
	QueryID   string
	UserID    string
	Text      string
	Language  string
	State     State
	Failure   string
	CreatedAt time.Time
	DoneAt    time.Time
}

// Intent is the classification outcome steering the eligibility branch
type Intent struct {
	WantsEligibility bool
	SchemeID         string
}
