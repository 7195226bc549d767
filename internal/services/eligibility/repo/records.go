package repo

import (
	"context"

	"sahayak/internal/platform/store"
	"sahayak/internal/services/eligibility/domain"
)

// chWriter appends eligibility records through the clickhouse seam
type chWriter struct{ ch store.Clickhouse }

// NewCH constructs the record writer
func NewCH(ch store.Clickhouse) domain.RecordWriter { return &chWriter{ch: ch} }

const insertEligibility = `INSERT INTO eligibility_records
	(query_id, user_id, scheme_id, eligible, confidence, reason, checked_at)`

// Write implements domain.RecordWriter
func (w *chWriter) Write(ctx context.Context, rec domain.Record) error {
	return w.ch.Insert(ctx, insertEligibility, [][]any{{
		rec.QueryID, rec.UserID, rec.SchemeID,
		rec.Eligible, rec.Confidence, rec.Reason, rec.CheckedAt,
	}})
}
