// Package repo persists query records through the clickhouse seam
package repo

import (
	"context"

	"sahayak/internal/platform/store"
	"sahayak/internal/services/query/domain"
)

type chWriter struct{ ch store.Clickhouse }

// NewCH constructs the record writer
func NewCH(ch store.Clickhouse) domain.RecordWriter { return &chWriter{ch: ch} }

const insertQuery = `INSERT INTO query_records
	(query_id, user_id, query_text, language, state, failure, created_at, done_at)`

// Write implements domain.RecordWriter
func (w *chWriter) Write(ctx context.Context, rec domain.Record) error {
	return w.ch.Insert(ctx, insertQuery, [][]any{{
		rec.QueryID, rec.UserID, rec.Text, rec.Language,
		string(rec.State), rec.Failure, rec.CreatedAt, rec.DoneAt,
	}})
}
