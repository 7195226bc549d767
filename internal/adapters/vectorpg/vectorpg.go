// Package vectorpg implements the vector index port on Postgres with
// the pgvector extension, through the platform store seam
package vectorpg

import (
	"context"
	"strconv"
	"strings"

	"sahayak/internal/modkit/repokit"
	perr "sahayak/internal/platform/errors"
	"sahayak/internal/services/retrieval/domain"
)

// Index runs nearest-neighbor queries against the scheme_chunks table
type Index struct {
	q repokit.Queryer
}

// New binds the index to a queryer
func New(q repokit.Queryer) *Index { return &Index{q: q} }

// ChunkMeta describes one chunk being upserted
type ChunkMeta struct {
	ChunkID string
	Section string
	Text    string
}

// Query returns up to k active neighbors ordered by cosine similarity
func (x *Index) Query(ctx context.Context, vec []float32, k int) ([]domain.Neighbor, error) {
	rows, err := x.q.Query(ctx, `
		SELECT chunk_id, scheme_id, section, chunk_text,
		       1 - (embedding <=> $1::vector) AS score
		FROM scheme_chunks
		WHERE active
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, VectorLiteral(vec), k)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "vector query")
	}
	defer rows.Close()

	var out []domain.Neighbor
	for rows.Next() {
		var n domain.Neighbor
		if err := rows.Scan(&n.ChunkID, &n.SchemeID, &n.Section, &n.Text, &n.Score); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "vector scan")
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "vector rows")
	}
	return out, nil
}

// Upsert replaces the embeddings for a scheme's chunks
func (x *Index) Upsert(ctx context.Context, schemeID string, embeddings [][]float32, meta []ChunkMeta) error {
	if len(embeddings) != len(meta) {
		return perr.InvalidArgf("embeddings/meta length mismatch: %d vs %d", len(embeddings), len(meta))
	}
	for i, m := range meta {
		_, err := x.q.Exec(ctx, `
			INSERT INTO scheme_chunks (chunk_id, scheme_id, section, chunk_text, embedding, active)
			VALUES ($1, $2, $3, $4, $5::vector, true)
			ON CONFLICT (chunk_id) DO UPDATE
			SET scheme_id = EXCLUDED.scheme_id,
			    section = EXCLUDED.section,
			    chunk_text = EXCLUDED.chunk_text,
			    embedding = EXCLUDED.embedding,
			    active = true
		`, m.ChunkID, schemeID, m.Section, m.Text, VectorLiteral(embeddings[i]))
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "vector upsert")
		}
	}
	return nil
}

// MarkInactive soft deletes a scheme's chunks; history is never purged
func (x *Index) MarkInactive(ctx context.Context, schemeID string) error {
	_, err := x.q.Exec(ctx, `UPDATE scheme_chunks SET active = false WHERE scheme_id = $1`, schemeID)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "vector mark inactive")
	}
	return nil
}

// VectorLiteral renders vec in pgvector's input syntax
func VectorLiteral(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
