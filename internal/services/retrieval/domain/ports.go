package domain

import "context"

// Embedder turns text into a fixed-dimensionality vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the nearest-neighbor store for scheme chunks
type VectorIndex interface {
	Query(ctx context.Context, vec []float32, k int) ([]Neighbor, error)
}

// RetrieverPort is what the orchestrator consumes
type RetrieverPort interface {
	// Retrieve returns the top ranked documents for the query text.
	// A corpus with nothing relevant yields ErrNoMatch
	Retrieve(ctx context.Context, queryText, language string, k int) ([]Document, error)
}
