// Package service implements the retrieval engine
package service

import (
	"context"
	"sort"
	"time"

	"sahayak/internal/platform/cache"
	"sahayak/internal/platform/logger"
	"sahayak/internal/platform/resilience"
	pstrings "sahayak/internal/platform/strings"
	"sahayak/internal/services/retrieval/domain"
)

// cache namespace for ranked document lists
const nsRetrieval = "retrieval"

// DefaultK is the rank cutoff when a caller passes k <= 0
const DefaultK = 5

// Config for the retrieval service
type Config struct {
	TTL time.Duration
	K   int
}

// Service implements domain.RetrieverPort
type Service struct {
	embed    domain.Embedder
	index    domain.VectorIndex
	cache    *cache.Cache
	breakers *resilience.BreakerSet
	retry    resilience.RetryPolicy
	cfg      Config
}

// New constructs the retrieval engine
func New(
	embed domain.Embedder,
	index domain.VectorIndex,
	c *cache.Cache,
	breakers *resilience.BreakerSet,
	retry resilience.RetryPolicy,
	cfg Config,
) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.K <= 0 {
		cfg.K = DefaultK
	}
	return &Service{embed: embed, index: index, cache: c, breakers: breakers, retry: retry, cfg: cfg}
}

// CacheKey is the normalized cache key for a query text and language
func CacheKey(queryText, language string) string {
	return pstrings.Squash(queryText) + "|" + language
}

// Retrieve implements domain.RetrieverPort
func (s *Service) Retrieve(ctx context.Context, queryText, language string, k int) ([]domain.Document, error) {
	if k <= 0 {
		k = s.cfg.K
	}
	key := CacheKey(queryText, language)

	if v, ok := s.cache.Get(nsRetrieval, key); ok {
		if docs, ok := v.([]domain.Document); ok {
			logger.C(ctx).Debug().Str("key", key).Msg("retrieval cache hit")
			return truncate(docs, k), nil
		}
	}

	var vec []float32
	err := resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.breakers.For("embed").Do(ctx, func(ctx context.Context) error {
			var err error
			vec, err = s.embed.Embed(ctx, queryText)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	var neighbors []domain.Neighbor
	err = resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.breakers.For("vector").Do(ctx, func(ctx context.Context) error {
			var err error
			neighbors, err = s.index.Query(ctx, vec, k)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	if len(neighbors) == 0 {
		return nil, domain.ErrNoMatch
	}

	docs := rank(neighbors, k)
	s.cache.Put(nsRetrieval, key, docs, s.cfg.TTL)
	return docs, nil
}

// rank sorts by score descending, ties by ascending chunk id, and
// truncates to min(k, available)
func rank(neighbors []domain.Neighbor, k int) []domain.Document {
	docs := make([]domain.Document, 0, len(neighbors))
	for _, n := range neighbors {
		docs = append(docs, domain.Document{
			SchemeID: n.SchemeID,
			ChunkID:  n.ChunkID,
			Text:     n.Text,
			Section:  domain.Section(n.Section),
			Score:    n.Score,
		})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].ChunkID < docs[j].ChunkID
	})
	return truncate(docs, k)
}

func truncate(docs []domain.Document, k int) []domain.Document {
	if len(docs) > k {
		return docs[:k]
	}
	return docs
}
