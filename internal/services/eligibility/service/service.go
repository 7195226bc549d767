// Package service implements the eligibility checker
package service

import (
	"context"
	"strings"
	"time"

	"sahayak/internal/core/rules"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/services/eligibility/domain"
)

// Service implements domain.CheckerPort
type Service struct {
	profiles domain.ProfileStore
	specs    domain.SpecStore
	records  domain.RecordWriter
	breakers *resilience.BreakerSet
	retry    resilience.RetryPolicy
	writes   *resilience.WriteQueue
	now      func() time.Time
}

// New constructs the checker. records and writes may be nil when the
// persistent store is disabled; results are then simply not archived
func New(
	profiles domain.ProfileStore,
	specs domain.SpecStore,
	records domain.RecordWriter,
	breakers *resilience.BreakerSet,
	retry resilience.RetryPolicy,
	writes *resilience.WriteQueue,
) *Service {
	return &Service{
		profiles: profiles,
		specs:    specs,
		records:  records,
		breakers: breakers,
		retry:    retry,
		writes:   writes,
		now:      time.Now,
	}
}

// Check implements domain.CheckerPort
func (s *Service) Check(ctx context.Context, queryID, userID, schemeID string) (rules.Result, error) {
	var profile rules.Profile
	err := resilience.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.breakers.For("profile").Do(ctx, func(ctx context.Context) error {
			var err error
			profile, err = s.profiles.Get(ctx, userID)
			return err
		})
	})
	if err != nil {
		return rules.Result{}, err
	}

	spec, err := s.specs.Get(ctx, schemeID)
	if err != nil {
		return rules.Result{}, err
	}

	result := rules.Evaluate(profile, spec)
	s.archive(queryID, userID, result)
	return result, nil
}

// archive enqueues the record write; the caller's response never waits
// on the persistent store
func (s *Service) archive(queryID, userID string, result rules.Result) {
	if s.records == nil || s.writes == nil {
		return
	}
	rec := domain.Record{
		QueryID:    queryID,
		UserID:     userID,
		SchemeID:   result.SchemeID,
		Eligible:   result.Eligible,
		Confidence: result.Confidence,
		Reason:     summarize(result),
		CheckedAt:  s.now().UTC(),
	}
	s.writes.Enqueue("eligibility_record", userID, func(ctx context.Context) error {
		return s.records.Write(ctx, rec)
	})
}

func summarize(r rules.Result) string {
	if r.Reason != "" {
		return r.Reason
	}
	parts := make([]string, 0, len(r.Evaluations))
	for _, e := range r.Evaluations {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, "; ")
}

// Evaluate exposes the pure evaluation for callers that already hold a
// profile and spec
func (s *Service) Evaluate(profile rules.Profile, spec rules.Spec) rules.Result {
	return rules.Evaluate(profile, spec)
}
