package service

import (
	"context"
	"testing"
	"time"

	"sahayak/internal/core/rules"
	perr "sahayak/internal/platform/errors"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/services/eligibility/domain"
)

type fakeProfiles struct {
	calls   int
	profile rules.Profile
	errs    []error
}

func (f *fakeProfiles) Get(context.Context, string) (rules.Profile, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return rules.Profile{}, err
		}
	}
	return f.profile, nil
}

type fakeSpecs struct {
	spec rules.Spec
	err  error
}

func (f *fakeSpecs) Get(context.Context, string) (rules.Spec, error) {
	if f.err != nil {
		return rules.Spec{}, f.err
	}
	return f.spec, nil
}

type fakeWriter struct {
	wrote chan domain.Record
}

func (f *fakeWriter) Write(_ context.Context, rec domain.Record) error {
	f.wrote <- rec
	return nil
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func widowSpec() rules.Spec {
	return rules.Spec{
		SchemeID: "widow-pension",
		Combine:  rules.CombineAll,
		Rules: []rules.Rule{
			{Field: rules.FieldAge, Op: rules.OpGte, Value: rules.Number(18), Required: true},
			{Field: rules.FieldIncome, Op: rules.OpLt, Value: rules.Number(200000), Required: true},
		},
	}
}

func completeProfile() rules.Profile {
	return rules.Profile{
		UserID: "u1",
		Age:    intp(42),
		Income: floatp(90000),
	}
}

func newSvc(p *fakeProfiles, sp *fakeSpecs, w domain.RecordWriter, q *resilience.WriteQueue) *Service {
	return New(p, sp, w, resilience.NewBreakerSet(5, time.Minute),
		resilience.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, q)
}

func TestCheck_EvaluatesAndArchives(t *testing.T) {
	t.Parallel()

	p := &fakeProfiles{profile: completeProfile()}
	sp := &fakeSpecs{spec: widowSpec()}
	w := &fakeWriter{wrote: make(chan domain.Record, 1)}
	q := resilience.NewWriteQueue(resilience.QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	s := newSvc(p, sp, w, q)
	res, err := s.Check(context.Background(), "q1", "u1", "widow-pension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Eligible || res.Confidence != 1.0 || res.SchemeID != "widow-pension" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.Evaluations) != 2 {
		t.Fatalf("expected every rule evaluated, got %d", len(res.Evaluations))
	}

	select {
	case rec := <-w.wrote:
		if rec.QueryID != "q1" || rec.UserID != "u1" || rec.SchemeID != "widow-pension" || !rec.Eligible {
			t.Fatalf("unexpected record: %+v", rec)
		}
		if rec.CheckedAt.IsZero() {
			t.Fatal("record missing timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("record never archived")
	}
}

func TestCheck_MissingRequiredFieldIsIneligible(t *testing.T) {
	t.Parallel()

	profile := completeProfile()
	profile.Income = nil
	p := &fakeProfiles{profile: profile}
	sp := &fakeSpecs{spec: widowSpec()}
	w := &fakeWriter{wrote: make(chan domain.Record, 1)}
	q := resilience.NewWriteQueue(resilience.QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	s := newSvc(p, sp, w, q)
	res, err := s.Check(context.Background(), "q1", "u1", "widow-pension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Eligible {
		t.Fatal("incomplete profile must not be eligible")
	}
	if res.Reason != rules.ReasonInsufficientProfile {
		t.Fatalf("unexpected reason: %q", res.Reason)
	}

	select {
	case rec := <-w.wrote:
		if rec.Eligible || rec.Reason != rules.ReasonInsufficientProfile {
			t.Fatalf("unexpected record: %+v", rec)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("record never archived")
	}
}

func TestCheck_ProfileNotFoundSurfacesTyped(t *testing.T) {
	t.Parallel()

	p := &fakeProfiles{errs: []error{perr.NotFoundf("no profile for user %q", "ghost")}}
	sp := &fakeSpecs{spec: widowSpec()}
	q := resilience.NewWriteQueue(resilience.QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)

	s := newSvc(p, sp, nil, q)
	_, err := s.Check(context.Background(), "q1", "ghost", "widow-pension")
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("not-found must not be retried, calls=%d", p.calls)
	}
	if q.Len() != 0 {
		t.Fatal("no record may be enqueued when the check fails")
	}
}

func TestCheck_TransientProfileFetchIsRetried(t *testing.T) {
	t.Parallel()

	p := &fakeProfiles{profile: completeProfile(), errs: []error{perr.Unavailablef("blip"), nil}}
	sp := &fakeSpecs{spec: widowSpec()}
	w := &fakeWriter{wrote: make(chan domain.Record, 1)}
	q := resilience.NewWriteQueue(resilience.QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	s := newSvc(p, sp, w, q)
	res, err := s.Check(context.Background(), "q1", "u1", "widow-pension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Eligible {
		t.Fatalf("unexpected result: %+v", res)
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 profile fetch attempts, got %d", p.calls)
	}
}

func TestCheck_MalformedSpecFailsClosed(t *testing.T) {
	t.Parallel()

	p := &fakeProfiles{profile: completeProfile()}
	sp := &fakeSpecs{err: perr.DBf("stored spec is malformed")}
	q := resilience.NewWriteQueue(resilience.QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)

	s := newSvc(p, sp, nil, q)
	_, err := s.Check(context.Background(), "q1", "u1", "widow-pension")
	if perr.CodeOf(err) != perr.ErrorCodeDB {
		t.Fatalf("expected db error, got %v", err)
	}
}
