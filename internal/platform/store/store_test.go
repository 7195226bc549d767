package store

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) Insert(context.Context, string, [][]any) error { return nil }
func (f fakePinger) Query(context.Context, string, ...any) (Rows, error) {
	return nil, errors.New("not implemented")
}
func (f fakePinger) Close() error               { return nil }
func (f fakePinger) Ping(context.Context) error { return f.err }

func TestGuard_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Guard(context.Background()); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestGuard_SkipsNilSeams(t *testing.T) {
	t.Parallel()

	s := &Store{}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error for empty store, got %v", err)
	}
}

func TestGuard_ReportsPingFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := &Store{CH: fakePinger{err: boom}}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatal("expected ping failure to surface")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestClose_NilStoreIsSafe(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
