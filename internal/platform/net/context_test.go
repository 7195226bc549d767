package net

import (
	"context"
	"testing"
)

func TestWithRequestRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "req-1", "user-9")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("request id: got %q", got)
	}
	if got := UserID(ctx); got != "user-9" {
		t.Fatalf("user id: got %q", got)
	}
}

func TestWithQueryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithQuery(context.Background(), "q-42")
	if got := QueryID(ctx); got != "q-42" {
		t.Fatalf("query id: got %q", got)
	}
}

func TestEmptyValuesAreNoOps(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "", "")
	if RequestID(ctx) != "" || UserID(ctx) != "" {
		t.Fatal("expected empty ids to stay empty")
	}
	if QueryID(WithQuery(ctx, "")) != "" {
		t.Fatal("expected empty query id to stay empty")
	}
}
