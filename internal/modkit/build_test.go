package modkit

import (
	"net/http"
	"testing"

	"sahayak/internal/modkit/httpkit"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("expected default hooks to be non nil")
	}
	if b.Name != "" || b.Prefix != "" || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}
}

func TestBuildAppliesOptions(t *testing.T) {
	t.Parallel()

	mw := func(next http.Handler) http.Handler { return next }
	registered := false
	b := Build(
		WithName("ask"),
		WithPrefix("/v1"),
		WithMiddlewares(mw),
		WithRegister(func(httpkit.Router) { registered = true }),
	)
	if b.Name != "ask" || b.Prefix != "/v1" || len(b.Mw) != 1 {
		t.Fatalf("options not applied: %+v", b)
	}
	b.Register(nil)
	if !registered {
		t.Fatal("register hook not wired")
	}
}
