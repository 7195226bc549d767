package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"sahayak/internal/modkit"
	phttp "sahayak/internal/platform/net/http"
	pmw "sahayak/internal/platform/net/middleware"
	"sahayak/internal/services/query/domain"
)

type fakeOrch struct {
	got  domain.Request
	resp domain.Response
	err  error
}

func (f *fakeOrch) Ask(_ context.Context, req domain.Request) (domain.Response, error) {
	f.got = req
	if f.err != nil {
		return domain.Response{}, f.err
	}
	return f.resp, nil
}

func newMux(orch domain.OrchestratorPort) http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, pmw.RequestContext)
	m := New(modkit.Deps{}, orch)
	m.MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func TestAsk_HappyPath(t *testing.T) {
	t.Parallel()

	orch := &fakeOrch{resp: domain.Response{QueryID: "q1", State: domain.StateDelivered, Text: "answer", Language: "en"}}
	mux := newMux(orch)

	req := httptest.NewRequest(http.MethodPost, "/queries",
		strings.NewReader(`{"text":"what do widows get","language":"hi-IN","want_voice":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if orch.got.UserID != "u1" || orch.got.Language != "hi-IN" || !orch.got.WantVoice {
		t.Fatalf("request not forwarded: %+v", orch.got)
	}

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	data, _ := env.Data.(map[string]any)
	if data["query_id"] != "q1" || data["state"] != "DELIVERED" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
}

func TestAsk_MissingTextAndAudioIsRejected(t *testing.T) {
	t.Parallel()

	orch := &fakeOrch{}
	mux := newMux(orch)

	req := httptest.NewRequest(http.MethodPost, "/queries", strings.NewReader(`{"language":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if orch.got.Text != "" {
		t.Fatal("orchestrator must not be invoked on invalid input")
	}
}

func TestAsk_BadLanguageTagIsRejected(t *testing.T) {
	t.Parallel()

	mux := newMux(&fakeOrch{})

	req := httptest.NewRequest(http.MethodPost, "/queries",
		strings.NewReader(`{"text":"hello","language":"no such tag"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	mux := newMux(&fakeOrch{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
