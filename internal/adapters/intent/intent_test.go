package intent

import (
	"context"
	"testing"

	perr "sahayak/internal/platform/errors"
)

type fakeGen struct{ out string }

func (f fakeGen) Generate(context.Context, string) (string, error) { return f.out, nil }

func TestClassify_ParsesPlainJSON(t *testing.T) {
	t.Parallel()

	c := New(fakeGen{out: `{"eligibility": true, "scheme_id": "widow-pension"}`})
	got, err := c.Classify(context.Background(), "am i eligible for widow pension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.WantsEligibility || got.SchemeID != "widow-pension" {
		t.Fatalf("unexpected intent: %+v", got)
	}
}

func TestClassify_ToleratesCodeFences(t *testing.T) {
	t.Parallel()

	c := New(fakeGen{out: "```json\n{\"eligibility\": false, \"scheme_id\": \"\"}\n```"})
	got, err := c.Classify(context.Background(), "what schemes exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WantsEligibility || got.SchemeID != "" {
		t.Fatalf("unexpected intent: %+v", got)
	}
}

func TestClassify_RejectsNonJSONOutput(t *testing.T) {
	t.Parallel()

	c := New(fakeGen{out: "I cannot answer that."})
	_, err := c.Classify(context.Background(), "hello")
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected json error, got %v", err)
	}
}

func TestKeywords_MatchesTriggerAndScheme(t *testing.T) {
	t.Parallel()

	k := NewKeywords(map[string]string{"widow pension": "widow-pension"})

	got, err := k.Classify(context.Background(), "Am I eligible for the Widow Pension?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.WantsEligibility || got.SchemeID != "widow-pension" {
		t.Fatalf("unexpected intent: %+v", got)
	}
}

func TestKeywords_NoTriggerMeansNoIntent(t *testing.T) {
	t.Parallel()

	k := NewKeywords(map[string]string{"widow pension": "widow-pension"})

	got, err := k.Classify(context.Background(), "tell me about the widow pension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WantsEligibility {
		t.Fatalf("unexpected intent: %+v", got)
	}
}

func TestKeywords_TriggerWithoutSchemeLeavesTargetEmpty(t *testing.T) {
	t.Parallel()

	k := NewKeywords(nil)

	got, err := k.Classify(context.Background(), "do i qualify for anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.WantsEligibility || got.SchemeID != "" {
		t.Fatalf("unexpected intent: %+v", got)
	}
}
