package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	docs := []Doc{
		{SchemeID: "pm-kisan", Text: "PM-KISAN pays 6000 rupees yearly to farmer families."},
		{SchemeID: "old-age", Text: "Old age pension for citizens above 60."},
	}
	p := Build("what do farmers get", docs, "hi-IN", false)

	if !strings.HasPrefix(p, Persona) {
		t.Fatal("prompt must open with the persona")
	}
	for _, want := range []string{
		"[scheme:pm-kisan]",
		"[scheme:old-age]",
		"Question: what do farmers get",
		"Answer only in hi-IN",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Contains(p, "Cite only sentences") {
		t.Fatal("non-strict prompt must not carry the strict directive")
	}
}

func TestBuild_Strict(t *testing.T) {
	t.Parallel()

	p := Build("q", []Doc{{SchemeID: "s", Text: "t"}}, "en", true)
	if !strings.Contains(p, "Cite only sentences that appear in the context.") {
		t.Fatal("strict prompt must carry the cite-only directive")
	}
}
