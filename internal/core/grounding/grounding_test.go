package grounding

import "testing"

func TestTokens(t *testing.T) {
	t.Parallel()

	got := Tokens("The Widow Pension gives ₹1000 per month!")
	want := map[string]bool{"widow": true, "pension": true, "gives": true, "1000": true, "month": true}
	if len(got) != len(want) {
		t.Fatalf("tokens: got %v", got)
	}
	for _, tok := range got {
		if !want[tok] {
			t.Fatalf("unexpected token %q in %v", tok, got)
		}
	}
}

func TestOverlap(t *testing.T) {
	t.Parallel()

	doc := "Widow pension scheme provides monthly assistance of 1000 rupees to widows above age 40"
	answer := "Widows above age 40 receive 1000 rupees monthly under the widow pension scheme"
	if o := Overlap(answer, doc); o < 0.6 {
		t.Fatalf("expected strong overlap, got %v", o)
	}

	unrelated := "Solar panel subsidies cover rooftop installation costs in urban areas"
	if o := Overlap(unrelated, doc); o > 0.2 {
		t.Fatalf("expected weak overlap, got %v", o)
	}
}

func TestOverlap_EmptyAnswer(t *testing.T) {
	t.Parallel()

	if Overlap("", "some document") != 0 {
		t.Fatal("empty answer must not overlap")
	}
	if Overlap("a an it", "some document") != 0 {
		t.Fatal("stopword-only answer must not overlap")
	}
}

func TestGrounded(t *testing.T) {
	t.Parallel()

	docs := []string{
		"Old age pension for citizens above 60 years with income below 100000",
		"Crop insurance covers losses from drought and flood",
	}
	if !Grounded("Citizens above 60 years with low income get the old age pension", docs, 0) {
		t.Fatal("expected grounded")
	}
	if Grounded("You should invest in mutual funds and equities today", docs, 0) {
		t.Fatal("expected ungrounded")
	}
}
