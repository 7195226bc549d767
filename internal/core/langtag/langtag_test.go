package langtag

import (
	"testing"

	perr "sahayak/internal/platform/errors"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", "en"},
		{"en", "en"},
		{"hi-IN", "hi-IN"},
		{"HI-in", "hi-IN"},
		{"ta", "ta"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Normalize("not a tag!!")
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation code, got %v", perr.CodeOf(err))
	}
}

func TestIsEnglishAndBase(t *testing.T) {
	t.Parallel()

	if !IsEnglish("en-IN") || IsEnglish("hi-IN") {
		t.Fatal("IsEnglish misclassified")
	}
	if Base("hi-IN") != "hi" || Base("en") != "en" {
		t.Fatal("Base misparsed")
	}
}
