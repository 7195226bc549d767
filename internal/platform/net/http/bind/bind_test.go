package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "sahayak/internal/platform/errors"
)

type askBody struct {
	Text     string `json:"text" validate:"required,min=1"`
	Language string `json:"language" validate:"omitempty,langtag"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

func TestParseJSON_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(`{"text":"pension ke liye","language":"hi-IN","top_k":5}`))
	got, err := ParseJSON[askBody](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "pension ke liye" || got.Language != "hi-IN" || got.TopK != 5 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(""))
	_, err := ParseJSON[askBody](r)
	if err == nil {
		t.Fatal("expected error for empty body")
	}
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected json code, got %v", perr.CodeOf(err))
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(`{"text":"hi","bogus":1}`))
	_, err := ParseJSON[askBody](r)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseJSON_ValidationFailure(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(`{"text":""}`))
	_, err := ParseJSON[askBody](r)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation code, got %v", perr.CodeOf(err))
	}
}

func TestParseJSON_BadLanguageTag(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(`{"text":"hello","language":"not a tag!!"}`))
	_, err := ParseJSON[askBody](r)
	if err == nil {
		t.Fatal("expected validation error for malformed language tag")
	}
	if pe, ok := perr.As(err); ok {
		if pe.Field() != "language" {
			t.Fatalf("expected field language, got %q", pe.Field())
		}
	}
}

func TestParseJSON_TrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/v1/queries", strings.NewReader(`{"text":"hi"}{"text":"again"}`))
	_, err := ParseJSON[askBody](r)
	if err == nil {
		t.Fatal("expected error for trailing data")
	}
}
