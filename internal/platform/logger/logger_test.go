package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInitAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "sahayak", Writer: &buf})

	ctx := WithQuery(WithRequest(context.Background(), "req-1", "user-9"), "q-42")
	C(ctx).Info().Msg("pipeline step")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"user_id":"user-9"`, `"query_id":"q-42"`, "pipeline step"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNamedComponent(t *testing.T) {
	if Named("") != Get() {
		t.Fatalf("empty component should return the root logger")
	}
	// a named child must not panic and must be usable
	Named("retrieval").Debug().Msg("ok")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"info":     "info",
		"WARN":     "warn",
		"bogus":    "debug",
		" error ":  "error",
		"":         "debug",
		"warning":  "warn",
		"trace":    "trace",
		"fatal":    "fatal",
		"panic":    "panic",
		"DeBuG":    "debug",
		"critical": "debug",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
