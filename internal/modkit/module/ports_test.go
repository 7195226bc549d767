package module

import (
	"testing"

	phttp "sahayak/internal/platform/net/http"
)

type answerPort interface{ Answer() string }

type fakePort struct{}

func (fakePort) Answer() string { return "42" }

type fakeModule struct{ ports any }

func (m fakeModule) MountRoutes(phttp.Router) {}
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) Name() string             { return "fake" }

func TestPortsOf_Direct(t *testing.T) {
	t.Parallel()

	m := fakeModule{ports: fakePort{}}
	p, ok := PortsOf[answerPort](m)
	if !ok || p.Answer() != "42" {
		t.Fatalf("expected direct port, ok=%v", ok)
	}
}

func TestPortsOf_StructField(t *testing.T) {
	t.Parallel()

	bundle := struct{ A answerPort }{A: fakePort{}}
	m := fakeModule{ports: bundle}
	p, ok := PortsOf[answerPort](m)
	if !ok || p.Answer() != "42" {
		t.Fatalf("expected field port, ok=%v", ok)
	}
}

func TestPortsOf_Missing(t *testing.T) {
	t.Parallel()

	m := fakeModule{}
	if _, ok := PortsOf[answerPort](m); ok {
		t.Fatal("expected missing port")
	}
}

func TestMustPortsOf_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = MustPortsOf[answerPort](fakeModule{})
}
