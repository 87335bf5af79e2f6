package modkit

import (
	"testing"

	phttp "vidtally/internal/platform/net/http"
)

// recording stub for the Module surface
type stub struct {
	mounted bool
	ports   any
}

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return s.ports }
func (s *stub) Name() string               { return "stub" }

var _ Module = (*stub)(nil)

func TestModule_InterfaceSurface(t *testing.T) {
	t.Parallel()

	m := &stub{ports: 42}

	// a nil Router is enough here, the test only checks the call reaches
	// the module
	var r phttp.Router
	m.MountRoutes(r)

	if !m.mounted {
		t.Fatal("expected MountRoutes to be called")
	}
	if got := m.Ports(); got != 42 {
		t.Fatalf("unexpected Ports value: got=%v want=42", got)
	}
}

func TestBuilder_ConstructsFromDeps(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, _ ...Option) Module {
		return &stub{ports: "answer"}
	}

	m := b(Deps{})
	if m == nil {
		t.Fatal("builder returned nil module")
	}
	if p := m.Ports(); p != "answer" {
		t.Fatalf("unexpected Ports value from built module: got=%v want=answer", p)
	}
}
