package modkit

import (
	"net/http"
	"testing"

	phttp "notifygate/internal/platform/net/http"
)

// TestBuild_AppliesOptions options land on the Built struct in order
func TestBuild_AppliesOptions(t *testing.T) {
	t.Parallel()

	mw := func(next http.Handler) http.Handler { return next }
	type ports struct{ N int }

	b := Build(
		WithName("preferences"),
		WithPrefix("/preferences"),
		WithMiddlewares(mw),
		WithPorts(ports{N: 7}),
	)
	if b.Name != "preferences" || b.Prefix != "/preferences" {
		t.Fatalf("name/prefix = %q/%q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("mw = %d, want 1", len(b.Mw))
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 7 {
		t.Fatalf("ports = %#v", b.Ports)
	}
}

// TestBuild_DefaultHooks hooks are callable no-ops when not provided
func TestBuild_DefaultHooks(t *testing.T) {
	t.Parallel()

	b := Build(WithName("meta"))
	if b.Subrouter == nil || b.Register == nil {
		t.Fatalf("hooks should be non-nil by default")
	}
	if got := b.Subrouter(nil); got != nil {
		t.Fatalf("default subrouter should be identity")
	}
	b.Register(nil)
}

// TestBuild_CustomHooks explicit hooks are carried through untouched
func TestBuild_CustomHooks(t *testing.T) {
	t.Parallel()

	called := false
	b := Build(
		WithSubrouter(func(r phttp.Router) phttp.Router { return r }),
		WithRegister(func(phttp.Router) { called = true }),
	)
	b.Register(nil)
	if !called {
		t.Fatalf("custom register hook was not invoked")
	}
}
