package logger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

// TestParseLevel unknown strings default to debug so nothing gets silenced
func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.DebugLevel,
		"":        zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestFromEnv_Defaults env-free boot lands on debug/console
func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	opt := FromEnv()
	if opt.Level != "debug" || opt.Format != "console" {
		t.Fatalf("FromEnv = %+v", opt)
	}
}

// TestWithRequest_RoundTrip the request id survives the context hop C reads it from
func TestWithRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "req-123")
	if v, _ := ctx.Value(keyRequestID).(string); v != "req-123" {
		t.Fatalf("request id in context = %q", v)
	}
	if l := C(ctx); l == nil {
		t.Fatalf("C returned nil logger")
	}
}

// TestWithRequest_EmptyIDIsNoop an empty request id must not pollute the context
func TestWithRequest_EmptyIDIsNoop(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "")
	if v := ctx.Value(keyRequestID); v != nil {
		t.Fatalf("expected no request id in context, got %v", v)
	}
}
