package raw

import "testing"

// TestConf_Get trims whitespace and falls back on empty values
func TestConf_Get(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  info  ")

	rc := New().Prefix("LOG_")
	if got := rc.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q, want %q", got, "info")
	}
	if got := rc.Get("MISSING", "debug"); got != "debug" {
		t.Fatalf("Get missing = %q, want default", got)
	}
}

// TestConf_GetBool accepts the 1|true|yes spellings only
func TestConf_GetBool(t *testing.T) {
	cases := map[string]bool{"1": true, "true": true, "YES": true, "0": false, "nope": false}
	for val, want := range cases {
		t.Setenv("LOG_CALLER", val)
		if got := New().Prefix("LOG_").GetBool("CALLER", false); got != want {
			t.Fatalf("GetBool(%q) = %v, want %v", val, got, want)
		}
	}
	t.Setenv("LOG_CALLER", "")
	if !New().Prefix("LOG_").GetBool("CALLER", true) {
		t.Fatalf("GetBool empty should fall back to default")
	}
}

// TestConf_GetInt rejects any non-digit input in favor of the default
func TestConf_GetInt(t *testing.T) {
	t.Setenv("LOG_N", "42")
	if got := New().Prefix("LOG_").GetInt("N", 7); got != 42 {
		t.Fatalf("GetInt = %d", got)
	}
	t.Setenv("LOG_N", "-3")
	if got := New().Prefix("LOG_").GetInt("N", 7); got != 7 {
		t.Fatalf("GetInt negative = %d, want default", got)
	}
}
