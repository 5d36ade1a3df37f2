package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"notifygate/internal/modkit/module"
	"notifygate/internal/platform/config"
	phttp "notifygate/internal/platform/net/http"
)

// newTestAPI mounts the full API over the in-memory store
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	module.Reset()
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), Options{Config: config.New()})
	return m
}

// do issues one JSON request and decodes the response body into a generic map
func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: bad JSON body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func seed(t *testing.T, h http.Handler, userID, body string) {
	t.Helper()
	status, out := do(t, h, http.MethodPost, "/preferences/"+userID, body)
	if status != http.StatusOK || out["ok"] != true || out["userId"] != userID {
		t.Fatalf("seed %s: status=%d body=%v", userID, status, out)
	}
}

func eventBody(userID, eventType, ts string) string {
	b, _ := json.Marshal(map[string]string{
		"eventId":   "evt_" + userID,
		"userId":    userID,
		"eventType": eventType,
		"timestamp": ts,
	})
	return string(b)
}

// TestAPI_DecisionFlow drives the full decision surface end to end:
// seeding, fail-open, unsubscribe precedence and both DND boundaries
func TestAPI_DecisionFlow(t *testing.T) {
	h := newTestAPI(t)

	// usr_1 unsubscribed from invoice_generated, no window
	seed(t, h, "usr_1", `{"eventSettings":{"invoice_generated":{"enabled":false},"item_shipped":{"enabled":true}}}`)
	// usr_2 subscribed with a midnight-wrapping window
	seed(t, h, "usr_2", `{"dnd":{"start":"22:00","end":"07:00"},"eventSettings":{"item_shipped":{"enabled":true}}}`)

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantDec    string
		wantReason string
	}{
		{
			name:       "unknown user fails open",
			body:       eventBody("usr_ghost", "item_shipped", "2025-07-28T12:00:00Z"),
			wantStatus: http.StatusAccepted,
			wantDec:    "PROCESS_NOTIFICATION",
		},
		{
			name:       "unsubscribed event suppressed",
			body:       eventBody("usr_1", "invoice_generated", "2025-07-28T12:00:00Z"),
			wantStatus: http.StatusOK,
			wantDec:    "DO_NOT_NOTIFY",
			wantReason: "USER_UNSUBSCRIBED_FROM_EVENT",
		},
		{
			name:       "inside wrapped window suppressed",
			body:       eventBody("usr_2", "item_shipped", "2025-07-28T23:30:00Z"),
			wantStatus: http.StatusOK,
			wantDec:    "DO_NOT_NOTIFY",
			wantReason: "DND_ACTIVE",
		},
		{
			name:       "window start is inclusive",
			body:       eventBody("usr_2", "item_shipped", "2025-07-28T22:00:00Z"),
			wantStatus: http.StatusOK,
			wantDec:    "DO_NOT_NOTIFY",
			wantReason: "DND_ACTIVE",
		},
		{
			name:       "window end is exclusive",
			body:       eventBody("usr_2", "item_shipped", "2025-07-28T07:00:00Z"),
			wantStatus: http.StatusAccepted,
			wantDec:    "PROCESS_NOTIFICATION",
		},
		{
			name:       "unlisted event type outside window allowed",
			body:       eventBody("usr_2", "price_drop", "2025-07-28T12:00:00Z"),
			wantStatus: http.StatusAccepted,
			wantDec:    "PROCESS_NOTIFICATION",
		},
	}
	for _, tc := range cases {
		status, out := do(t, h, http.MethodPost, "/events", tc.body)
		if status != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d (body %v)", tc.name, status, tc.wantStatus, out)
		}
		if out["decision"] != tc.wantDec {
			t.Fatalf("%s: decision = %v, want %s", tc.name, out["decision"], tc.wantDec)
		}
		reason, _ := out["reason"].(string)
		if reason != tc.wantReason {
			t.Fatalf("%s: reason = %q, want %q", tc.name, reason, tc.wantReason)
		}
	}
}

// TestAPI_EventValidation malformed submissions map to the uniform envelope
func TestAPI_EventValidation(t *testing.T) {
	h := newTestAPI(t)

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantField  string
	}{
		{
			name:       "impossible calendar instant",
			body:       eventBody("usr_1", "item_shipped", "2025-13-40T25:61:00Z"),
			wantStatus: http.StatusBadRequest,
			wantError:  "INVALID_TIMESTAMP",
			wantField:  "timestamp",
		},
		{
			name:       "missing userId",
			body:       `{"eventId":"evt_1","eventType":"item_shipped","timestamp":"2025-07-28T12:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "VALIDATION_ERROR",
			wantField:  "userId",
		},
		{
			name:       "dashed event type",
			body:       eventBody("usr_1", "item-shipped", "2025-07-28T12:00:00Z"),
			wantStatus: http.StatusBadRequest,
			wantError:  "VALIDATION_ERROR",
			wantField:  "eventType",
		},
		{
			name:       "lowercase zone suffix",
			body:       eventBody("usr_1", "item_shipped", "2025-07-28T12:00:00z"),
			wantStatus: http.StatusBadRequest,
			wantError:  "VALIDATION_ERROR",
			wantField:  "timestamp",
		},
		{
			name:       "unknown top-level property",
			body:       `{"eventId":"e","userId":"u","eventType":"item_shipped","timestamp":"2025-07-28T12:00:00Z","extra":1}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "VALIDATION_ERROR",
			wantField:  "extra",
		},
	}
	for _, tc := range cases {
		status, out := do(t, h, http.MethodPost, "/events", tc.body)
		if status != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d (body %v)", tc.name, status, tc.wantStatus, out)
		}
		if out["error"] != tc.wantError {
			t.Fatalf("%s: error = %v, want %s", tc.name, out["error"], tc.wantError)
		}
		if out["field"] != tc.wantField {
			t.Fatalf("%s: field = %v, want %s", tc.name, out["field"], tc.wantField)
		}
	}
}

// TestAPI_PreferencesLifecycle write, read back, replace, and the 404 envelope
func TestAPI_PreferencesLifecycle(t *testing.T) {
	h := newTestAPI(t)

	// unknown user reads as a NOT_FOUND envelope
	status, out := do(t, h, http.MethodGet, "/preferences/usr_none", "")
	if status != http.StatusNotFound || out["error"] != "NOT_FOUND" {
		t.Fatalf("pre-seed read: status=%d body=%v", status, out)
	}

	seed(t, h, "usr_5", `{"dnd":{"start":"22:00","end":"07:00"},"eventSettings":{"item_shipped":{"enabled":true}}}`)

	status, out = do(t, h, http.MethodGet, "/preferences/usr_5", "")
	if status != http.StatusOK {
		t.Fatalf("read: status=%d body=%v", status, out)
	}
	dnd, _ := out["dnd"].(map[string]any)
	if dnd == nil || dnd["start"] != "22:00" || dnd["end"] != "07:00" {
		t.Fatalf("dnd = %v", out["dnd"])
	}

	// a second write replaces the record wholesale
	seed(t, h, "usr_5", `{"eventSettings":{"invoice_generated":{"enabled":false}}}`)
	status, out = do(t, h, http.MethodGet, "/preferences/usr_5", "")
	if status != http.StatusOK {
		t.Fatalf("re-read: status=%d body=%v", status, out)
	}
	if out["dnd"] != nil {
		t.Fatalf("dnd survived replace: %v", out["dnd"])
	}
	settings, _ := out["eventSettings"].(map[string]any)
	if _, ok := settings["item_shipped"]; ok {
		t.Fatalf("old flag survived replace: %v", settings)
	}
}

// TestAPI_PreferencesValidation the replace endpoint rejects bad payloads field by field
func TestAPI_PreferencesValidation(t *testing.T) {
	h := newTestAPI(t)

	cases := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty body", body: "", wantField: "eventSettings"},
		{name: "empty settings map", body: `{"eventSettings":{}}`, wantField: "eventSettings"},
		{name: "bad event key", body: `{"eventSettings":{"bad key!":{"enabled":true}}}`, wantField: "eventSettings.bad key!"},
		{name: "missing enabled", body: `{"eventSettings":{"item_shipped":{}}}`, wantField: "eventSettings.item_shipped.enabled"},
		{
			name:      "single digit hour",
			body:      `{"dnd":{"start":"7:00","end":"09:00"},"eventSettings":{"item_shipped":{"enabled":true}}}`,
			wantField: "dnd.start",
		},
		{
			name:      "equal window",
			body:      `{"dnd":{"start":"09:00","end":"09:00"},"eventSettings":{"item_shipped":{"enabled":true}}}`,
			wantField: "dnd.end",
		},
	}
	for _, tc := range cases {
		status, out := do(t, h, http.MethodPost, "/preferences/usr_9", tc.body)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400 (body %v)", tc.name, status, out)
		}
		if out["error"] != "VALIDATION_ERROR" {
			t.Fatalf("%s: error = %v", tc.name, out["error"])
		}
		if out["field"] != tc.wantField {
			t.Fatalf("%s: field = %v, want %s", tc.name, out["field"], tc.wantField)
		}
	}
}

// TestAPI_UnknownRouteEnvelope unmatched paths return the JSON 404 envelope, not plain text
func TestAPI_UnknownRouteEnvelope(t *testing.T) {
	h := newTestAPI(t)
	status, out := do(t, h, http.MethodGet, "/nope", "")
	if status != http.StatusNotFound || out["error"] != "NOT_FOUND" {
		t.Fatalf("status=%d body=%v", status, out)
	}
}

// TestAPI_HealthAliases the root liveness alias answers the same JSON payload
// as /meta/health, not plain text
func TestAPI_HealthAliases(t *testing.T) {
	h := newTestAPI(t)
	for _, path := range []string{"/health", "/meta/health"} {
		status, out := do(t, h, http.MethodGet, path, "")
		if status != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", path, status)
		}
		if out["ok"] != true || out["service"] != "notifygate-api" {
			t.Fatalf("%s: body = %v", path, out)
		}
	}
}

// TestAPI_DocsOffByDefault the swagger UI is not mounted unless opted in,
// so /docs falls through to the 404 envelope
func TestAPI_DocsOffByDefault(t *testing.T) {
	h := newTestAPI(t)
	status, out := do(t, h, http.MethodGet, "/docs/index.html", "")
	if status != http.StatusNotFound || out["error"] != "NOT_FOUND" {
		t.Fatalf("status=%d body=%v", status, out)
	}
}
