// Command notifygate-seed exercises a running API end to end:
// it stores a few preference records, submits events covering every
// decision branch, and checks the validation envelopes
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"notifygate/internal/platform/config"
	"notifygate/internal/platform/logger"

	"github.com/google/uuid"
)

type client struct {
	base string
	hc   *http.Client
}

// do sends a JSON request and decodes the JSON response into a loose map
func (c *client) do(method, path string, body any) (int, map[string]any, error) {
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close() //nolint:errcheck

	out := map[string]any{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out, nil
}

type check struct {
	name string
	run  func(c *client) error
}

func expect(cond bool, format string, a ...any) error {
	if cond {
		return nil
	}
	return fmt.Errorf(format, a...)
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func event(userID, eventType, ts string) map[string]any {
	return map[string]any{
		"eventId":   "evt_" + uuid.NewString(),
		"userId":    userID,
		"eventType": eventType,
		"timestamp": ts,
	}
}

func wantDecision(c *client, payload map[string]any, status int, decision, reason string) error {
	st, body, err := c.do(http.MethodPost, "/events", payload)
	if err != nil {
		return err
	}
	if err := expect(st == status, "status = %d, want %d (body %v)", st, status, body); err != nil {
		return err
	}
	if err := expect(str(body, "decision") == decision, "decision = %q, want %q", str(body, "decision"), decision); err != nil {
		return err
	}
	return expect(str(body, "reason") == reason, "reason = %q, want %q", str(body, "reason"), reason)
}

func wantError(c *client, path string, payload map[string]any, category, field string) error {
	st, body, err := c.do(http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if err := expect(st == http.StatusBadRequest, "status = %d, want 400 (body %v)", st, body); err != nil {
		return err
	}
	if err := expect(str(body, "error") == category, "error = %q, want %q", str(body, "error"), category); err != nil {
		return err
	}
	if field == "" {
		return nil
	}
	return expect(str(body, "field") == field, "field = %q, want %q", str(body, "field"), field)
}

func checks() []check {
	return []check{
		{"health answers ok", func(c *client) error {
			st, body, err := c.do(http.MethodGet, "/meta/health", nil)
			if err != nil {
				return err
			}
			if err := expect(st == http.StatusOK, "status = %d", st); err != nil {
				return err
			}
			ok, _ := body["ok"].(bool)
			return expect(ok, "health payload mismatch: %v", body)
		}},

		{"store usr_1 unsubscribed from item_shipped", func(c *client) error {
			st, body, err := c.do(http.MethodPost, "/preferences/usr_1", map[string]any{
				"dnd":           nil,
				"eventSettings": map[string]any{"item_shipped": map[string]any{"enabled": false}},
			})
			if err != nil {
				return err
			}
			if err := expect(st == http.StatusOK, "status = %d (body %v)", st, body); err != nil {
				return err
			}
			return expect(str(body, "userId") == "usr_1", "ack mismatch: %v", body)
		}},

		{"store usr_2 with 22:00 to 07:00 window", func(c *client) error {
			st, body, err := c.do(http.MethodPost, "/preferences/usr_2", map[string]any{
				"dnd":           map[string]any{"start": "22:00", "end": "07:00"},
				"eventSettings": map[string]any{"item_shipped": map[string]any{"enabled": true}},
			})
			if err != nil {
				return err
			}
			return expect(st == http.StatusOK, "status = %d (body %v)", st, body)
		}},

		{"store usr_3 plain allow path", func(c *client) error {
			st, _, err := c.do(http.MethodPost, "/preferences/usr_3", map[string]any{
				"dnd":           nil,
				"eventSettings": map[string]any{"item_shipped": map[string]any{"enabled": true}},
			})
			if err != nil {
				return err
			}
			return expect(st == http.StatusOK, "status = %d", st)
		}},

		{"read back usr_2 record", func(c *client) error {
			st, body, err := c.do(http.MethodGet, "/preferences/usr_2", nil)
			if err != nil {
				return err
			}
			if err := expect(st == http.StatusOK, "status = %d", st); err != nil {
				return err
			}
			dnd, _ := body["dnd"].(map[string]any)
			return expect(dnd != nil && str(dnd, "start") == "22:00", "dnd mismatch: %v", body)
		}},

		{"no prefs fails open at 202", func(c *client) error {
			return wantDecision(c, event("usr_no_pref", "item_shipped", "2025-07-28T12:00:00Z"),
				http.StatusAccepted, "PROCESS_NOTIFICATION", "")
		}},

		{"unsubscribed user is suppressed", func(c *client) error {
			return wantDecision(c, event("usr_1", "item_shipped", "2025-07-28T12:00:00Z"),
				http.StatusOK, "DO_NOT_NOTIFY", "USER_UNSUBSCRIBED_FROM_EVENT")
		}},

		{"dnd window suppresses at 23:30", func(c *client) error {
			return wantDecision(c, event("usr_2", "item_shipped", "2025-07-28T23:30:00Z"),
				http.StatusOK, "DO_NOT_NOTIFY", "DND_ACTIVE")
		}},

		{"window end 07:00 is exclusive", func(c *client) error {
			return wantDecision(c, event("usr_2", "item_shipped", "2025-07-29T07:00:00Z"),
				http.StatusAccepted, "PROCESS_NOTIFICATION", "")
		}},

		{"window start 22:00 is inclusive", func(c *client) error {
			return wantDecision(c, event("usr_2", "item_shipped", "2025-07-28T22:00:00Z"),
				http.StatusOK, "DO_NOT_NOTIFY", "DND_ACTIVE")
		}},

		{"enabled event outside window is allowed", func(c *client) error {
			return wantDecision(c, event("usr_3", "item_shipped", "2025-07-28T12:00:00Z"),
				http.StatusAccepted, "PROCESS_NOTIFICATION", "")
		}},

		{"impossible calendar date is INVALID_TIMESTAMP", func(c *client) error {
			return wantError(c, "/events",
				event("usr_3", "item_shipped", "2025-13-40T25:61:00Z"), "INVALID_TIMESTAMP", "timestamp")
		}},

		{"missing userId is VALIDATION_ERROR", func(c *client) error {
			return wantError(c, "/events", map[string]any{
				"eventId":   "evt_miss",
				"eventType": "item_shipped",
				"timestamp": "2025-07-28T12:00:00Z",
			}, "VALIDATION_ERROR", "userId")
		}},

		{"dashed event type is rejected", func(c *client) error {
			return wantError(c, "/events",
				event("usr_3", "item-shipped", "2025-07-28T12:00:00Z"), "VALIDATION_ERROR", "")
		}},

		{"lowercase z timestamp is rejected", func(c *client) error {
			return wantError(c, "/events",
				event("usr_3", "item_shipped", "2025-07-28T12:00:00z"), "VALIDATION_ERROR", "timestamp")
		}},

		{"extra event property is rejected", func(c *client) error {
			p := event("usr_3", "item_shipped", "2025-07-28T12:00:00Z")
			p["extra"] = 1
			return wantError(c, "/events", p, "VALIDATION_ERROR", "")
		}},

		{"empty preference body points at eventSettings", func(c *client) error {
			return wantError(c, "/preferences/bad_1", map[string]any{}, "VALIDATION_ERROR", "eventSettings")
		}},

		{"empty eventSettings cannot be empty", func(c *client) error {
			st, body, err := c.do(http.MethodPost, "/preferences/bad_2", map[string]any{
				"dnd": nil, "eventSettings": map[string]any{},
			})
			if err != nil {
				return err
			}
			if err := expect(st == http.StatusBadRequest, "status = %d", st); err != nil {
				return err
			}
			return expect(strings.Contains(str(body, "details"), "cannot be empty"),
				"details mismatch: %v", body)
		}},

		{"bad event key is rejected", func(c *client) error {
			return wantError(c, "/preferences/bad_3", map[string]any{
				"dnd":           nil,
				"eventSettings": map[string]any{"bad key": map[string]any{"enabled": true}},
			}, "VALIDATION_ERROR", "")
		}},

		{"malformed dnd start points at its field", func(c *client) error {
			return wantError(c, "/preferences/bad_5", map[string]any{
				"dnd":           map[string]any{"start": "7:00", "end": "07:00"},
				"eventSettings": map[string]any{"item_shipped": map[string]any{"enabled": true}},
			}, "VALIDATION_ERROR", "dnd.start")
		}},

		{"equal window endpoints are rejected", func(c *client) error {
			return wantError(c, "/preferences/bad_7", map[string]any{
				"dnd":           map[string]any{"start": "10:00", "end": "10:00"},
				"eventSettings": map[string]any{"item_shipped": map[string]any{"enabled": true}},
			}, "VALIDATION_ERROR", "dnd.end")
		}},

		{"omitted dnd is a valid record", func(c *client) error {
			st, _, err := c.do(http.MethodPost, "/preferences/usr_omit_dnd", map[string]any{
				"eventSettings": map[string]any{"invoice_generated": map[string]any{"enabled": true}},
			})
			if err != nil {
				return err
			}
			return expect(st == http.StatusOK, "status = %d", st)
		}},

		{"unlisted event type falls through to allow", func(c *client) error {
			return wantDecision(c, event("usr_omit_dnd", "another_event", "2025-07-28T12:00:00Z"),
				http.StatusAccepted, "PROCESS_NOTIFICATION", "")
		}},
	}
}

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("seed")

	base := config.New().Prefix("SEED_").MayString("BASE_URL", "http://localhost:3000")
	c := &client{base: base, hc: &http.Client{Timeout: 10 * time.Second}}

	l.Info().Str("base", base).Msg("seeding")

	var failed int
	for _, tc := range checks() {
		if err := tc.run(c); err != nil {
			failed++
			l.Error().Err(err).Str("case", tc.name).Msg("failed")
			continue
		}
		l.Info().Str("case", tc.name).Msg("ok")
	}

	if failed > 0 {
		l.Error().Int("failed", failed).Msg("seed completed with failures")
		os.Exit(1)
	}
	l.Info().Int("cases", len(checks())).Msg("seed completed")
}
