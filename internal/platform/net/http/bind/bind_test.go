package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "notifygate/internal/platform/errors"
)

type wirePayload struct {
	UserID    string      `json:"userId"    validate:"required"`
	EventType string      `json:"eventType" validate:"required,eventkey"`
	Timestamp string      `json:"timestamp" validate:"required,isoutc"`
	Dnd       *wireWindow `json:"dnd"`
}

type wireWindow struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end"   validate:"required,hhmm"`
}

func parse(t *testing.T, body string) (wirePayload, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return ParseJSON[wirePayload](r)
}

func wantValidation(t *testing.T, err error, code, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("error is not ours: %v", err)
	}
	if e.Category() != perr.CategoryValidation {
		t.Fatalf("category = %s, want %s (err %v)", e.Category(), perr.CategoryValidation, err)
	}
	if code != "" && e.Code() != code {
		t.Fatalf("code = %q, want %q (err %v)", e.Code(), code, err)
	}
	if e.Field() != field {
		t.Fatalf("field = %q, want %q (err %v)", e.Field(), field, err)
	}
}

// TestParseJSON_DecodesValidPayload covers the happy path
func TestParseJSON_DecodesValidPayload(t *testing.T) {
	t.Parallel()

	in, err := parse(t, `{
		"userId": "usr_1",
		"eventType": "item_shipped",
		"timestamp": "2025-07-28T23:00:00Z",
		"dnd": {"start": "22:00", "end": "07:00"}
	}`)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if in.UserID != "usr_1" || in.Dnd == nil || in.Dnd.End != "07:00" {
		t.Fatalf("decoded payload wrong: %+v", in)
	}
}

// TestParseJSON_RejectsUnknownField names the offending key
func TestParseJSON_RejectsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{
		"userId": "usr_1",
		"eventType": "item_shipped",
		"timestamp": "2025-07-28T23:00:00Z",
		"extra": 1
	}`)
	wantValidation(t, err, perr.CodeExtraProperty, "extra")
}

// TestParseJSON_RejectsWrongType maps decoder type errors to the taxonomy
func TestParseJSON_RejectsWrongType(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{"userId": 42}`)
	wantValidation(t, err, perr.CodeInvalidType, "userId")
}

// TestParseJSON_RejectsMalformedJSON covers syntax failures and trailing data
func TestParseJSON_RejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{nope`, `{} {}`, `{"userId":"a"`} {
		_, err := parse(t, body)
		wantValidation(t, err, perr.CodeInvalidJSON, "")
		e, _ := perr.As(err)
		if e.Details() != "Invalid JSON body" {
			t.Fatalf("details = %q for body %q", e.Details(), body)
		}
	}
}

// TestParseJSON_EmptyBodyHitsRequiredRules confirms an empty body reports the
// missing field instead of a JSON syntax error
func TestParseJSON_EmptyBodyHitsRequiredRules(t *testing.T) {
	t.Parallel()

	_, err := parse(t, "")
	wantValidation(t, err, perr.CodeRequired, "userId")
}

// TestParseJSON_MissingFieldNamesIt reports the dotted json name
func TestParseJSON_MissingFieldNamesIt(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{"eventType": "item_shipped", "timestamp": "2025-07-28T23:00:00Z"}`)
	wantValidation(t, err, perr.CodeRequired, "userId")
}

// TestParseJSON_NestedFieldPathIsDotted exercises FieldPath on nested structs
func TestParseJSON_NestedFieldPathIsDotted(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{
		"userId": "usr_1",
		"eventType": "item_shipped",
		"timestamp": "2025-07-28T23:00:00Z",
		"dnd": {"start": "7:00", "end": "07:00"}
	}`)
	wantValidation(t, err, perr.CodeInvalidFormat, "dnd.start")
}

// TestParseJSON_TimestampTagRejectsLowercaseZ pins the uppercase Z rule
func TestParseJSON_TimestampTagRejectsLowercaseZ(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{
		"userId": "usr_1",
		"eventType": "item_shipped",
		"timestamp": "2025-07-28T12:00:00z"
	}`)
	wantValidation(t, err, perr.CodeInvalidFormat, "timestamp")
}

// TestParseJSON_EventKeyTagRejectsDashes covers the restricted identifier rule
func TestParseJSON_EventKeyTagRejectsDashes(t *testing.T) {
	t.Parallel()

	_, err := parse(t, `{
		"userId": "usr_1",
		"eventType": "item-shipped",
		"timestamp": "2025-07-28T12:00:00Z"
	}`)
	wantValidation(t, err, perr.CodeInvalidFormat, "eventType")
}

// TestFormatHelpers pins the three boundary regexes
func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	if !HHMMValid("23:59") || HHMMValid("24:00") || HHMMValid("7:00") {
		t.Fatalf("HHMMValid boundaries wrong")
	}
	if !EventKeyValid("item_shipped.v2") || EventKeyValid("item shipped") || EventKeyValid("") {
		t.Fatalf("EventKeyValid boundaries wrong")
	}
	if !ISOUTCValid("2025-07-28T23:00:00Z") || !ISOUTCValid("2025-07-28T23:00:00.123Z") {
		t.Fatalf("ISOUTCValid rejects valid timestamps")
	}
	if ISOUTCValid("2025-07-28T23:00:00z") || ISOUTCValid("2025-07-28T23:00:00+02:00") {
		t.Fatalf("ISOUTCValid accepts non-UTC forms")
	}
}
