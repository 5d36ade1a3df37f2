// Package domain holds event payload types and decision wire forms
package domain

import (
	"strings"

	perr "notifygate/internal/platform/errors"
)

// Decision values surfaced on the wire
const (
	DecisionProcess     = "PROCESS_NOTIFICATION"
	DecisionDoNotNotify = "DO_NOT_NOTIFY"
)

// EventPayload is the submit-event wire form
type EventPayload struct {
	EventID   string `json:"eventId"   validate:"required"`
	UserID    string `json:"userId"    validate:"required"`
	EventType string `json:"eventType" validate:"required,eventkey"`
	Timestamp string `json:"timestamp" validate:"required,isoutc"`
}

// DecisionResponse is the decision wire form
// Reason is set only when the decision is DO_NOT_NOTIFY
type DecisionResponse struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// Normalize trims identifier whitespace and rejects blank identifiers
// that survive the required tag
func Normalize(in EventPayload) (EventPayload, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.EventType = strings.TrimSpace(in.EventType)
	if in.EventID == "" {
		return EventPayload{}, perr.Validation(perr.CodeRequired, "eventId", "eventId is required")
	}
	if in.UserID == "" {
		return EventPayload{}, perr.Validation(perr.CodeRequired, "userId", "userId is required")
	}
	return in, nil
}
