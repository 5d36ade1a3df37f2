// Package decision applies notification suppression precedence over stored preferences
package decision

import (
	"time"

	"notifygate/internal/core/dnd"
)

// Reason explains a suppressed notification
type Reason string

// Suppression reasons surfaced on the wire
const (
	ReasonDndActive        Reason = "DND_ACTIVE"
	ReasonUserUnsubscribed Reason = "USER_UNSUBSCRIBED_FROM_EVENT"
)

// Window is a textual DND window as stored on a preference record
type Window struct {
	Start string
	End   string
}

// Record is the decision engine's read-only view of one user's preferences
type Record struct {
	// Dnd is nil when the user configured no window
	Dnd *Window

	// Events maps event type to its enabled flag
	// a missing key is not the same as enabled false
	Events map[string]bool
}

// Decision is the outcome for a single event
type Decision struct {
	Notify bool
	Reason Reason // empty when Notify
}

// Allow is the process-notification outcome
func Allow() Decision { return Decision{Notify: true} }

// Suppress is the do-not-notify outcome with a reason
func Suppress(r Reason) Decision { return Decision{Reason: r} }

// Evaluate decides whether to deliver an event occurring at the given instant.
// Pure and total: it performs no I/O and never panics on any input.
//
// Precedence:
//  1. no record for the user: allow (unknown users are never dropped)
//  2. event type explicitly disabled: suppress as unsubscribed
//  3. instant inside the DND window: suppress as dnd active
//  4. otherwise allow
//
// An event type absent from Events falls through to the DND check,
// not to an implicit allow
func Evaluate(rec *Record, eventType string, at time.Time) Decision {
	if rec == nil {
		return Allow()
	}
	if enabled, ok := rec.Events[eventType]; ok && !enabled {
		return Suppress(ReasonUserUnsubscribed)
	}
	if rec.Dnd != nil && dnd.Within(rec.Dnd.Start, rec.Dnd.End, at) {
		return Suppress(ReasonDndActive)
	}
	return Allow()
}
