// Package service contains the decision workflow for inbound events
package service

import (
	"context"
	"time"

	"notifygate/internal/core/decision"
	perr "notifygate/internal/platform/errors"
	"notifygate/internal/platform/logger"

	"notifygate/internal/services/api/events/domain"
	prefdomain "notifygate/internal/services/api/preferences/domain"
)

// Service defines the events service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the events service
type Svc struct {
	Prefs prefdomain.ReaderPort
}

// New constructs an events service over the preferences read port
func New(prefs prefdomain.ReaderPort) *Svc {
	if prefs == nil {
		panic("events.Service requires a non nil preferences reader")
	}
	return &Svc{Prefs: prefs}
}

// Decide evaluates one event against the user's stored preferences.
//
// A missing record is the normal fail-open case and allows delivery.
// Any other read failure propagates: a broken store must surface as an
// internal error, never be coerced into fail-open
func (s *Svc) Decide(ctx context.Context, in domain.EventPayload) (domain.DecisionResponse, error) {
	in, err := domain.Normalize(in)
	if err != nil {
		return domain.DecisionResponse{}, err
	}

	// format was checked at bind time; this catches impossible instants
	// like month 13 that the shape regex cannot see
	at, err := time.Parse(time.RFC3339, in.Timestamp)
	if err != nil {
		return domain.DecisionResponse{}, perr.InvalidTimestamp("timestamp", "Unparsable date")
	}

	var rec *decision.Record
	pref, err := s.Prefs.Read(ctx, in.UserID)
	switch {
	case err == nil:
		rec = toRecord(pref)
	case perr.IsNotFound(err):
		rec = nil
	default:
		return domain.DecisionResponse{}, err
	}

	d := decision.Evaluate(rec, in.EventType, at)
	logger.C(ctx).Debug().
		Str("event_id", in.EventID).
		Str("user_id", in.UserID).
		Str("event_type", in.EventType).
		Bool("notify", d.Notify).
		Str("reason", string(d.Reason)).
		Msg("event decided")

	if d.Notify {
		return domain.DecisionResponse{Decision: domain.DecisionProcess}, nil
	}
	return domain.DecisionResponse{Decision: domain.DecisionDoNotNotify, Reason: string(d.Reason)}, nil
}

// toRecord projects a stored preference into the engine's read-only view
func toRecord(p prefdomain.Preference) *decision.Record {
	rec := &decision.Record{Events: make(map[string]bool, len(p.EventSettings))}
	for k, v := range p.EventSettings {
		rec.Events[k] = v.Enabled
	}
	if p.Dnd != nil {
		rec.Dnd = &decision.Window{Start: p.Dnd.Start, End: p.Dnd.End}
	}
	return rec
}
