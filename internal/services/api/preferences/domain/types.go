// Package domain holds preference types and normalization rules
package domain

import (
	"notifygate/internal/platform/net/http/bind"

	perr "notifygate/internal/platform/errors"
)

// DndWindow is a do-not-disturb window in UTC wall-clock time
type DndWindow struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end"   validate:"required,hhmm"`
}

// EventFlag is the per event type subscription switch
type EventFlag struct {
	Enabled bool `json:"enabled"`
}

// Preference is one user's stored record, also its wire form on reads
type Preference struct {
	Dnd           *DndWindow           `json:"dnd"`
	EventSettings map[string]EventFlag `json:"eventSettings"`
}

// Ack acknowledges a replace
type Ack struct {
	OK     bool   `json:"ok"`
	UserID string `json:"userId"`
}

// UpdateInput is the replace payload before normalization
// Enabled is a pointer so a flag object without the key is caught as missing,
// not defaulted to false
type UpdateInput struct {
	Dnd           *DndWindow                `json:"dnd"`
	EventSettings map[string]UpdateFlagInput `json:"eventSettings"`
}

// UpdateFlagInput is the wire form of one event flag on writes
type UpdateFlagInput struct {
	Enabled *bool `json:"enabled"`
}

// Normalize applies the rules struct tags cannot express and returns the
// immutable record to store. The first violation wins
func Normalize(in UpdateInput) (Preference, error) {
	if in.EventSettings == nil {
		return Preference{}, perr.Validation(perr.CodeRequired, "eventSettings", "eventSettings is required")
	}
	settings := make(map[string]EventFlag, len(in.EventSettings))
	for key, flag := range in.EventSettings {
		if !bind.EventKeyValid(key) {
			return Preference{}, perr.Validation(perr.CodeInvalidFormat, "eventSettings."+key, "invalid event key")
		}
		if flag.Enabled == nil {
			return Preference{}, perr.Validation(
				perr.CodeRequired, "eventSettings."+key+".enabled", "enabled is required")
		}
		settings[key] = EventFlag{Enabled: *flag.Enabled}
	}
	if len(settings) == 0 {
		return Preference{}, perr.Validation(perr.CodeCannotBeEmpty, "eventSettings", "cannot be empty")
	}

	var win *DndWindow
	if in.Dnd != nil {
		if in.Dnd.Start == in.Dnd.End {
			return Preference{}, perr.Validation(perr.CodeEqualWindow, "dnd.end", "start and end cannot be equal")
		}
		win = &DndWindow{Start: in.Dnd.Start, End: in.Dnd.End}
	}

	return Preference{Dnd: win, EventSettings: settings}, nil
}

// Clone deep copies p so callers can never alias stored state
func (p Preference) Clone() Preference {
	out := Preference{}
	if p.Dnd != nil {
		w := *p.Dnd
		out.Dnd = &w
	}
	if p.EventSettings != nil {
		out.EventSettings = make(map[string]EventFlag, len(p.EventSettings))
		for k, v := range p.EventSettings {
			out.EventSettings[k] = v
		}
	}
	return out
}
