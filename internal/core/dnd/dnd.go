// Package dnd evaluates do-not-disturb time windows on a UTC wall clock
package dnd

import (
	"fmt"
	"time"
)

// MinutesPerDay is the size of the wall-clock domain
const MinutesPerDay = 24 * 60

// TimeOfDay is minutes since midnight, 0..1439
type TimeOfDay int

// Valid reports whether t is inside the wall-clock domain
func (t TimeOfDay) Valid() bool { return t >= 0 && t < MinutesPerDay }

// Clock splits t back into hour and minute
func (t TimeOfDay) Clock() (hh, mm int) { return int(t) / 60, int(t) % 60 }

// String renders t as HH:MM
func (t TimeOfDay) String() string {
	hh, mm := t.Clock()
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

// At extracts the UTC wall-clock minute of an instant
// date, seconds and sub-second precision do not participate in window membership
func At(instant time.Time) TimeOfDay {
	u := instant.UTC()
	return TimeOfDay(u.Hour()*60 + u.Minute())
}

// Parse parses a strict HH:MM string (00:00..23:59) into a TimeOfDay
func Parse(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("dnd: malformed time %q", s)
	}
	hh, ok1 := atoi2(s[0], s[1])
	mm, ok2 := atoi2(s[3], s[4])
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return 0, fmt.Errorf("dnd: malformed time %q", s)
	}
	return TimeOfDay(hh*60 + mm), nil
}

func atoi2(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Window is a half-open suppression window on the wall clock
// Start is inclusive, End is exclusive; Start > End wraps past midnight
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow parses textual start and end into a Window
func ParseWindow(start, end string) (Window, error) {
	s, err := Parse(start)
	if err != nil {
		return Window{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether t falls inside the window.
// A degenerate window (Start == End) never matches, and out-of-range
// endpoints disable the window rather than misfire
func (w Window) Contains(t TimeOfDay) bool {
	if !w.Start.Valid() || !w.End.Valid() || !t.Valid() {
		return false
	}
	if w.Start == w.End {
		return false
	}
	if w.Start < w.End {
		return t >= w.Start && t < w.End
	}
	// wraps midnight: union of [start,1440) and [0,end)
	return t >= w.Start || t < w.End
}

// Within evaluates a textual window against an instant.
// Malformed endpoints yield false so bad stored config can never
// suppress a notification
func Within(start, end string, at time.Time) bool {
	w, err := ParseWindow(start, end)
	if err != nil {
		return false
	}
	return w.Contains(At(at))
}
