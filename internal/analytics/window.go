package analytics

import (
	"strings"
	"time"
)

// Window is a named relative time range used to scope aggregation.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// ParseWindow maps a request parameter to a Window; anything
// unrecognized (including the empty string) means all.
func ParseWindow(s string) Window {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case WindowToday:
		return WindowToday
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	default:
		return WindowAll
	}
}

// Contains reports whether t falls inside the window, evaluated
// relative to now. The zero time never matches a scoped window: an
// undated record must not be miscounted as recent activity. Scoped
// windows are also bounded above by now, so a future-dated record is
// only visible under all.
func (w Window) Contains(t time.Time, now time.Time) bool {
	if w == WindowAll {
		return true
	}
	if t.IsZero() || t.After(now) {
		return false
	}
	switch w {
	case WindowToday:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !t.Before(now.Add(-7 * 24 * time.Hour))
	case WindowMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !t.Before(first)
	default:
		return true
	}
}

// TimestampInWindow applies the undated-record policy to a raw legacy
// timestamp string: missing or unparseable values are included only
// under the all window.
func TimestampInWindow(raw string, w Window, now time.Time) bool {
	if w == WindowAll {
		return true
	}
	if strings.TrimSpace(raw) == "" {
		return false
	}
	t := ParseTimestamp(raw)
	if t.IsZero() {
		return false
	}
	return w.Contains(t, now)
}

// TimeInWindow applies the same policy to an already typed instant.
func TimeInWindow(t time.Time, w Window, now time.Time) bool {
	if w == WindowAll {
		return true
	}
	return w.Contains(t, now)
}

// FilterBookings returns the bookings whose creation instant falls
// inside the window.
func FilterBookings(recs []BookingRecord, w Window, now time.Time) []BookingRecord {
	if w == WindowAll {
		return recs
	}
	out := make([]BookingRecord, 0, len(recs))
	for _, r := range recs {
		if TimeInWindow(r.CreatedAt, w, now) {
			out = append(out, r)
		}
	}
	return out
}

// FilterMessages returns the messages whose legacy submission timestamp
// falls inside the window.
func FilterMessages(recs []MessageRecord, w Window, now time.Time) []MessageRecord {
	if w == WindowAll {
		return recs
	}
	out := make([]MessageRecord, 0, len(recs))
	for _, r := range recs {
		if TimestampInWindow(r.SubmittedAt, w, now) {
			out = append(out, r)
		}
	}
	return out
}

// FilterUsers returns the users registered inside the window.
func FilterUsers(recs []UserRecord, w Window, now time.Time) []UserRecord {
	if w == WindowAll {
		return recs
	}
	out := make([]UserRecord, 0, len(recs))
	for _, r := range recs {
		if TimeInWindow(r.CreatedAt, w, now) {
			out = append(out, r)
		}
	}
	return out
}
