package face

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time of day, stored as seconds since
// midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM:SS string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// Window is a fixed daily time range during which face capture runs.
// Both bounds are inclusive. A window whose end precedes its start
// wraps past midnight.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow builds a Window from two HH:MM:SS strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the wall-clock time of day of t falls
// inside the window.
func (w Window) Contains(t time.Time) bool {
	tod := TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
	if w.Start <= w.End {
		return tod >= w.Start && tod <= w.End
	}
	// Wraps midnight
	return tod >= w.Start || tod <= w.End
}
