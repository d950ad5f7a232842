package enums

import (
	"fmt"
	"time"
)

// TimeWindow selects the reporting period for sales summaries.
type TimeWindow string

const (
	TimeWindowToday      TimeWindow = "today"
	TimeWindowTrailing30 TimeWindow = "30d"
	TimeWindowYearToDate TimeWindow = "ytd"
)

var validTimeWindows = []TimeWindow{TimeWindowToday, TimeWindowTrailing30, TimeWindowYearToDate}

// String implements fmt.Stringer.
func (w TimeWindow) String() string {
	return string(w)
}

// IsValid reports whether the value is a known TimeWindow.
func (w TimeWindow) IsValid() bool {
	for _, candidate := range validTimeWindows {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseTimeWindow converts raw input into a TimeWindow.
func ParseTimeWindow(value string) (TimeWindow, error) {
	for _, candidate := range validTimeWindows {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time window %q", value)
}

// Bounds returns the [from, to) interval the window covers relative to now.
func (w TimeWindow) Bounds(now time.Time) (time.Time, time.Time, error) {
	to := now
	switch w {
	case TimeWindowToday:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, to, nil
	case TimeWindowTrailing30:
		return now.AddDate(0, 0, -30), to, nil
	case TimeWindowYearToDate:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time window %q", w)
	}
}
