// Package clock holds the wall-clock arithmetic every aggregation uses:
// parsing HH:MM strings, duration between two clock times with overnight
// wraparound, and H:MM formatting of fractional hours.
package clock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned for strings that are not a valid HH:MM
// clock time. Callers at the ingestion boundary convert it into a zero
// contribution rather than failing the whole aggregation.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

const minutesPerDay = 24 * 60

// Time is a wall-clock time of day.
type Time struct {
	Hours   int
	Minutes int
}

// Parse parses "HH:MM" (hours 0-23, minutes 0-59).
func Parse(value string) (Time, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return Time{}, ErrInvalidTimeFormat
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return Time{}, ErrInvalidTimeFormat
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Time{}, ErrInvalidTimeFormat
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Time{}, ErrInvalidTimeFormat
	}
	return Time{Hours: h, Minutes: m}, nil
}

// MinutesOfDay returns minutes since midnight.
func (t Time) MinutesOfDay() int {
	return t.Hours*60 + t.Minutes
}

// DurationHours returns the hours between two HH:MM clock times. When end is
// numerically earlier than start the session is assumed to cross midnight and
// a day's worth of minutes is added. Missing or malformed inputs yield 0.
func DurationHours(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	s, err := Parse(start)
	if err != nil {
		return 0
	}
	e, err := Parse(end)
	if err != nil {
		return 0
	}
	minutes := e.MinutesOfDay() - s.MinutesOfDay()
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return float64(minutes) / 60
}

// GapMinutes returns the minutes from one clock time to another, wrapping
// past midnight the same way DurationHours does. Malformed inputs yield 0.
func GapMinutes(from, to string) int {
	return int(math.Round(DurationHours(from, to) * 60))
}

// FormatHours renders a fractional hour count as "H:MM", e.g. 1.75 -> "1:45".
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%d:%02d", h, m)
}
