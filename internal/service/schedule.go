package service

import (
	"time"

	"github.com/yourname/timetracker/internal"
)

const isoDate = "2006-01-02"

// rotating shift patterns: days on followed by days off.
var rotations = map[string]struct{ on, total int }{
	internal.TemplateTwoTwo:     {2, 4},
	internal.TemplateThreeThree: {3, 6},
	internal.TemplateFiveFive:   {5, 10},
}

// IsWorkingDay reports whether date is a working day under the schedule.
// Explicit per-date overrides always win. The fixed 5/2 template marks the
// first five weekdays counted cyclically from StartDay as working; rotating
// templates classify by the day's offset from CycleAnchor modulo the cycle
// length. A rotating template without an anchor treats every day as working,
// and an unknown or empty template falls back to weekends off.
func IsWorkingDay(date time.Time, ws internal.WorkSchedule) bool {
	if v, ok := ws.Overrides[date.Format(isoDate)]; ok {
		return v
	}

	switch ws.Template {
	case internal.TemplateFiveTwo:
		adjusted := (isoWeekday(date) - scheduleStartDay(ws) + 7) % 7
		return adjusted < 5

	case internal.TemplateTwoTwo, internal.TemplateThreeThree, internal.TemplateFiveFive:
		rot := rotations[ws.Template]
		anchor, err := time.Parse(isoDate, ws.CycleAnchor)
		if err != nil {
			// No usable anchor: the cycle position is undefined, so count
			// every day as working rather than guessing.
			return true
		}
		pos := daysBetween(anchor, date) % rot.total
		if pos < 0 {
			pos += rot.total
		}
		return pos < rot.on

	case internal.TemplateCustom:
		// Days not explicitly marked off are working.
		return true

	default:
		wd := date.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
}

// CountWorkDays counts working days in the inclusive date range.
func CountWorkDays(from, to time.Time, ws internal.WorkSchedule) int {
	count := 0
	for d := dateOnly(from); !d.After(dateOnly(to)); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, ws) {
			count++
		}
	}
	return count
}

// isoWeekday maps Go weekdays to ISO numbering, Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func scheduleStartDay(ws internal.WorkSchedule) int {
	if ws.StartDay < 1 || ws.StartDay > 7 {
		return 1
	}
	return ws.StartDay
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)) / (24 * time.Hour))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
