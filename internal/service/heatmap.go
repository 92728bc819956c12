package service

import (
	"time"

	"github.com/yourname/timetracker/internal"
)

// Intensity bounds for heatmap cells. The floor keeps a month of identical
// values visibly shaded instead of rendering flat.
const (
	minIntensity = 0.1
	maxIntensity = 1.0
)

// Intensity linearly maps value into [minIntensity, maxIntensity] relative
// to the min/max of all values in scope. An empty scope yields 0 (nothing to
// compare against); a degenerate scope where min == max yields the floor.
func Intensity(value float64, scope []float64) float64 {
	if len(scope) == 0 {
		return 0
	}
	min, max := scope[0], scope[0]
	for _, v := range scope[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return minIntensity
	}
	ratio := (value - min) / (max - min)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	return minIntensity + ratio*(maxIntensity-minIntensity)
}

// BuildMonthCalendars builds heatmap calendars for the given months
// ("YYYY-MM"), normalizing intensities over the union of day earnings across
// all of them so two compared months share one scale. Months that fail to
// parse are skipped.
func BuildMonthCalendars(entries []internal.TimeEntry, months []string, st internal.Settings) []internal.MonthCalendar {
	byDate := GroupByDate(entries)

	type dayData struct {
		date    time.Time
		metrics *internal.DayMetrics
	}
	var (
		calendars []internal.MonthCalendar
		monthDays [][]dayData
		scope     []float64
	)
	for _, month := range months {
		first, err := time.Parse("2006-01", month)
		if err != nil {
			continue
		}
		days := make([]dayData, 0, 31)
		for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
			dd := dayData{date: d}
			if dayEntries := byDate[d.Format(isoDate)]; len(dayEntries) > 0 {
				m := AggregateDay(dayEntries, st.DailyGoal, st.WarnThreshold)
				dd.metrics = &m
				scope = append(scope, m.TotalEarned)
			}
			days = append(days, dd)
		}
		calendars = append(calendars, internal.MonthCalendar{Month: month})
		monthDays = append(monthDays, days)
	}

	for i, days := range monthDays {
		cells := make([]internal.DayCell, 0, len(days))
		for _, dd := range days {
			cell := internal.DayCell{
				Date:      dd.date.Format(isoDate),
				Day:       dd.date.Day(),
				IsWorkDay: IsWorkingDay(dd.date, st.Schedule),
				Metrics:   dd.metrics,
			}
			if dd.metrics != nil {
				cell.Intensity = Intensity(dd.metrics.TotalEarned, scope)
			}
			cells = append(cells, cell)
		}
		calendars[i].Cells = cells
	}
	return calendars
}
