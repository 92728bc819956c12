package service

import (
	"math"
	"sort"

	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/clock"
)

// Break gaps outside this window are not breaks: under 30 minutes is noise
// between back-to-back sessions, over 12 hours is a gap between shifts.
const (
	minBreakMinutes = 30
	maxBreakMinutes = 12 * 60
)

// AggregateDay computes the metrics for all entries of one calendar date.
// Entries are expected normalized; the function never fails, an empty or
// malformed slice simply produces zero metrics with status "none".
func AggregateDay(entries []internal.TimeEntry, dailyGoal, warnThreshold float64) internal.DayMetrics {
	if len(entries) == 0 {
		return internal.DayMetrics{
			TotalWorkTime:  clock.FormatHours(0),
			LongestSession: clock.FormatHours(0),
			LongestBreak:   clock.FormatHours(0),
			TotalBreaks:    clock.FormatHours(0),
			Status:         internal.DayStatus{Status: internal.StatusNone},
		}
	}

	var totalEarned, totalHours float64
	for _, e := range entries {
		totalEarned += e.Earned
		totalHours += e.Duration
	}

	// Entries without a start time cannot anchor sessions or breaks; the
	// sums above already counted them.
	timed := make([]internal.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Start != "" {
			timed = append(timed, e)
		}
	}
	sortByStart(timed)

	var longestSession float64
	for _, e := range timed {
		if e.Duration > longestSession {
			longestSession = e.Duration
		}
	}

	var longestBreakMin, totalBreakMin int
	for i := 0; i < len(timed)-1; i++ {
		if timed[i].End == "" {
			continue
		}
		gap := gapBetween(timed[i], timed[i+1])
		if gap < minBreakMinutes || gap > maxBreakMinutes {
			continue
		}
		totalBreakMin += gap
		if gap > longestBreakMin {
			longestBreakMin = gap
		}
	}

	avgRate := 0.0
	if totalHours > 0 {
		avgRate = totalEarned / totalHours
	}

	return internal.DayMetrics{
		TotalEarned:    totalEarned,
		TotalHours:     round2(totalHours),
		EntryCount:     len(entries),
		AverageRate:    avgRate,
		TotalWorkTime:  clock.FormatHours(totalHours),
		LongestSession: clock.FormatHours(longestSession),
		LongestBreak:   clock.FormatHours(float64(longestBreakMin) / 60),
		TotalBreaks:    clock.FormatHours(float64(totalBreakMin) / 60),
		Status:         dayStatus(totalEarned, dailyGoal, warnThreshold),
	}
}

// dayStatus classifies earnings against the daily goal: >=100% success,
// >= warnThreshold warning, below danger. Without a goal there is nothing
// to classify.
func dayStatus(earned, goal, warnThreshold float64) internal.DayStatus {
	if goal <= 0 {
		return internal.DayStatus{Status: internal.StatusNone}
	}
	percent := int(math.Round(earned / goal * 100))
	status := internal.StatusDanger
	switch {
	case percent >= 100:
		status = internal.StatusSuccess
	case float64(percent) >= warnThreshold*100:
		status = internal.StatusWarning
	}
	return internal.DayStatus{Status: status, Percent: percent}
}

// GroupByDate buckets entries by their calendar date, preserving input order
// within each date.
func GroupByDate(entries []internal.TimeEntry) map[string][]internal.TimeEntry {
	byDate := make(map[string][]internal.TimeEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}

func sortByStart(entries []internal.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return startMinutes(entries[i]) < startMinutes(entries[j])
	})
}

// gapBetween is the break from the end of one entry to the start of the
// next, in minutes, wrapping past midnight.
func gapBetween(prev, next internal.TimeEntry) int {
	return clock.GapMinutes(prev.End, next.Start)
}

func startMinutes(e internal.TimeEntry) int {
	t, err := clock.Parse(e.Start)
	if err != nil {
		return 0
	}
	return t.MinutesOfDay()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
