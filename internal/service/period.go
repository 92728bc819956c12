package service

import (
	"time"

	"github.com/yourname/timetracker/internal"
)

// PeriodFilter selects a contiguous date range relative to a reference time.
type PeriodFilter string

const (
	FilterToday  PeriodFilter = "today"
	FilterWeek   PeriodFilter = "week"
	FilterMonth  PeriodFilter = "month"
	FilterYear   PeriodFilter = "year"
	FilterCustom PeriodFilter = "custom"
	FilterAll    PeriodFilter = "all"
)

// DateRange is an inclusive calendar date range. All marks the unbounded
// all-time range.
type DateRange struct {
	From time.Time
	To   time.Time
	All  bool
}

// Contains reports whether the ISO date falls inside the range. Malformed
// dates are never contained.
func (r DateRange) Contains(date string) bool {
	if r.All {
		return true
	}
	d, err := time.Parse(isoDate, date)
	if err != nil {
		return false
	}
	return !d.Before(r.From) && !d.After(r.To)
}

// ResolveRange resolves a filter to its date range. Week is the Monday-start
// ISO week containing now; custom is the inclusive [from, to] pair, falling
// back to all-time when either bound is missing or malformed.
func ResolveRange(filter PeriodFilter, now time.Time, customFrom, customTo string) DateRange {
	today := dateOnly(now)
	switch filter {
	case FilterToday:
		return DateRange{From: today, To: today}
	case FilterWeek:
		monday := today.AddDate(0, 0, -(isoWeekday(today) - 1))
		return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}
	case FilterMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{From: first, To: first.AddDate(0, 1, -1)}
	case FilterYear:
		first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{From: first, To: first.AddDate(1, 0, -1)}
	case FilterCustom:
		from, errFrom := time.Parse(isoDate, customFrom)
		to, errTo := time.Parse(isoDate, customTo)
		if errFrom != nil || errTo != nil {
			return DateRange{All: true}
		}
		return DateRange{From: from, To: to}
	default:
		return DateRange{All: true}
	}
}

// previousRange returns the immediately preceding equivalent period. All-time
// has no predecessor.
func previousRange(filter PeriodFilter, cur DateRange) (DateRange, bool) {
	switch filter {
	case FilterToday:
		d := cur.From.AddDate(0, 0, -1)
		return DateRange{From: d, To: d}, true
	case FilterWeek:
		return DateRange{From: cur.From.AddDate(0, 0, -7), To: cur.To.AddDate(0, 0, -7)}, true
	case FilterMonth:
		first := cur.From.AddDate(0, -1, 0)
		return DateRange{From: first, To: first.AddDate(0, 1, -1)}, true
	case FilterYear:
		first := cur.From.AddDate(-1, 0, 0)
		return DateRange{From: first, To: first.AddDate(1, 0, -1)}, true
	case FilterCustom:
		days := daysBetween(cur.From, cur.To) + 1
		return DateRange{From: cur.From.AddDate(0, 0, -days), To: cur.From.AddDate(0, 0, -1)}, true
	default:
		return DateRange{}, false
	}
}

// FilterEntries returns the entries whose date falls inside the range,
// preserving order.
func FilterEntries(entries []internal.TimeEntry, r DateRange) []internal.TimeEntry {
	filtered := make([]internal.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// AggregatePeriod computes stats for the period selected by filter along
// with the immediately preceding equivalent period, so callers can render
// percentage deltas. Deltas stay nil when the previous base is zero or no
// previous period exists.
func AggregatePeriod(entries []internal.TimeEntry, filter PeriodFilter, referenceNow time.Time, customFrom, customTo string) internal.PeriodComparison {
	cur := ResolveRange(filter, referenceNow, customFrom, customTo)
	comparison := internal.PeriodComparison{
		Current: rangeStats(FilterEntries(entries, cur), cur, referenceNow),
	}

	prev, ok := previousRange(filter, cur)
	if !ok {
		return comparison
	}
	comparison.Previous = rangeStats(FilterEntries(entries, prev), prev, referenceNow)
	comparison.Deltas = internal.PeriodDeltas{
		Hours:  percentDelta(comparison.Current.TotalHours, comparison.Previous.TotalHours),
		Earned: percentDelta(comparison.Current.TotalEarned, comparison.Previous.TotalEarned),
		Rate:   percentDelta(comparison.Current.AvgRate, comparison.Previous.AvgRate),
	}
	return comparison
}

// rangeStats aggregates entries already filtered into r. For the all-time
// range the days-off window runs from the earliest entry to the reference
// day.
func rangeStats(entries []internal.TimeEntry, r DateRange, referenceNow time.Time) internal.PeriodStats {
	stats := internal.PeriodStats{EntryCount: len(entries)}

	worked := make(map[string]bool)
	for _, e := range entries {
		stats.TotalHours += e.Duration
		stats.TotalEarned += e.Earned
		worked[e.Date] = true
	}
	stats.DaysWorked = len(worked)
	if stats.TotalHours > 0 {
		stats.AvgRate = stats.TotalEarned / stats.TotalHours
	}
	stats.TotalHours = round2(stats.TotalHours)

	var totalBreakMin int
	for _, dayEntries := range GroupByDate(entries) {
		totalBreakMin += dayBreakMinutes(dayEntries)
	}
	stats.TotalBreaks = round2(float64(totalBreakMin) / 60)

	from, to := r.From, r.To
	if r.All {
		if len(entries) == 0 {
			return stats
		}
		from = earliestDate(entries, referenceNow)
		to = dateOnly(referenceNow)
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !worked[d.Format(isoDate)] {
			stats.DaysOff++
		}
	}
	return stats
}

// dayBreakMinutes sums the break gaps within one day's entries, same
// thresholds as the day aggregator.
func dayBreakMinutes(entries []internal.TimeEntry) int {
	timed := make([]internal.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Start != "" {
			timed = append(timed, e)
		}
	}
	if len(timed) < 2 {
		return 0
	}
	sortByStart(timed)

	total := 0
	for i := 0; i < len(timed)-1; i++ {
		if timed[i].End == "" {
			continue
		}
		gap := gapBetween(timed[i], timed[i+1])
		if gap >= minBreakMinutes && gap <= maxBreakMinutes {
			total += gap
		}
	}
	return total
}

func earliestDate(entries []internal.TimeEntry, fallback time.Time) time.Time {
	earliest := dateOnly(fallback)
	for _, e := range entries {
		if d, err := time.Parse(isoDate, e.Date); err == nil && d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}

func percentDelta(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := (cur - prev) / prev * 100
	return &v
}
