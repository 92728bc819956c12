package service

import (
	"sort"

	"github.com/yourname/timetracker/internal"
)

// CategoryBreakdown groups entries by canonical category and totals hours,
// earnings, and entry counts per group. Results are sorted by earnings
// descending, ties by category for stable output.
func CategoryBreakdown(entries []internal.TimeEntry, idx *CategoryIndex) []internal.CategoryStats {
	byCategory := make(map[string]*internal.CategoryStats)
	for _, e := range entries {
		key := e.Category
		if idx != nil {
			key = idx.Resolve(key)
		}
		cs, ok := byCategory[key]
		if !ok {
			cs = &internal.CategoryStats{Category: key}
			byCategory[key] = cs
		}
		cs.Hours += e.Duration
		cs.Earned += e.Earned
		cs.Count++
	}

	stats := make([]internal.CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		if cs.Hours > 0 {
			cs.AvgRate = cs.Earned / cs.Hours
		}
		cs.Hours = round2(cs.Hours)
		stats = append(stats, *cs)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Earned != stats[j].Earned {
			return stats[i].Earned > stats[j].Earned
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}
