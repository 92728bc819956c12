package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/timetracker/internal"
)

func taggedEntry(category string, duration, earned float64) internal.TimeEntry {
	e := entry("2024-03-05", "", "", duration, earned)
	e.Category = category
	return e
}

func TestCategoryBreakdownTotalsAndOrder(t *testing.T) {
	entries := []internal.TimeEntry{
		taggedEntry("dev", 4, 600),
		taggedEntry("dev", 2, 200),
		taggedEntry("review", 1, 900),
		taggedEntry("meetings", 3, 100),
	}

	stats := CategoryBreakdown(entries, nil)
	require.Len(t, stats, 3)

	assert.Equal(t, "review", stats[0].Category)
	assert.Equal(t, 900.0, stats[0].Earned)
	assert.Equal(t, 900.0, stats[0].AvgRate)

	assert.Equal(t, "dev", stats[1].Category)
	assert.Equal(t, 6.0, stats[1].Hours)
	assert.Equal(t, 800.0, stats[1].Earned)
	assert.Equal(t, 2, stats[1].Count)

	assert.Equal(t, "meetings", stats[2].Category)
}

func TestCategoryBreakdownTiesSortByName(t *testing.T) {
	entries := []internal.TimeEntry{
		taggedEntry("zeta", 1, 100),
		taggedEntry("alpha", 1, 100),
	}

	stats := CategoryBreakdown(entries, nil)
	require.Len(t, stats, 2)
	assert.Equal(t, "alpha", stats[0].Category)
	assert.Equal(t, "zeta", stats[1].Category)
}

func TestCategoryBreakdownResolvesAliases(t *testing.T) {
	idx := NewCategoryIndex([]internal.Category{{ID: "c1", Name: "Development"}})
	entries := []internal.TimeEntry{
		taggedEntry("c1", 2, 200),
		taggedEntry("Development", 3, 300),
	}

	stats := CategoryBreakdown(entries, idx)
	require.Len(t, stats, 1)
	assert.Equal(t, "c1", stats[0].Category)
	assert.Equal(t, 5.0, stats[0].Hours)
	assert.Equal(t, 500.0, stats[0].Earned)
	assert.Equal(t, 2, stats[0].Count)
}

func TestCategoryBreakdownZeroHoursNoRate(t *testing.T) {
	stats := CategoryBreakdown([]internal.TimeEntry{taggedEntry("bonus", 0, 50)}, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, 0.0, stats[0].AvgRate)
}
