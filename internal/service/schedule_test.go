package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/timetracker/internal"
)

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFiveTwoMondayStart(t *testing.T) {
	ws := internal.WorkSchedule{Template: internal.TemplateFiveTwo, StartDay: 1}

	// 2024-01-01 is a Monday.
	for i := 0; i < 5; i++ {
		assert.True(t, IsWorkingDay(day("2024-01-01").AddDate(0, 0, i), ws), "weekday offset %d", i)
	}
	assert.False(t, IsWorkingDay(day("2024-01-06"), ws)) // Saturday
	assert.False(t, IsWorkingDay(day("2024-01-07"), ws)) // Sunday
}

func TestFiveTwoShiftedStart(t *testing.T) {
	// Week anchored to Wednesday: Wed-Sun working, Mon-Tue off.
	ws := internal.WorkSchedule{Template: internal.TemplateFiveTwo, StartDay: 3}
	assert.True(t, IsWorkingDay(day("2024-01-03"), ws))  // Wednesday
	assert.True(t, IsWorkingDay(day("2024-01-07"), ws))  // Sunday
	assert.False(t, IsWorkingDay(day("2024-01-01"), ws)) // Monday
	assert.False(t, IsWorkingDay(day("2024-01-02"), ws)) // Tuesday
}

func TestRotatingTwoTwo(t *testing.T) {
	ws := internal.WorkSchedule{Template: internal.TemplateTwoTwo, CycleAnchor: "2024-01-01"}

	assert.True(t, IsWorkingDay(day("2024-01-01"), ws))
	assert.True(t, IsWorkingDay(day("2024-01-02"), ws))
	assert.False(t, IsWorkingDay(day("2024-01-03"), ws))
	assert.False(t, IsWorkingDay(day("2024-01-04"), ws))
	assert.True(t, IsWorkingDay(day("2024-01-05"), ws)) // next cycle

	// Dates before the anchor classify by the same cycle, extended backwards.
	assert.False(t, IsWorkingDay(day("2023-12-31"), ws))
	assert.False(t, IsWorkingDay(day("2023-12-30"), ws))
	assert.True(t, IsWorkingDay(day("2023-12-29"), ws))
}

func TestRotatingWithoutAnchorTreatsAllDaysWorking(t *testing.T) {
	ws := internal.WorkSchedule{Template: internal.TemplateThreeThree}
	for i := 0; i < 14; i++ {
		assert.True(t, IsWorkingDay(day("2024-01-01").AddDate(0, 0, i), ws))
	}
}

func TestOverrideBeatsTemplate(t *testing.T) {
	ws := internal.WorkSchedule{
		Template:  internal.TemplateFiveTwo,
		StartDay:  1,
		Overrides: map[string]bool{"2024-01-01": false, "2024-01-06": true},
	}
	assert.False(t, IsWorkingDay(day("2024-01-01"), ws)) // Monday forced off
	assert.True(t, IsWorkingDay(day("2024-01-06"), ws))  // Saturday forced on
}

func TestCustomTemplateDefaultsToWorking(t *testing.T) {
	ws := internal.WorkSchedule{
		Template:  internal.TemplateCustom,
		Overrides: map[string]bool{"2024-01-02": false},
	}
	assert.True(t, IsWorkingDay(day("2024-01-01"), ws))
	assert.False(t, IsWorkingDay(day("2024-01-02"), ws))
	assert.True(t, IsWorkingDay(day("2024-01-06"), ws)) // Saturday still working
}

func TestUnknownTemplateFallsBackToWeekends(t *testing.T) {
	ws := internal.WorkSchedule{}
	assert.True(t, IsWorkingDay(day("2024-01-05"), ws))  // Friday
	assert.False(t, IsWorkingDay(day("2024-01-06"), ws)) // Saturday
	assert.False(t, IsWorkingDay(day("2024-01-07"), ws)) // Sunday
}

func TestCountWorkDays(t *testing.T) {
	ws := internal.WorkSchedule{Template: internal.TemplateFiveTwo, StartDay: 1}
	// January 2024: 23 weekdays.
	assert.Equal(t, 23, CountWorkDays(day("2024-01-01"), day("2024-01-31"), ws))
}
