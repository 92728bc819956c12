package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// TimeEntry is one logged work session. Start/End are wall-clock times in
// HH:MM; an entry may instead carry an explicit Duration in hours.
type TimeEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Start     string    `json:"start,omitempty"`
	End       string    `json:"end,omitempty"`
	Duration  float64   `json:"duration"` // hours
	Category  string    `json:"category"`
	Earned    float64   `json:"earned"`
	CreatedAt time.Time `json:"created_at"`
}

// Rate returns earned per hour, 0 when the entry has no duration.
func (e TimeEntry) Rate() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return e.Earned / e.Duration
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Work schedule templates.
const (
	TemplateFiveTwo    = "5/2"
	TemplateTwoTwo     = "2/2"
	TemplateThreeThree = "3/3"
	TemplateFiveFive   = "5/5"
	TemplateCustom     = "custom"
)

// WorkSchedule describes which calendar dates count as working days.
// Overrides (keyed by YYYY-MM-DD) always win over the template. Rotating
// templates need CycleAnchor, the date an on-phase starts; without it every
// day classifies as working.
type WorkSchedule struct {
	Template    string          `json:"template"`
	StartDay    int             `json:"start_day"` // ISO weekday, Monday=1
	CycleAnchor string          `json:"cycle_anchor,omitempty"`
	Overrides   map[string]bool `json:"overrides,omitempty"`
}

// Settings is the per-user configuration snapshot the aggregators read.
type Settings struct {
	DailyGoal       float64      `json:"daily_goal"`
	WarnThreshold   float64      `json:"warn_threshold"` // fraction of goal, e.g. 0.5
	DefaultCategory string       `json:"default_category"`
	Categories      []Category   `json:"categories,omitempty"`
	Schedule        WorkSchedule `json:"schedule"`
}

// Day status values, derived from total earned vs the daily goal.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusDanger  = "danger"
	StatusNone    = "none"
)

type DayStatus struct {
	Status  string `json:"status"`
	Percent int    `json:"percent"`
}

// DayMetrics aggregates all entries sharing one date. Recomputed on every
// read, never persisted. Formatted fields use H:MM.
type DayMetrics struct {
	TotalEarned    float64   `json:"total_earned"`
	TotalHours     float64   `json:"total_hours"`
	EntryCount     int       `json:"entry_count"`
	AverageRate    float64   `json:"average_rate"`
	TotalWorkTime  string    `json:"total_work_time"`
	LongestSession string    `json:"longest_session"`
	LongestBreak   string    `json:"longest_break"`
	TotalBreaks    string    `json:"total_breaks"`
	Status         DayStatus `json:"status"`
}

type PeriodStats struct {
	TotalHours  float64 `json:"total_hours"`
	TotalEarned float64 `json:"total_earned"`
	AvgRate     float64 `json:"avg_rate"`
	DaysWorked  int     `json:"days_worked"`
	TotalBreaks float64 `json:"total_breaks"` // hours
	DaysOff     int     `json:"days_off"`
	EntryCount  int     `json:"entry_count"`
}

// PeriodDeltas holds percentage changes against the previous period. A nil
// field means not computable (previous base was zero, or no previous period).
type PeriodDeltas struct {
	Hours  *float64 `json:"hours,omitempty"`
	Earned *float64 `json:"earned,omitempty"`
	Rate   *float64 `json:"rate,omitempty"`
}

type PeriodComparison struct {
	Current  PeriodStats  `json:"current"`
	Previous PeriodStats  `json:"previous"`
	Deltas   PeriodDeltas `json:"deltas"`
}

type CategoryStats struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Earned   float64 `json:"earned"`
	Count    int     `json:"count"`
	AvgRate  float64 `json:"avg_rate"`
}

// DayCell is one cell of the heatmap calendar. Metrics is nil on days
// without entries; Intensity is 0 there as well.
type DayCell struct {
	Date      string      `json:"date"`
	Day       int         `json:"day"`
	IsWorkDay bool        `json:"is_work_day"`
	Intensity float64     `json:"intensity"`
	Metrics   *DayMetrics `json:"metrics,omitempty"`
}

type MonthCalendar struct {
	Month string    `json:"month"` // YYYY-MM
	Cells []DayCell `json:"cells"`
}
