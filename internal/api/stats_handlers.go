package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timetracker/internal/service"
)

func GetDayStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid or missing 'date' (YYYY-MM-DD)")
			return
		}

		entries, err := app.EntryRepo().ListEntriesByDate(c.Request.Context(), date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		metrics := service.AggregateDay(entries, st.DailyGoal, st.WarnThreshold)
		HandleSuccess(c, app.Logger(), metrics, map[string]any{"date": date})
	}
}

func GetPeriodStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := app.EntryRepo().ListEntries(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		filter := service.PeriodFilter(c.DefaultQuery("filter", string(service.FilterMonth)))
		comparison := service.AggregatePeriod(entries, filter, time.Now(), c.Query("from"), c.Query("to"))

		HandleSuccess(c, app.Logger(), comparison, map[string]any{"filter": string(filter)})
	}
}

func GetCategoryStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := app.EntryRepo().ListEntries(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		filter := service.PeriodFilter(c.DefaultQuery("filter", string(service.FilterAll)))
		r := service.ResolveRange(filter, time.Now(), c.Query("from"), c.Query("to"))
		breakdown := service.CategoryBreakdown(service.FilterEntries(entries, r), service.NewCategoryIndex(st.Categories))

		HandleSuccess(c, app.Logger(), breakdown, map[string]any{"filter": string(filter)})
	}
}

func GetCalendar(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.Query("month")
		if _, err := time.Parse("2006-01", month); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid or missing 'month' (YYYY-MM)")
			return
		}
		months := []string{month}
		if compare := c.Query("compare"); compare != "" {
			if _, err := time.Parse("2006-01", compare); err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid 'compare' month (YYYY-MM)")
				return
			}
			months = append(months, compare)
		}

		entries, err := app.EntryRepo().ListEntries(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		calendars := service.BuildMonthCalendars(entries, months, *st)
		if len(calendars) == 0 {
			HandleError(c, app.Logger(), errors.New("no calendars built"), 400, "No valid months")
			return
		}

		HandleSuccess(c, app.Logger(), calendars, nil)
	}
}
