package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timetracker/internal/service"
	"github.com/yourname/timetracker/internal/storage"
)

func PostEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.EntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		entry, err := service.CreateEntry(c.Request.Context(), app.EntryRepo(), *st, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func GetEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := app.EntryRepo().ListEntries(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		filter := service.PeriodFilter(c.DefaultQuery("filter", string(service.FilterAll)))
		r := service.ResolveRange(filter, time.Now(), c.Query("from"), c.Query("to"))
		filtered := service.FilterEntries(entries, r)

		HandleSuccess(c, app.Logger(), filtered, map[string]any{"count": len(filtered)})
	}
}

func PutEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.EntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		entry, err := service.UpdateEntry(c.Request.Context(), app.EntryRepo(), *st, c.Param("id"), &body)
		if err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				HandleError(c, app.Logger(), err, 404, "Entry not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func DeleteEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.EntryRepo().DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				HandleError(c, app.Logger(), err, 404, "Entry not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete entry")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": true})
	}
}
