package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/timetracker/internal/service"
)

func GetSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := app.SettingsRepo().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}
		HandleSuccess(c, app.Logger(), st, nil)
	}
}

func PutSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSettingsRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		st, err := service.UpdateSettings(c.Request.Context(), app.SettingsRepo(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save settings")
			return
		}

		HandleSuccess(c, app.Logger(), st, nil)
	}
}
