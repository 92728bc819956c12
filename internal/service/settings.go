package service

import (
	"context"

	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/storage"
)

// SettingsRequest replaces the whole settings snapshot.
type SettingsRequest struct {
	DailyGoal       float64             `json:"daily_goal" validate:"gte=0"`
	WarnThreshold   float64             `json:"warn_threshold" validate:"gte=0,lte=1"`
	DefaultCategory string              `json:"default_category" validate:"required"`
	Categories      []internal.Category `json:"categories" validate:"dive"`
	Schedule        ScheduleRequest     `json:"schedule"`
}

type ScheduleRequest struct {
	Template    string          `json:"template" validate:"omitempty,oneof=5/2 2/2 3/3 5/5 custom"`
	StartDay    int             `json:"start_day" validate:"omitempty,gte=1,lte=7"`
	CycleAnchor string          `json:"cycle_anchor" validate:"omitempty,datetime=2006-01-02"`
	Overrides   map[string]bool `json:"overrides"`
}

func ValidateSettingsRequest(req *SettingsRequest) error {
	return validate.Struct(req)
}

func UpdateSettings(ctx context.Context, repo storage.SettingsRepository, req *SettingsRequest) (*internal.Settings, error) {
	st := &internal.Settings{
		DailyGoal:       req.DailyGoal,
		WarnThreshold:   req.WarnThreshold,
		DefaultCategory: req.DefaultCategory,
		Categories:      req.Categories,
		Schedule: internal.WorkSchedule{
			Template:    req.Schedule.Template,
			StartDay:    req.Schedule.StartDay,
			CycleAnchor: req.Schedule.CycleAnchor,
			Overrides:   req.Schedule.Overrides,
		},
	}
	if err := repo.SaveSettings(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
