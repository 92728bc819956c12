package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/storage"
)

var validate = validator.New()

// EntryRequest is the payload for creating or replacing a time entry. Start
// and end are optional but validated as HH:MM when present; either an
// explicit duration or a start/end pair gives the entry its hours.
type EntryRequest struct {
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	Start      string   `json:"start,omitempty" validate:"omitempty,datetime=15:04"`
	End        string   `json:"end,omitempty" validate:"omitempty,datetime=15:04"`
	Duration   *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Earned     float64  `json:"earned" validate:"gte=0"`
	Category   string   `json:"category,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
}

func ValidateEntryRequest(req *EntryRequest) error {
	return validate.Struct(req)
}

func (req *EntryRequest) raw() RawEntry {
	raw := RawEntry{
		Date:       req.Date,
		Start:      req.Start,
		End:        req.End,
		Earned:     req.Earned,
		Category:   req.Category,
		CategoryID: req.CategoryID,
	}
	if req.Duration != nil {
		raw.Duration = *req.Duration
	}
	return raw
}

// CreateEntry normalizes the request against the current settings, assigns
// an id, and persists the entry.
func CreateEntry(ctx context.Context, repo storage.EntryRepository, st internal.Settings, req *EntryRequest) (*internal.TimeEntry, error) {
	entry := Normalize(req.raw(), st.DefaultCategory, NewCategoryIndex(st.Categories))
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	if err := repo.SaveEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry replaces the entry with the given id, keeping its id and
// creation time. Editing never mutates the stored record in place.
func UpdateEntry(ctx context.Context, repo storage.EntryRepository, st internal.Settings, id string, req *EntryRequest) (*internal.TimeEntry, error) {
	existing, err := repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := Normalize(req.raw(), st.DefaultCategory, NewCategoryIndex(st.Categories))
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := repo.UpdateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
