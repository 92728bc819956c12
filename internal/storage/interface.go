package storage

import (
	"context"
	"errors"

	"github.com/yourname/timetracker/internal"
)

var ErrEntryNotFound = errors.New("storage: entry not found")

type EntryRepository interface {
	SaveEntry(ctx context.Context, entry *internal.TimeEntry) error
	UpdateEntry(ctx context.Context, entry *internal.TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*internal.TimeEntry, error)
	ListEntries(ctx context.Context) ([]internal.TimeEntry, error)
	ListEntriesByDate(ctx context.Context, date string) ([]internal.TimeEntry, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*internal.Settings, error)
	SaveSettings(ctx context.Context, settings *internal.Settings) error
}
