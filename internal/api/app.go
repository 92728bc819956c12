package api

import (
	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/storage"
)

type App interface {
	Logger() internal.Logger
	EntryRepo() storage.EntryRepository
	SettingsRepo() storage.SettingsRepository
}
