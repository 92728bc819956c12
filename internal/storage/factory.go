package storage

import "github.com/yourname/timetracker/internal"

func NewFileRepositories(entriesFile, settingsFile string, defaults internal.Settings, logger internal.Logger) (EntryRepository, SettingsRepository, error) {
	storage, err := NewFileStorage(entriesFile, settingsFile, defaults, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (EntryRepository, SettingsRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
