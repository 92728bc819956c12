package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/timetracker/internal"
)

// FileStorage keeps all entries and settings in memory and persists them to
// two JSON files. Writes are debounced through background workers; Close
// flushes synchronously.
type FileStorage struct {
	entries           map[string]*internal.TimeEntry   // id -> entry
	dateIndex         map[string][]*internal.TimeEntry // date -> entries (sorted by start)
	settings          *internal.Settings
	mu                sync.RWMutex
	entriesFile       string
	settingsFile      string
	saveEntriesChan   chan struct{}
	saveSettingsChan  chan struct{}
	shutdownChan      chan struct{}
	saveEntriesDelay  time.Duration
	saveSettingsDelay time.Duration
	logger            internal.Logger
}

// NewFileStorage loads both files (missing files are fine) and starts the
// save workers. defaults seeds the settings when no settings file exists yet.
func NewFileStorage(entriesFile, settingsFile string, defaults internal.Settings, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		entries:           make(map[string]*internal.TimeEntry),
		dateIndex:         make(map[string][]*internal.TimeEntry),
		settings:          &defaults,
		entriesFile:       entriesFile,
		settingsFile:      settingsFile,
		saveEntriesChan:   make(chan struct{}, 1),
		saveSettingsChan:  make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveEntriesDelay:  500 * time.Millisecond,
		saveSettingsDelay: 500 * time.Millisecond,
		logger:            logger,
	}

	if err := s.loadEntries(); err != nil {
		logger.Errorf("storage: failed to load entries: %v", err)
		return nil, err
	}
	if err := s.loadSettings(); err != nil {
		logger.Errorf("storage: failed to load settings: %v", err)
		return nil, err
	}

	go s.saveEntriesWorker()
	go s.saveSettingsWorker()

	return s, nil
}

func (s *FileStorage) loadEntries() error {
	file, err := os.Open(s.entriesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []*internal.TimeEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
		s.dateIndex[e.Date] = append(s.dateIndex[e.Date], e)
	}
	for date := range s.dateIndex {
		sortDateIndex(s.dateIndex[date])
	}
	return nil
}

func (s *FileStorage) loadSettings() error {
	file, err := os.Open(s.settingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var st internal.Settings
	if err := json.NewDecoder(file).Decode(&st); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.settings = &st
	s.mu.Unlock()
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveEntries() error {
	s.mu.RLock()
	entries := make([]*internal.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Start < entries[j].Start
	})
	return atomicWriteFileJSON(s.entriesFile, entries)
}

func (s *FileStorage) saveSettings() error {
	s.mu.RLock()
	st := *s.settings
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.settingsFile, &st)
}

func (s *FileStorage) saveEntriesWorker() {
	timer := time.NewTimer(s.saveEntriesDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveEntriesChan:
			timer.Reset(s.saveEntriesDelay)
		case <-timer.C:
			if err := s.saveEntries(); err != nil {
				s.logger.Errorf("storage: error saving entries: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) saveSettingsWorker() {
	timer := time.NewTimer(s.saveSettingsDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveSettingsChan:
			timer.Reset(s.saveSettingsDelay)
		case <-timer.C:
			if err := s.saveSettings(); err != nil {
				s.logger.Errorf("storage: error saving settings: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveEntries(); err != nil {
		return err
	}
	return s.saveSettings()
}

// --- EntryRepository ---

func (s *FileStorage) SaveEntry(ctx context.Context, entry *internal.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	s.dateIndex[entry.Date] = append(s.dateIndex[entry.Date], entry)
	sortDateIndex(s.dateIndex[entry.Date])
	s.markEntriesDirty()
	return nil
}

func (s *FileStorage) UpdateEntry(ctx context.Context, entry *internal.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.entries[entry.ID]
	if !ok {
		return ErrEntryNotFound
	}
	s.removeFromDateIndex(old)
	s.entries[entry.ID] = entry
	s.dateIndex[entry.Date] = append(s.dateIndex[entry.Date], entry)
	sortDateIndex(s.dateIndex[entry.Date])
	s.markEntriesDirty()
	return nil
}

func (s *FileStorage) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return ErrEntryNotFound
	}
	s.removeFromDateIndex(entry)
	delete(s.entries, id)
	s.markEntriesDirty()
	return nil
}

func (s *FileStorage) GetEntry(ctx context.Context, id string) (*internal.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *FileStorage) ListEntries(ctx context.Context) ([]internal.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.dateIndex))
	for date := range s.dateIndex {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	entries := make([]internal.TimeEntry, 0, len(s.entries))
	for _, date := range dates {
		for _, e := range s.dateIndex[date] {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (s *FileStorage) ListEntriesByDate(ctx context.Context, date string) ([]internal.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	indexed, ok := s.dateIndex[date]
	if !ok {
		return []internal.TimeEntry{}, nil
	}
	entries := make([]internal.TimeEntry, len(indexed))
	for i, e := range indexed {
		entries[i] = *e
	}
	return entries, nil
}

// --- SettingsRepository ---

func (s *FileStorage) GetSettings(ctx context.Context) (*internal.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := *s.settings
	return &st, nil
}

func (s *FileStorage) SaveSettings(ctx context.Context, settings *internal.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings = &copied
	select {
	case s.saveSettingsChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) markEntriesDirty() {
	select {
	case s.saveEntriesChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) removeFromDateIndex(entry *internal.TimeEntry) {
	indexed := s.dateIndex[entry.Date]
	for i, e := range indexed {
		if e.ID == entry.ID {
			s.dateIndex[entry.Date] = append(indexed[:i], indexed[i+1:]...)
			break
		}
	}
	if len(s.dateIndex[entry.Date]) == 0 {
		delete(s.dateIndex, entry.Date)
	}
}

func sortDateIndex(entries []*internal.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})
}

// --- Compile-time assertions ---
var _ EntryRepository = (*FileStorage)(nil)
var _ SettingsRepository = (*FileStorage)(nil)
