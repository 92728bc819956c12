package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/timetracker/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- EntryRepository ---

func (p *PostgresStorage) SaveEntry(ctx context.Context, entry *internal.TimeEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO time_entries (id, date, start_time, end_time, duration, category, earned, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Date, entry.Start, entry.End, entry.Duration, entry.Category, entry.Earned, entry.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert entry: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateEntry(ctx context.Context, entry *internal.TimeEntry) error {
	tag, err := p.pool.Exec(ctx, `UPDATE time_entries SET date = $2, start_time = $3, end_time = $4, duration = $5, category = $6, earned = $7 WHERE id = $1`,
		entry.ID, entry.Date, entry.Start, entry.End, entry.Duration, entry.Category, entry.Earned)
	if err != nil {
		p.logger.Errorf("failed to update entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteEntry(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (p *PostgresStorage) GetEntry(ctx context.Context, id string) (*internal.TimeEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, date, start_time, end_time, duration, category, earned, created_at FROM time_entries WHERE id = $1`, id)
	var e internal.TimeEntry
	if err := row.Scan(&e.ID, &e.Date, &e.Start, &e.End, &e.Duration, &e.Category, &e.Earned, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		p.logger.Errorf("failed to get entry: %v", err)
		return nil, err
	}
	return &e, nil
}

func (p *PostgresStorage) ListEntries(ctx context.Context) ([]internal.TimeEntry, error) {
	return p.queryEntries(ctx, `SELECT id, date, start_time, end_time, duration, category, earned, created_at FROM time_entries ORDER BY date, start_time`)
}

func (p *PostgresStorage) ListEntriesByDate(ctx context.Context, date string) ([]internal.TimeEntry, error) {
	return p.queryEntries(ctx, `SELECT id, date, start_time, end_time, duration, category, earned, created_at FROM time_entries WHERE date = $1 ORDER BY start_time`, date)
}

func (p *PostgresStorage) queryEntries(ctx context.Context, query string, args ...interface{}) ([]internal.TimeEntry, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.TimeEntry
	for rows.Next() {
		var e internal.TimeEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Start, &e.End, &e.Duration, &e.Category, &e.Earned, &e.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- SettingsRepository ---

// Settings live in a single jsonb row; the whole snapshot is replaced on
// every save.
func (p *PostgresStorage) GetSettings(ctx context.Context) (*internal.Settings, error) {
	row := p.pool.QueryRow(ctx, `SELECT data FROM settings WHERE id = 1`)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &internal.Settings{}, nil
		}
		p.logger.Errorf("failed to get settings: %v", err)
		return nil, err
	}
	var st internal.Settings
	if err := json.Unmarshal(data, &st); err != nil {
		p.logger.Errorf("failed to decode settings: %v", err)
		return nil, err
	}
	return &st, nil
}

func (p *PostgresStorage) SaveSettings(ctx context.Context, settings *internal.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO settings (id, data) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET data = $1`, data)
	if err != nil {
		p.logger.Errorf("failed to save settings: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ EntryRepository = (*PostgresStorage)(nil)
var _ SettingsRepository = (*PostgresStorage)(nil)
