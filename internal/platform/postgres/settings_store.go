package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend.
//
// The schedule_settings table holds a single row (id is constrained to 1);
// the application is single-user.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the SettingsStore interface.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get
// Returns store.ErrSettingsNotFound if no settings row exists yet.
func (s *PostgresSettingsStore) Get(ctx context.Context) (schedule.Params, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT first_interval, second_interval, third_interval
		FROM schedule_settings
		WHERE id = 1
	`

	var params schedule.Params
	err := s.db.QueryRowContext(ctx, query).Scan(
		&params.FirstInterval,
		&params.SecondInterval,
		&params.ThirdInterval,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Params{}, store.ErrSettingsNotFound
		}

		log.Error("failed to retrieve schedule settings", slog.String("error", err.Error()))
		return schedule.Params{}, err
	}

	// Stored intervals predate clamping or were edited out of band; keep
	// scheduling total anyway.
	return params.Normalize(), nil
}

// Update implements store.SettingsStore.Update
// It inserts the settings row on first save and updates it afterwards.
func (s *PostgresSettingsStore) Update(ctx context.Context, params schedule.Params) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params = params.Normalize()

	query := `
		INSERT INTO schedule_settings (id, first_interval, second_interval, third_interval, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET first_interval = EXCLUDED.first_interval,
		    second_interval = EXCLUDED.second_interval,
		    third_interval = EXCLUDED.third_interval,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		params.FirstInterval,
		params.SecondInterval,
		params.ThirdInterval,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to update schedule settings", slog.String("error", err.Error()))
		return err
	}

	log.Info("schedule settings updated",
		slog.Int("first_interval", params.FirstInterval),
		slog.Int("second_interval", params.SecondInterval),
		slog.Int("third_interval", params.ThirdInterval))
	return nil
}
