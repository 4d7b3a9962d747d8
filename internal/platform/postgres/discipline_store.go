package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresDisciplineStore implements the store.DisciplineStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDisciplineStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDisciplineStore creates a new PostgreSQL implementation of the DisciplineStore interface.
func NewPostgresDisciplineStore(db store.DBTX, logger *slog.Logger) *PostgresDisciplineStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDisciplineStore{
		db:     db,
		logger: logger.With(slog.String("component", "discipline_store")),
	}
}

// Ensure PostgresDisciplineStore implements store.DisciplineStore interface
var _ store.DisciplineStore = (*PostgresDisciplineStore)(nil)

// GetByID implements store.DisciplineStore.GetByID
// Returns store.ErrDisciplineNotFound if the discipline does not exist.
func (s *PostgresDisciplineStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discipline, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, color FROM disciplines WHERE id = $1`

	var discipline domain.Discipline
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&discipline.ID,
		&discipline.Name,
		&discipline.Color,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDisciplineNotFound
		}

		log.Error("failed to retrieve discipline",
			slog.String("error", err.Error()),
			slog.String("discipline_id", id.String()))
		return nil, err
	}

	return &discipline, nil
}

// List implements store.DisciplineStore.List
func (s *PostgresDisciplineStore) List(ctx context.Context) ([]*domain.Discipline, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM disciplines ORDER BY name ASC`)
	if err != nil {
		log.Error("failed to list disciplines", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var disciplines []*domain.Discipline
	for rows.Next() {
		var discipline domain.Discipline
		if err := rows.Scan(&discipline.ID, &discipline.Name, &discipline.Color); err != nil {
			log.Error("failed to scan discipline row", slog.String("error", err.Error()))
			return nil, err
		}
		disciplines = append(disciplines, &discipline)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return disciplines, nil
}
