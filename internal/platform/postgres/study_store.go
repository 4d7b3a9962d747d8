package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresStudyStore implements the store.StudyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyStore creates a new PostgreSQL implementation of the StudyStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStudyStore(db store.DBTX, logger *slog.Logger) *PostgresStudyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_store")),
	}
}

// Ensure PostgresStudyStore implements store.StudyStore interface
var _ store.StudyStore = (*PostgresStudyStore)(nil)

// Create implements store.StudyStore.Create
// It saves a new study record to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the discipline reference does not exist.
func (s *PostgresStudyStore) Create(ctx context.Context, record *domain.StudyRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("study record validation failed during create",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	revisions, err := json.Marshal(record.Revisions)
	if err != nil {
		return fmt.Errorf("failed to marshal revisions: %w", err)
	}

	query := `
		INSERT INTO study_records (id, discipline_id, topic, time_spent, date, notes, created_at, revisions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.DisciplineID,
		record.Topic,
		record.TimeSpent,
		record.Date.String(),
		record.Notes,
		record.CreatedAt,
		revisions,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: study record with ID %s", store.ErrDuplicate, record.ID)
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during study record creation",
				slog.String("study_id", record.ID.String()),
				slog.String("discipline_id", record.DisciplineID.String()))
			return fmt.Errorf("%w: discipline with ID %s not found",
				store.ErrInvalidEntity, record.DisciplineID)
		}

		log.Error("failed to create study record",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return err
	}

	log.Info("study record created successfully",
		slog.String("study_id", record.ID.String()),
		slog.String("discipline_id", record.DisciplineID.String()),
		slog.String("date", record.Date.String()))
	return nil
}

// GetByID implements store.StudyStore.GetByID
// Returns store.ErrStudyNotFound if the record does not exist.
func (s *PostgresStudyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving study record by ID", slog.String("study_id", id.String()))

	query := `
		SELECT id, discipline_id, topic, time_spent, date, notes, created_at, revisions
		FROM study_records
		WHERE id = $1
	`

	record, err := scanStudyRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study record not found", slog.String("study_id", id.String()))
			return nil, store.ErrStudyNotFound
		}

		log.Error("failed to retrieve study record",
			slog.String("error", err.Error()),
			slog.String("study_id", id.String()))
		return nil, err
	}

	return record, nil
}

// List implements store.StudyStore.List
// Records are returned most recent study date first.
func (s *PostgresStudyStore) List(ctx context.Context) ([]*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, discipline_id, topic, time_spent, date, notes, created_at, revisions
		FROM study_records
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list study records", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.StudyRecord
	for rows.Next() {
		record, err := scanStudyRecord(rows)
		if err != nil {
			log.Error("failed to scan study record row", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Update implements store.StudyStore.Update
// Returns store.ErrStudyNotFound if the record does not exist.
func (s *PostgresStudyStore) Update(ctx context.Context, record *domain.StudyRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("study record validation failed during update",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	revisions, err := json.Marshal(record.Revisions)
	if err != nil {
		return fmt.Errorf("failed to marshal revisions: %w", err)
	}

	query := `
		UPDATE study_records
		SET discipline_id = $1, topic = $2, time_spent = $3, date = $4, notes = $5, revisions = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		record.DisciplineID,
		record.Topic,
		record.TimeSpent,
		record.Date.String(),
		record.Notes,
		revisions,
		record.ID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: discipline with ID %s not found",
				store.ErrInvalidEntity, record.DisciplineID)
		}

		log.Error("failed to update study record",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrStudyNotFound
	}

	log.Info("study record updated successfully",
		slog.String("study_id", record.ID.String()))
	return nil
}

// Delete implements store.StudyStore.Delete
// Returns store.ErrStudyNotFound if the record does not exist.
func (s *PostgresStudyStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM study_records WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete study record",
			slog.String("error", err.Error()),
			slog.String("study_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrStudyNotFound
	}

	log.Info("study record deleted successfully", slog.String("study_id", id.String()))
	return nil
}

// WithTxStudyStore implements store.StudyStore.WithTxStudyStore
// It returns a new store instance bound to the provided transaction.
func (s *PostgresStudyStore) WithTxStudyStore(tx *sql.Tx) store.StudyStore {
	return &PostgresStudyStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudyRecord(row rowScanner) (*domain.StudyRecord, error) {
	var record domain.StudyRecord
	var date string
	var notes sql.NullString
	var revisions []byte

	err := row.Scan(
		&record.ID,
		&record.DisciplineID,
		&record.Topic,
		&record.TimeSpent,
		&date,
		&notes,
		&record.CreatedAt,
		&revisions,
	)
	if err != nil {
		return nil, err
	}

	if record.Date, err = domain.ParseDay(date); err != nil {
		return nil, err
	}
	record.Notes = notes.String

	// Revisions are a derived display snapshot; a corrupt value falls back
	// to empty instead of making the whole row unreadable.
	if len(revisions) > 0 {
		if err := json.Unmarshal(revisions, &record.Revisions); err != nil {
			record.Revisions = nil
		}
	}

	return &record, nil
}
