package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

const reviewColumns = `id, study_record_id, discipline_id, topic, due_date, completed, completed_at`

// CreateMultiple implements store.ReviewStore.CreateMultiple
// It saves a batch of reviews. Run within a transaction when the batch
// belongs to a study registration or regeneration.
func (s *PostgresReviewStore) CreateMultiple(ctx context.Context, reviews []*domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO reviews (id, study_record_id, discipline_id, topic, due_date, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, review := range reviews {
		if err := review.Validate(); err != nil {
			log.Warn("review validation failed during create",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := s.db.ExecContext(
			ctx,
			query,
			review.ID,
			review.StudyRecordID,
			review.DisciplineID,
			review.Topic,
			review.DueDate.String(),
			review.Completed,
			review.CompletedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: review with ID %s", store.ErrDuplicate, review.ID)
			}
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: study record with ID %s not found",
					store.ErrInvalidEntity, review.StudyRecordID)
			}

			log.Error("failed to create review",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()))
			return err
		}
	}

	log.Debug("reviews created successfully", slog.Int("count", len(reviews)))
	return nil
}

// GetByID implements store.ReviewStore.GetByID
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}

		log.Error("failed to retrieve review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, err
	}

	return review, nil
}

// List implements store.ReviewStore.List
func (s *PostgresReviewStore) List(ctx context.Context) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY due_date ASC`
	return s.queryReviews(ctx, query)
}

// ListByStudy implements store.ReviewStore.ListByStudy
func (s *PostgresReviewStore) ListByStudy(ctx context.Context, studyID uuid.UUID) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE study_record_id = $1 ORDER BY due_date ASC`
	return s.queryReviews(ctx, query, studyID)
}

// Update implements store.ReviewStore.Update
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during update",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE reviews
		SET discipline_id = $1, topic = $2, due_date = $3, completed = $4, completed_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		review.DisciplineID,
		review.Topic,
		review.DueDate.String(),
		review.Completed,
		review.CompletedAt,
		review.ID,
	)
	if err != nil {
		log.Error("failed to update review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrReviewNotFound
	}

	return nil
}

// Delete implements store.ReviewStore.Delete
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrReviewNotFound
	}

	return nil
}

// DeleteByStudy implements store.ReviewStore.DeleteByStudy
// Removing zero rows is not an error.
func (s *PostgresReviewStore) DeleteByStudy(ctx context.Context, studyID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE study_record_id = $1`, studyID)
	if err != nil {
		log.Error("failed to delete reviews for study",
			slog.String("error", err.Error()),
			slog.String("study_id", studyID.String()))
		return err
	}

	return nil
}

// WithTxReviewStore implements store.ReviewStore.WithTxReviewStore
// It returns a new store instance bound to the provided transaction.
func (s *PostgresReviewStore) WithTxReviewStore(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresReviewStore) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reviews", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row", slog.String("error", err.Error()))
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var dueDate string
	var completedAt sql.NullTime

	err := row.Scan(
		&review.ID,
		&review.StudyRecordID,
		&review.DisciplineID,
		&review.Topic,
		&dueDate,
		&review.Completed,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if review.DueDate, err = domain.ParseDay(dueDate); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		review.CompletedAt = &t
	}

	return &review, nil
}
