package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
type ReviewStore interface {
	// CreateMultiple saves a batch of reviews to the store.
	// IMPORTANT: run this within a transaction (WithTxReviewStore +
	// store.RunInTransaction) whenever the batch belongs to a study
	// registration or regeneration, so the set is created atomically.
	CreateMultiple(ctx context.Context, reviews []*domain.Review) error

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// List retrieves all reviews.
	List(ctx context.Context) ([]*domain.Review, error)

	// ListByStudy retrieves the reviews generated for one study record,
	// due date ascending. Supports the regeneration and cascade-delete
	// paths, which need the full review set for a study.
	ListByStudy(ctx context.Context, studyID uuid.UUID) ([]*domain.Review, error)

	// Update replaces the stored review with the given one.
	// Returns ErrReviewNotFound if the review does not exist.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review by its ID.
	// Returns ErrReviewNotFound if the review does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByStudy removes every review belonging to the given study
	// record. Removing zero rows is not an error; a study registered with
	// scheduling disabled has no reviews.
	DeleteByStudy(ctx context.Context, studyID uuid.UUID) error

	// WithTxReviewStore returns a new ReviewStore instance that uses the
	// provided transaction.
	WithTxReviewStore(tx *sql.Tx) ReviewStore
}
