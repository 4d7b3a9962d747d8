package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// ReviewServiceError is a custom error type for review service errors.
type ReviewServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ReviewServiceError.
func (e *ReviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("review service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReviewServiceError) Unwrap() error {
	return e.Err
}

// NewReviewServiceError creates a new ReviewServiceError.
func NewReviewServiceError(operation, message string, err error) *ReviewServiceError {
	return &ReviewServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ReviewService provides review lifecycle and queue operations.
type ReviewService interface {
	// ListReviews retrieves every review, due date ascending.
	ListReviews(ctx context.Context) ([]*domain.Review, error)

	// ClassifyReviews partitions the reviews relative to the current day:
	// overdue backlog, today's queue, completed history and the pending
	// badge count.
	ClassifyReviews(ctx context.Context) (schedule.Classification, error)

	// ToggleReview flips a review's completion state. Completing a review
	// whose due date is in the future fails with ErrReviewNotDue; reopening
	// is always allowed.
	ToggleReview(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// DeleteReview removes a single review.
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db      *sql.DB
	reviews store.ReviewStore
	now     func() time.Time
	logger  *slog.Logger
}

// NewReviewService creates a new ReviewService. now may be nil, in which
// case time.Now is used; tests inject a fixed clock.
// It returns an error if any of the required dependencies are nil.
func NewReviewService(
	db *sql.DB,
	reviews store.ReviewStore,
	now func() time.Time,
	log *slog.Logger,
) (ReviewService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if reviews == nil {
		return nil, fmt.Errorf("%w: reviews store cannot be nil", domain.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewServiceImpl{
		db:      db,
		reviews: reviews,
		now:     now,
		logger:  log.With(slog.String("component", "review_service")),
	}, nil
}

// ListReviews implements ReviewService.ListReviews
func (s *reviewServiceImpl) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reviews, err := s.reviews.List(ctx)
	if err != nil {
		log.Error("failed to list reviews", slog.String("error", err.Error()))
		return nil, NewReviewServiceError("list_reviews", "failed to list reviews", err)
	}
	return reviews, nil
}

// ClassifyReviews implements ReviewService.ClassifyReviews
func (s *reviewServiceImpl) ClassifyReviews(ctx context.Context) (schedule.Classification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reviews, err := s.reviews.List(ctx)
	if err != nil {
		log.Error("failed to list reviews for classification",
			slog.String("error", err.Error()))
		return schedule.Classification{}, NewReviewServiceError(
			"classify_reviews", "failed to list reviews", err)
	}

	today := domain.Today(s.now())
	classification := schedule.Classify(reviews, today)

	log.Debug("classified reviews",
		slog.String("today", today.String()),
		slog.Int("overdue", len(classification.Overdue)),
		slog.Int("due_today", len(classification.Today)),
		slog.Int("pending", classification.PendingCount))

	return classification, nil
}

// ToggleReview implements ReviewService.ToggleReview
//
// The read and the flip run in one transaction so two concurrent toggles of
// the same review cannot both observe the pending state.
func (s *reviewServiceImpl) ToggleReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var toggled *domain.Review
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviews.WithTxReviewStore(tx)

		review, err := txReviews.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewReviewServiceError("toggle_review", "review not found", store.ErrReviewNotFound)
			}
			return NewReviewServiceError("toggle_review", "failed to retrieve review", err)
		}

		if review.Completed {
			review.Reopen()
		} else {
			now := s.now()
			if review.DueDate.After(domain.Today(now)) {
				return NewReviewServiceError("toggle_review", "review is future-dated", ErrReviewNotDue)
			}
			review.Complete(now)
		}

		if err := txReviews.Update(ctx, review); err != nil {
			return NewReviewServiceError("toggle_review", "failed to save review", err)
		}
		toggled = review
		return nil
	})
	if err != nil {
		log.Error("failed to toggle review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, err
	}

	log.Debug("toggled review",
		slog.String("review_id", id.String()),
		slog.Bool("completed", toggled.Completed))

	return toggled, nil
}

// DeleteReview implements ReviewService.DeleteReview
func (s *reviewServiceImpl) DeleteReview(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.reviews.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewReviewServiceError("delete_review", "review not found", store.ErrReviewNotFound)
		}
		log.Error("failed to delete review",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return NewReviewServiceError("delete_review", "failed to delete review", err)
	}

	log.Debug("deleted review", slog.String("review_id", id.String()))
	return nil
}
