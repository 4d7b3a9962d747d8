package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// StudyServiceError is a custom error type for study service errors.
type StudyServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StudyServiceError.
func (e *StudyServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("study service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("study service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudyServiceError) Unwrap() error {
	return e.Err
}

// NewStudyServiceError creates a new StudyServiceError.
func NewStudyServiceError(operation, message string, err error) *StudyServiceError {
	return &StudyServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// RegisterStudyInput carries the fields for logging a new study session.
type RegisterStudyInput struct {
	DisciplineID uuid.UUID
	Topic        string
	TimeSpent    string
	Date         domain.Day
	Notes        string
}

// UpdateStudyInput carries a partial update for a study record. Nil fields
// are left unchanged.
type UpdateStudyInput struct {
	DisciplineID *uuid.UUID
	Topic        *string
	TimeSpent    *string
	Date         *domain.Day
	Notes        *string
}

// StudyRegistration is the result of registering a study session: the
// persisted record and the reviews generated for it. Reviews is empty when
// automatic scheduling is disabled.
type StudyRegistration struct {
	Record  *domain.StudyRecord `json:"record"`
	Reviews []*domain.Review    `json:"reviews"`
}

// StudyUpdate is the result of updating a study record. When the study date
// changed, Regenerated is true, RemovedReviewIDs lists the replaced review
// set and Reviews holds its replacement; otherwise Reviews holds the
// existing reviews after any topic/discipline propagation.
type StudyUpdate struct {
	Record           *domain.StudyRecord `json:"record"`
	Regenerated      bool                `json:"regenerated"`
	RemovedReviewIDs []uuid.UUID         `json:"removed_review_ids,omitempty"`
	Reviews          []*domain.Review    `json:"reviews"`
}

// StudyService provides study-session operations.
type StudyService interface {
	// RegisterStudy logs a new study session and schedules its reviews in a
	// single transaction.
	RegisterStudy(ctx context.Context, input RegisterStudyInput) (*StudyRegistration, error)

	// GetStudy retrieves a study record by its ID.
	GetStudy(ctx context.Context, id uuid.UUID) (*domain.StudyRecord, error)

	// ListStudies retrieves all study records, most recent first.
	ListStudies(ctx context.Context) ([]*domain.StudyRecord, error)

	// UpdateStudy applies a partial update. A date change regenerates the
	// review set from the new date; any other change propagates topic and
	// discipline to the existing reviews without touching their due dates
	// or completion state.
	UpdateStudy(ctx context.Context, id uuid.UUID, input UpdateStudyInput) (*StudyUpdate, error)

	// DeleteStudy removes a study record and all of its reviews.
	DeleteStudy(ctx context.Context, id uuid.UUID) error
}

// studyServiceImpl implements the StudyService interface.
type studyServiceImpl struct {
	db           *sql.DB
	studies      store.StudyStore
	reviews      store.ReviewStore
	settings     store.SettingsStore
	defaults     schedule.Params
	autoSchedule bool
	logger       *slog.Logger
}

// NewStudyService creates a new StudyService. defaults holds the configured
// intervals used until settings are saved through the API. autoSchedule
// controls whether registering a study generates its review set; it is off
// only for deployments that log sessions without spaced repetition.
// It returns an error if any of the required dependencies are nil.
func NewStudyService(
	db *sql.DB,
	studies store.StudyStore,
	reviews store.ReviewStore,
	settings store.SettingsStore,
	defaults schedule.Params,
	autoSchedule bool,
	log *slog.Logger,
) (StudyService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if studies == nil {
		return nil, fmt.Errorf("%w: studies store cannot be nil", domain.ErrValidation)
	}
	if reviews == nil {
		return nil, fmt.Errorf("%w: reviews store cannot be nil", domain.ErrValidation)
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: settings store cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &studyServiceImpl{
		db:           db,
		studies:      studies,
		reviews:      reviews,
		settings:     settings,
		defaults:     defaults.Normalize(),
		autoSchedule: autoSchedule,
		logger:       log.With(slog.String("component", "study_service")),
	}, nil
}

// scheduleParams loads the stored intervals, falling back to the configured
// defaults when none have been saved yet.
func (s *studyServiceImpl) scheduleParams(ctx context.Context) (schedule.Params, error) {
	params, err := s.settings.Get(ctx)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return schedule.Params{}, err
	}
	return params, nil
}

// RegisterStudy implements StudyService.RegisterStudy
func (s *studyServiceImpl) RegisterStudy(
	ctx context.Context,
	input RegisterStudyInput,
) (*StudyRegistration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := domain.NewStudyRecord(
		input.DisciplineID,
		input.Topic,
		input.TimeSpent,
		input.Date,
		input.Notes,
	)
	if err != nil {
		return nil, NewStudyServiceError("register_study", "invalid study record", err)
	}

	var reviews []*domain.Review
	if s.autoSchedule {
		params, err := s.scheduleParams(ctx)
		if err != nil {
			return nil, NewStudyServiceError("register_study", "failed to load schedule settings", err)
		}

		var snapshots []domain.RevisionSnapshot
		reviews, snapshots, err = schedule.ScheduleReviews(record, params)
		if err != nil {
			return nil, NewStudyServiceError("register_study", "failed to schedule reviews", err)
		}
		record.Revisions = snapshots
	}

	log.Debug("registering study session",
		slog.String("study_id", record.ID.String()),
		slog.String("date", record.Date.String()),
		slog.Int("review_count", len(reviews)))

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.studies.WithTxStudyStore(tx).Create(ctx, record); err != nil {
			return NewStudyServiceError("register_study", "failed to save study record", err)
		}
		if len(reviews) > 0 {
			if err := s.reviews.WithTxReviewStore(tx).CreateMultiple(ctx, reviews); err != nil {
				return NewStudyServiceError("register_study", "failed to save reviews", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to register study session",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return nil, err
	}

	log.Info("registered study session",
		slog.String("study_id", record.ID.String()),
		slog.Int("review_count", len(reviews)))

	return &StudyRegistration{Record: record, Reviews: reviews}, nil
}

// GetStudy implements StudyService.GetStudy
func (s *studyServiceImpl) GetStudy(ctx context.Context, id uuid.UUID) (*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := s.studies.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewStudyServiceError("get_study", "study record not found", store.ErrStudyNotFound)
		}
		log.Error("failed to retrieve study record",
			slog.String("error", err.Error()),
			slog.String("study_id", id.String()))
		return nil, NewStudyServiceError("get_study", "failed to retrieve study record", err)
	}
	return record, nil
}

// ListStudies implements StudyService.ListStudies
func (s *studyServiceImpl) ListStudies(ctx context.Context) ([]*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.studies.List(ctx)
	if err != nil {
		log.Error("failed to list study records", slog.String("error", err.Error()))
		return nil, NewStudyServiceError("list_studies", "failed to list study records", err)
	}
	return records, nil
}

// UpdateStudy implements StudyService.UpdateStudy
func (s *studyServiceImpl) UpdateStudy(
	ctx context.Context,
	id uuid.UUID,
	input UpdateStudyInput,
) (*StudyUpdate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := s.studies.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewStudyServiceError("update_study", "study record not found", store.ErrStudyNotFound)
		}
		return nil, NewStudyServiceError("update_study", "failed to retrieve study record", err)
	}

	dateChanged := applyStudyUpdate(record, input)
	if err := record.Validate(); err != nil {
		return nil, NewStudyServiceError("update_study", "invalid study record", err)
	}

	if dateChanged {
		return s.regenerateReviews(ctx, log, record)
	}
	return s.propagateReviewFields(ctx, log, record)
}

// applyStudyUpdate merges the non-nil input fields into the record and
// reports whether the study date changed.
func applyStudyUpdate(record *domain.StudyRecord, input UpdateStudyInput) bool {
	if input.DisciplineID != nil {
		record.DisciplineID = *input.DisciplineID
	}
	if input.Topic != nil {
		record.Topic = *input.Topic
	}
	if input.TimeSpent != nil {
		record.TimeSpent = *input.TimeSpent
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}

	if input.Date != nil && *input.Date != record.Date {
		record.Date = *input.Date
		return true
	}
	return false
}

// regenerateReviews replaces the record's review set from its new date.
// Completed reviews are discarded along with pending ones: they belong to
// the old schedule and keeping them would mix two timelines.
func (s *studyServiceImpl) regenerateReviews(
	ctx context.Context,
	log *slog.Logger,
	record *domain.StudyRecord,
) (*StudyUpdate, error) {
	var reviews []*domain.Review
	if s.autoSchedule {
		params, err := s.scheduleParams(ctx)
		if err != nil {
			return nil, NewStudyServiceError("update_study", "failed to load schedule settings", err)
		}

		var snapshots []domain.RevisionSnapshot
		reviews, snapshots, err = schedule.ScheduleReviews(record, params)
		if err != nil {
			return nil, NewStudyServiceError("update_study", "failed to schedule reviews", err)
		}
		record.Revisions = snapshots
	} else {
		record.Revisions = nil
	}

	var removed []uuid.UUID
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviews.WithTxReviewStore(tx)

		old, err := txReviews.ListByStudy(ctx, record.ID)
		if err != nil {
			return NewStudyServiceError("update_study", "failed to list existing reviews", err)
		}
		for _, review := range old {
			removed = append(removed, review.ID)
		}

		if err := txReviews.DeleteByStudy(ctx, record.ID); err != nil {
			return NewStudyServiceError("update_study", "failed to remove stale reviews", err)
		}
		if len(reviews) > 0 {
			if err := txReviews.CreateMultiple(ctx, reviews); err != nil {
				return NewStudyServiceError("update_study", "failed to save regenerated reviews", err)
			}
		}
		if err := s.studies.WithTxStudyStore(tx).Update(ctx, record); err != nil {
			return NewStudyServiceError("update_study", "failed to save study record", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to regenerate reviews",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return nil, err
	}

	log.Info("study date changed, reviews regenerated",
		slog.String("study_id", record.ID.String()),
		slog.Int("removed_count", len(removed)),
		slog.Int("review_count", len(reviews)))

	return &StudyUpdate{
		Record:           record,
		Regenerated:      true,
		RemovedReviewIDs: removed,
		Reviews:          reviews,
	}, nil
}

// propagateReviewFields saves a non-date edit and copies the record's topic
// and discipline onto the existing reviews. Review IDs, due dates and
// completion state are preserved.
func (s *studyServiceImpl) propagateReviewFields(
	ctx context.Context,
	log *slog.Logger,
	record *domain.StudyRecord,
) (*StudyUpdate, error) {
	var reviews []*domain.Review
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.studies.WithTxStudyStore(tx).Update(ctx, record); err != nil {
			return NewStudyServiceError("update_study", "failed to save study record", err)
		}

		txReviews := s.reviews.WithTxReviewStore(tx)
		existing, err := txReviews.ListByStudy(ctx, record.ID)
		if err != nil {
			return NewStudyServiceError("update_study", "failed to list reviews", err)
		}
		for _, review := range existing {
			if review.Topic == record.Topic && review.DisciplineID == record.DisciplineID {
				continue
			}
			review.Topic = record.Topic
			review.DisciplineID = record.DisciplineID
			if err := txReviews.Update(ctx, review); err != nil {
				return NewStudyServiceError("update_study", "failed to propagate review fields", err)
			}
		}
		reviews = existing
		return nil
	})
	if err != nil {
		log.Error("failed to update study record",
			slog.String("error", err.Error()),
			slog.String("study_id", record.ID.String()))
		return nil, err
	}

	log.Debug("updated study session",
		slog.String("study_id", record.ID.String()))

	return &StudyUpdate{Record: record, Reviews: reviews}, nil
}

// DeleteStudy implements StudyService.DeleteStudy
func (s *studyServiceImpl) DeleteStudy(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.reviews.WithTxReviewStore(tx).DeleteByStudy(ctx, id); err != nil {
			return NewStudyServiceError("delete_study", "failed to delete reviews", err)
		}
		if err := s.studies.WithTxStudyStore(tx).Delete(ctx, id); err != nil {
			if store.IsNotFoundError(err) {
				return NewStudyServiceError("delete_study", "study record not found", store.ErrStudyNotFound)
			}
			return NewStudyServiceError("delete_study", "failed to delete study record", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete study session",
			slog.String("error", err.Error()),
			slog.String("study_id", id.String()))
		return err
	}

	log.Info("deleted study session and its reviews",
		slog.String("study_id", id.String()))
	return nil
}
