package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = errors.New("review ID cannot be empty")

	// ErrReviewStudyIDEmpty is returned when a review's study record ID is empty or nil.
	ErrReviewStudyIDEmpty = errors.New("review study record ID cannot be empty")

	// ErrReviewDisciplineIDEmpty is returned when a review's discipline ID is empty or nil.
	ErrReviewDisciplineIDEmpty = errors.New("review discipline ID cannot be empty")

	// ErrReviewCompletedAtMissing is returned when a completed review has no
	// completion timestamp, or a pending review has one.
	ErrReviewCompletedAtMissing = errors.New("completed_at must be set exactly when completed is true")
)

// Review is one scheduled spaced-repetition checkpoint, tied to one study
// record and one interval slot. DueDate is immutable after creation; when a
// study record's date changes the whole review set is deleted and recreated,
// never mutated in place.
//
// DaysOverdue is derived display data populated by the query engine for
// overdue reviews; it is never persisted.
type Review struct {
	ID            uuid.UUID  `json:"id"`
	StudyRecordID uuid.UUID  `json:"study_record_id"`
	DisciplineID  uuid.UUID  `json:"discipline_id"`
	Topic         string     `json:"topic"`
	DueDate       Day        `json:"due_date"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DaysOverdue   int        `json:"days_overdue,omitempty"`
}

// NewReview creates a pending Review for a study record with a fresh ID.
// Topic and discipline are copied from the parent record at creation time.
func NewReview(record *StudyRecord, dueDate Day) (*Review, error) {
	review := &Review{
		ID:            uuid.New(),
		StudyRecordID: record.ID,
		DisciplineID:  record.DisciplineID,
		Topic:         record.Topic,
		DueDate:       dueDate,
		Completed:     false,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.StudyRecordID == uuid.Nil {
		return ErrReviewStudyIDEmpty
	}

	if r.DisciplineID == uuid.Nil {
		return ErrReviewDisciplineIDEmpty
	}

	if err := r.DueDate.Validate(); err != nil {
		return err
	}

	if r.Completed != (r.CompletedAt != nil) {
		return ErrReviewCompletedAtMissing
	}

	return nil
}

// Complete marks the review as done at the given instant.
func (r *Review) Complete(now time.Time) {
	completedAt := now.UTC()
	r.Completed = true
	r.CompletedAt = &completedAt
}

// Reopen clears the completion state, returning the review to pending.
func (r *Review) Reopen() {
	r.Completed = false
	r.CompletedAt = nil
}
