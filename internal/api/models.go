package api

import (
	"time"

	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/service"
)

// Common request/response structures

// RegisterStudyRequest defines the payload for logging a study session.
type RegisterStudyRequest struct {
	DisciplineID string `json:"discipline_id" validate:"required,uuid"`
	Topic        string `json:"topic"         validate:"required,max=500"`
	TimeSpent    string `json:"time_spent"    validate:"max=20"`
	Date         string `json:"date"          validate:"required"`
	Notes        string `json:"notes"         validate:"max=10000"`
}

// UpdateStudyRequest defines the payload for a partial study update.
// Omitted fields keep their stored values.
type UpdateStudyRequest struct {
	DisciplineID *string `json:"discipline_id" validate:"omitempty,uuid"`
	Topic        *string `json:"topic"         validate:"omitempty,min=1,max=500"`
	TimeSpent    *string `json:"time_spent"    validate:"omitempty,max=20"`
	Date         *string `json:"date"`
	Notes        *string `json:"notes"         validate:"omitempty,max=10000"`
}

// UpdateSettingsRequest defines the payload for changing the review
// intervals.
type UpdateSettingsRequest struct {
	FirstInterval  int `json:"first_interval"  validate:"required,min=1,max=365"`
	SecondInterval int `json:"second_interval" validate:"required,min=1,max=365"`
	ThirdInterval  int `json:"third_interval"  validate:"required,min=1,max=365"`
}

// RevisionResponse is one entry of a study record's revision snapshot.
type RevisionResponse struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// StudyResponse represents the response data for a study record.
type StudyResponse struct {
	ID           string             `json:"id"`
	DisciplineID string             `json:"discipline_id"`
	Topic        string             `json:"topic"`
	TimeSpent    string             `json:"time_spent"`
	Date         string             `json:"date"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Revisions    []RevisionResponse `json:"revisions"`
}

// ReviewResponse represents the response data for a review.
type ReviewResponse struct {
	ID            string     `json:"id"`
	StudyRecordID string     `json:"study_record_id"`
	DisciplineID  string     `json:"discipline_id"`
	Topic         string     `json:"topic"`
	DueDate       string     `json:"due_date"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DaysOverdue   int        `json:"days_overdue,omitempty"`
}

// StudyRegistrationResponse is returned from study creation: the record plus
// the reviews scheduled for it.
type StudyRegistrationResponse struct {
	Study   StudyResponse    `json:"study"`
	Reviews []ReviewResponse `json:"reviews"`
}

// StudyUpdateResponse is returned from study updates. RemovedReviewIDs and
// Regenerated describe the review regeneration triggered by a date change.
type StudyUpdateResponse struct {
	Study            StudyResponse    `json:"study"`
	Regenerated      bool             `json:"regenerated"`
	RemovedReviewIDs []string         `json:"removed_review_ids,omitempty"`
	Reviews          []ReviewResponse `json:"reviews"`
}

// ReviewQueueResponse is the classified review queue.
type ReviewQueueResponse struct {
	Overdue      []ReviewResponse `json:"overdue"`
	Today        []ReviewResponse `json:"today"`
	Completed    []ReviewResponse `json:"completed"`
	PendingCount int              `json:"pending_count"`
}

// SettingsResponse represents the schedule interval settings.
type SettingsResponse struct {
	FirstInterval  int `json:"first_interval"`
	SecondInterval int `json:"second_interval"`
	ThirdInterval  int `json:"third_interval"`
}

// DisciplineResponse represents one discipline of the registry, including
// the display theme derived from its color.
type DisciplineResponse struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Theme domain.Theme `json:"theme"`
}

// studyToResponse converts a domain.StudyRecord to a StudyResponse.
func studyToResponse(record *domain.StudyRecord) StudyResponse {
	revisions := make([]RevisionResponse, 0, len(record.Revisions))
	for _, revision := range record.Revisions {
		revisions = append(revisions, RevisionResponse{
			Date:      revision.Date.String(),
			Completed: revision.Completed,
		})
	}

	return StudyResponse{
		ID:           record.ID.String(),
		DisciplineID: record.DisciplineID.String(),
		Topic:        record.Topic,
		TimeSpent:    record.TimeSpent,
		Date:         record.Date.String(),
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		Revisions:    revisions,
	}
}

// reviewToResponse converts a domain.Review to a ReviewResponse.
func reviewToResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:            review.ID.String(),
		StudyRecordID: review.StudyRecordID.String(),
		DisciplineID:  review.DisciplineID.String(),
		Topic:         review.Topic,
		DueDate:       review.DueDate.String(),
		Completed:     review.Completed,
		CompletedAt:   review.CompletedAt,
		DaysOverdue:   review.DaysOverdue,
	}
}

// reviewsToResponse converts a slice of reviews, returning an empty slice
// rather than null for JSON consumers.
func reviewsToResponse(reviews []*domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, reviewToResponse(review))
	}
	return out
}

// classificationToResponse converts a schedule.Classification.
func classificationToResponse(c schedule.Classification) ReviewQueueResponse {
	return ReviewQueueResponse{
		Overdue:      reviewsToResponse(c.Overdue),
		Today:        reviewsToResponse(c.Today),
		Completed:    reviewsToResponse(c.Completed),
		PendingCount: c.PendingCount,
	}
}

// updateToResponse converts a service.StudyUpdate.
func updateToResponse(update *service.StudyUpdate) StudyUpdateResponse {
	removed := make([]string, 0, len(update.RemovedReviewIDs))
	for _, id := range update.RemovedReviewIDs {
		removed = append(removed, id.String())
	}

	return StudyUpdateResponse{
		Study:            studyToResponse(update.Record),
		Regenerated:      update.Regenerated,
		RemovedReviewIDs: removed,
		Reviews:          reviewsToResponse(update.Reviews),
	}
}

// settingsToResponse converts schedule.Params.
func settingsToResponse(params schedule.Params) SettingsResponse {
	return SettingsResponse{
		FirstInterval:  params.FirstInterval,
		SecondInterval: params.SecondInterval,
		ThirdInterval:  params.ThirdInterval,
	}
}
