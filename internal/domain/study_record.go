package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudyRecord-specific validation errors
var (
	// ErrStudyIDEmpty is returned when a study record ID is empty or nil.
	ErrStudyIDEmpty = errors.New("study record ID cannot be empty")

	// ErrStudyDisciplineIDEmpty is returned when a study record's discipline ID is empty or nil.
	ErrStudyDisciplineIDEmpty = errors.New("study record discipline ID cannot be empty")

	// ErrStudyTopicEmpty is returned when a study record's topic is empty.
	ErrStudyTopicEmpty = errors.New("study record topic cannot be empty")
)

// RevisionSnapshot is a historical snapshot of one scheduled review kept on
// the StudyRecord for display. It is derived data; the Review entities are
// the authoritative review state.
type RevisionSnapshot struct {
	Date      Day  `json:"date"`
	Completed bool `json:"completed"`
}

// StudyRecord is one logged study session: a topic studied under a
// discipline on a calendar day, with the time spent. Date is the day the
// study happened and drives scheduling; CreatedAt is the true creation
// timestamp and never changes.
//
// A StudyRecord does not own its Review entities directly; reviews point
// back via StudyRecordID.
type StudyRecord struct {
	ID           uuid.UUID          `json:"id"`
	DisciplineID uuid.UUID          `json:"discipline_id"`
	Topic        string             `json:"topic"`
	TimeSpent    string             `json:"time_spent"` // HH:MM duration
	Date         Day                `json:"date"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Revisions    []RevisionSnapshot `json:"revisions"`
}

// NewStudyRecord creates a new StudyRecord with a fresh ID and creation
// timestamp. Returns an error if validation fails.
func NewStudyRecord(
	disciplineID uuid.UUID,
	topic, timeSpent string,
	date Day,
	notes string,
) (*StudyRecord, error) {
	record := &StudyRecord{
		ID:           uuid.New(),
		DisciplineID: disciplineID,
		Topic:        topic,
		TimeSpent:    timeSpent,
		Date:         date,
		Notes:        notes,
		CreatedAt:    time.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the StudyRecord has valid data.
// Returns an error if any field fails validation.
//
// TimeSpent is deliberately not validated here: the aggregation layer
// treats a malformed duration as zero, and rejecting it would make a
// display-only field fatal.
func (r *StudyRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrStudyIDEmpty
	}

	if r.DisciplineID == uuid.Nil {
		return ErrStudyDisciplineIDEmpty
	}

	if r.Topic == "" {
		return ErrStudyTopicEmpty
	}

	if err := r.Date.Validate(); err != nil {
		return err
	}

	return nil
}
