package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// StudyStore defines the interface for study record persistence.
type StudyStore interface {
	// Create saves a new study record to the store.
	// Returns validation errors if the record data is invalid.
	//
	// Registration creates the study record and its generated reviews
	// atomically. Use WithTxStudyStore together with store.RunInTransaction
	// so both land in the same transaction; a study record without its
	// reviews (or orphaned reviews) must never become visible.
	Create(ctx context.Context, record *domain.StudyRecord) error

	// GetByID retrieves a study record by its unique ID.
	// Returns ErrStudyNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyRecord, error)

	// List retrieves all study records, most recent study date first.
	List(ctx context.Context) ([]*domain.StudyRecord, error)

	// Update replaces the stored record with the given one.
	// Returns ErrStudyNotFound if the record does not exist.
	//
	// The caller decides what changed: a date change must go through the
	// service-level regeneration path, never a bare Update.
	Update(ctx context.Context, record *domain.StudyRecord) error

	// Delete removes a study record by its ID.
	// Returns ErrStudyNotFound if the record does not exist.
	// Does not touch the record's reviews; deletion cascades are a
	// service-level transaction over this store and the ReviewStore.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTxStudyStore returns a new StudyStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller, typically via store.RunInTransaction.
	WithTxStudyStore(tx *sql.Tx) StudyStore
}
