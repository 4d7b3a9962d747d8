package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

// DisciplineStore defines the read interface for the discipline registry.
// Discipline CRUD is owned elsewhere; the core only resolves references for
// display and falls back to domain.UnknownDiscipline when one is missing.
type DisciplineStore interface {
	// GetByID retrieves a discipline by its unique ID.
	// Returns ErrDisciplineNotFound if the discipline does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Discipline, error)

	// List retrieves all disciplines, by name.
	List(ctx context.Context) ([]*domain.Discipline, error)
}
