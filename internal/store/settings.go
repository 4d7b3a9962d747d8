package store

import (
	"context"

	"github.com/studyloop/studyloop-api/internal/domain/schedule"
)

// SettingsStore defines the interface for schedule settings persistence.
// The application is single-user, so there is exactly one settings row.
type SettingsStore interface {
	// Get retrieves the stored schedule intervals.
	// Returns ErrSettingsNotFound if none have been saved yet; callers
	// fall back to schedule.DefaultParams.
	Get(ctx context.Context) (schedule.Params, error)

	// Update persists new schedule intervals, creating the row if needed.
	// Existing reviews keep their due dates; new settings affect only
	// future scheduling.
	Update(ctx context.Context, params schedule.Params) error
}
