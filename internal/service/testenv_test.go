package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/platform/sqlite"
	"github.com/studyloop/studyloop-api/internal/store"
)

// Seeded discipline IDs from the embedded schema.
var (
	disciplineSoftwareEng = uuid.MustParse("7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b001")
	disciplineDatabases   = uuid.MustParse("7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b002")
)

// fixedNow is the pinned clock used across service tests. Classification
// and toggle semantics depend only on the calendar day, 2024-03-08.
var fixedNow = func() time.Time {
	return time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
}

// testEnv wires real SQLite-backed stores against a throwaway database so
// service tests exercise the actual transaction paths.
type testEnv struct {
	db          *sql.DB
	studies     store.StudyStore
	reviews     store.ReviewStore
	settings    store.SettingsStore
	disciplines store.DisciplineStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "studyloop_test.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		db:          db,
		studies:     sqlite.NewSQLiteStudyStore(db),
		reviews:     sqlite.NewSQLiteReviewStore(db),
		settings:    sqlite.NewSQLiteSettingsStore(db),
		disciplines: sqlite.NewSQLiteDisciplineStore(db),
	}
}
