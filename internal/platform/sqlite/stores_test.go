package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/sqlite"
	"github.com/studyloop/studyloop-api/internal/store"
)

var seededDiscipline = uuid.MustParse("7b0ce4f1-5d44-4a70-9f2a-17a4a9b0b001")

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "store_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertStudyRecord(t *testing.T, studies store.StudyStore) *domain.StudyRecord {
	t.Helper()
	record, err := domain.NewStudyRecord(
		seededDiscipline, "Topic", "01:00", domain.Day("2024-03-01"), "")
	require.NoError(t, err)
	require.NoError(t, studies.Create(context.Background(), record))
	return record
}

func TestStudyStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	ctx := context.Background()

	record := insertStudyRecord(t, studies)

	got, err := studies.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Date, got.Date)
	assert.Equal(t, record.Topic, got.Topic)

	// Update survives.
	got.Topic = "Renamed"
	got.Revisions = []domain.RevisionSnapshot{{Date: domain.Day("2024-03-02"), Completed: false}}
	require.NoError(t, studies.Update(ctx, got))

	again, err := studies.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Topic)
	require.Len(t, again.Revisions, 1)
	assert.Equal(t, domain.Day("2024-03-02"), again.Revisions[0].Date)
}

func TestStudyStore_NotFound(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	ctx := context.Background()

	_, err := studies.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrStudyNotFound)
	assert.True(t, store.IsNotFoundError(err))

	assert.ErrorIs(t, studies.Delete(ctx, uuid.New()), store.ErrStudyNotFound)

	phantom, err := domain.NewStudyRecord(
		seededDiscipline, "Phantom", "", domain.Day("2024-03-01"), "")
	require.NoError(t, err)
	assert.ErrorIs(t, studies.Update(ctx, phantom), store.ErrStudyNotFound)
}

func TestStudyStore_MalformedRevisionsFallBackToEmpty(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	ctx := context.Background()

	record := insertStudyRecord(t, studies)

	// Corrupt the stored snapshot directly.
	_, err := db.ExecContext(ctx,
		`UPDATE study_records SET revisions = 'not-json' WHERE id = ?`, record.ID.String())
	require.NoError(t, err)

	got, err := studies.GetByID(ctx, record.ID)
	require.NoError(t, err, "a corrupt snapshot must not make the row unreadable")
	assert.Empty(t, got.Revisions)
}

func TestReviewStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	reviews := sqlite.NewSQLiteReviewStore(db)
	ctx := context.Background()

	record := insertStudyRecord(t, studies)
	set, err := schedule.BuildReviews(record, []domain.Day{
		"2024-03-02", "2024-03-08", "2024-03-15",
	})
	require.NoError(t, err)
	require.NoError(t, reviews.CreateMultiple(ctx, set))

	listed, err := reviews.ListByStudy(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, domain.Day("2024-03-02"), listed[0].DueDate, "listed due date ascending")

	// Completion timestamp round trip.
	completedAt := time.Date(2024, 3, 8, 9, 30, 0, 0, time.UTC)
	listed[1].Complete(completedAt)
	require.NoError(t, reviews.Update(ctx, listed[1]))

	got, err := reviews.GetByID(ctx, listed[1].ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))
}

func TestReviewStore_DeleteByStudy(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	reviews := sqlite.NewSQLiteReviewStore(db)
	ctx := context.Background()

	record := insertStudyRecord(t, studies)
	set, err := schedule.BuildReviews(record, []domain.Day{"2024-03-02", "2024-03-08"})
	require.NoError(t, err)
	require.NoError(t, reviews.CreateMultiple(ctx, set))

	require.NoError(t, reviews.DeleteByStudy(ctx, record.ID))

	listed, err := reviews.ListByStudy(ctx, record.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Removing zero rows is not an error.
	assert.NoError(t, reviews.DeleteByStudy(ctx, record.ID))
}

func TestSettingsStore(t *testing.T) {
	db := openTestDB(t)
	settings := sqlite.NewSQLiteSettingsStore(db)
	ctx := context.Background()

	_, err := settings.Get(ctx)
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)

	require.NoError(t, settings.Update(ctx, schedule.NewParams(2, 5, 9)))
	params, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, schedule.NewParams(2, 5, 9), params)

	// Upsert replaces the single row.
	require.NoError(t, settings.Update(ctx, schedule.NewParams(3, 6, 12)))
	params, err = settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, params.FirstInterval)
}

func TestDisciplineStore_Seeded(t *testing.T) {
	db := openTestDB(t)
	disciplines := sqlite.NewSQLiteDisciplineStore(db)
	ctx := context.Background()

	all, err := disciplines.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)

	got, err := disciplines.GetByID(ctx, seededDiscipline)
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", got.Name)
	assert.Equal(t, "purple", got.Color)

	_, err = disciplines.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrDisciplineNotFound)
}

func TestTransactionRollback(t *testing.T) {
	db := openTestDB(t)
	studies := sqlite.NewSQLiteStudyStore(db)
	ctx := context.Background()

	record, err := domain.NewStudyRecord(
		seededDiscipline, "Rollback", "", domain.Day("2024-03-01"), "")
	require.NoError(t, err)

	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := studies.WithTxStudyStore(tx).Create(ctx, record); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = studies.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, store.ErrStudyNotFound, "rolled-back writes must not be visible")
}
