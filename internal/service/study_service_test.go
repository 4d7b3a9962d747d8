package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/service"
	"github.com/studyloop/studyloop-api/internal/store"
)

func newStudyService(t *testing.T, env *testEnv) service.StudyService {
	t.Helper()
	svc, err := service.NewStudyService(
		env.db, env.studies, env.reviews, env.settings, schedule.DefaultParams(), true, nil)
	require.NoError(t, err, "failed to create study service")
	return svc
}

func registerStudy(
	t *testing.T,
	svc service.StudyService,
	date domain.Day,
) *service.StudyRegistration {
	t.Helper()
	reg, err := svc.RegisterStudy(context.Background(), service.RegisterStudyInput{
		DisciplineID: disciplineSoftwareEng,
		Topic:        "Goroutine scheduling",
		TimeSpent:    "01:30",
		Date:         date,
	})
	require.NoError(t, err, "failed to register study")
	return reg
}

func TestStudyService_RegisterStudy(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	// Default intervals are 1/7/14 days from the study date.
	require.Len(t, reg.Reviews, 3)
	assert.Equal(t, domain.Day("2024-03-02"), reg.Reviews[0].DueDate)
	assert.Equal(t, domain.Day("2024-03-08"), reg.Reviews[1].DueDate)
	assert.Equal(t, domain.Day("2024-03-15"), reg.Reviews[2].DueDate)

	for _, review := range reg.Reviews {
		assert.Equal(t, reg.Record.ID, review.StudyRecordID)
		assert.Equal(t, reg.Record.Topic, review.Topic)
		assert.Equal(t, reg.Record.DisciplineID, review.DisciplineID)
		assert.False(t, review.Completed)
		assert.Nil(t, review.CompletedAt)
	}

	// The record carries the matching revision snapshots.
	require.Len(t, reg.Record.Revisions, 3)
	assert.Equal(t, domain.Day("2024-03-02"), reg.Record.Revisions[0].Date)

	// Everything was persisted.
	stored, err := env.studies.GetByID(ctx, reg.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.Record.Topic, stored.Topic)
	require.Len(t, stored.Revisions, 3)

	persisted, err := env.reviews.ListByStudy(ctx, reg.Record.ID)
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
}

func TestStudyService_RegisterStudy_UsesStoredSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.settings.Update(ctx, schedule.NewParams(2, 5, 9))
	require.NoError(t, err)

	svc := newStudyService(t, env)
	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	require.Len(t, reg.Reviews, 3)
	assert.Equal(t, domain.Day("2024-03-03"), reg.Reviews[0].DueDate)
	assert.Equal(t, domain.Day("2024-03-06"), reg.Reviews[1].DueDate)
	assert.Equal(t, domain.Day("2024-03-10"), reg.Reviews[2].DueDate)
}

func TestStudyService_RegisterStudy_UsesConfiguredFallback(t *testing.T) {
	env := newTestEnv(t)
	svc, err := service.NewStudyService(
		env.db, env.studies, env.reviews, env.settings, schedule.NewParams(3, 6, 12), true, nil)
	require.NoError(t, err)

	// No settings row is stored, so the intervals from configuration apply.
	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	require.Len(t, reg.Reviews, 3)
	assert.Equal(t, domain.Day("2024-03-04"), reg.Reviews[0].DueDate)
	assert.Equal(t, domain.Day("2024-03-07"), reg.Reviews[1].DueDate)
	assert.Equal(t, domain.Day("2024-03-13"), reg.Reviews[2].DueDate)
}

func TestStudyService_RegisterStudy_SchedulingDisabled(t *testing.T) {
	env := newTestEnv(t)
	svc, err := service.NewStudyService(
		env.db, env.studies, env.reviews, env.settings, schedule.DefaultParams(), false, nil)
	require.NoError(t, err)
	ctx := context.Background()

	reg, err := svc.RegisterStudy(ctx, service.RegisterStudyInput{
		DisciplineID: disciplineSoftwareEng,
		Topic:        "Index structures",
		TimeSpent:    "00:45",
		Date:         domain.Day("2024-03-01"),
	})
	require.NoError(t, err)
	assert.Empty(t, reg.Reviews)
	assert.Empty(t, reg.Record.Revisions)

	persisted, err := env.reviews.ListByStudy(ctx, reg.Record.ID)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStudyService_RegisterStudy_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	_, err := svc.RegisterStudy(ctx, service.RegisterStudyInput{
		DisciplineID: disciplineSoftwareEng,
		Topic:        "", // missing topic
		Date:         domain.Day("2024-03-01"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStudyTopicEmpty)

	records, err := svc.ListStudies(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "nothing should be persisted for invalid input")
}

func TestStudyService_UpdateStudy_DateChangeRegeneratesReviews(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	// Complete the first review so regeneration provably discards it.
	first := reg.Reviews[0]
	first.Complete(fixedNow())
	require.NoError(t, env.reviews.Update(ctx, first))

	oldIDs := make(map[uuid.UUID]bool, len(reg.Reviews))
	for _, review := range reg.Reviews {
		oldIDs[review.ID] = true
	}

	newDate := domain.Day("2024-04-10")
	update, err := svc.UpdateStudy(ctx, reg.Record.ID, service.UpdateStudyInput{
		Date: &newDate,
	})
	require.NoError(t, err)

	assert.True(t, update.Regenerated)
	assert.Len(t, update.RemovedReviewIDs, 3)
	require.Len(t, update.Reviews, 3)
	assert.Equal(t, domain.Day("2024-04-11"), update.Reviews[0].DueDate)
	assert.Equal(t, domain.Day("2024-04-17"), update.Reviews[1].DueDate)
	assert.Equal(t, domain.Day("2024-04-24"), update.Reviews[2].DueDate)

	for _, review := range update.Reviews {
		assert.False(t, oldIDs[review.ID], "regenerated reviews must have fresh IDs")
		assert.False(t, review.Completed, "regenerated reviews start pending")
	}

	persisted, err := env.reviews.ListByStudy(ctx, reg.Record.ID)
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
	for _, review := range persisted {
		assert.False(t, oldIDs[review.ID], "old reviews must be gone from the store")
	}
}

func TestStudyService_UpdateStudy_NonDateEditPreservesReviews(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	// Complete one review; the edit must not disturb it.
	done := reg.Reviews[1]
	done.Complete(fixedNow())
	require.NoError(t, env.reviews.Update(ctx, done))

	newTopic := "Channel select semantics"
	update, err := svc.UpdateStudy(ctx, reg.Record.ID, service.UpdateStudyInput{
		Topic:        &newTopic,
		DisciplineID: &disciplineDatabases,
	})
	require.NoError(t, err)

	assert.False(t, update.Regenerated)
	assert.Empty(t, update.RemovedReviewIDs)
	require.Len(t, update.Reviews, 3)

	oldByID := map[uuid.UUID]domain.Day{}
	for _, review := range reg.Reviews {
		oldByID[review.ID] = review.DueDate
	}
	completedSeen := false
	for _, review := range update.Reviews {
		dueDate, ok := oldByID[review.ID]
		require.True(t, ok, "review IDs must be preserved on non-date edits")
		assert.Equal(t, dueDate, review.DueDate, "due dates must not move")
		assert.Equal(t, newTopic, review.Topic)
		assert.Equal(t, disciplineDatabases, review.DisciplineID)
		if review.ID == done.ID {
			completedSeen = true
			assert.True(t, review.Completed, "completion state must survive the edit")
		}
	}
	assert.True(t, completedSeen)
}

func TestStudyService_UpdateStudy_SameDateIsNotARegeneration(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	reg := registerStudy(t, svc, domain.Day("2024-03-01"))

	sameDate := domain.Day("2024-03-01")
	update, err := svc.UpdateStudy(ctx, reg.Record.ID, service.UpdateStudyInput{
		Date: &sameDate,
	})
	require.NoError(t, err)
	assert.False(t, update.Regenerated)

	persisted, err := env.reviews.ListByStudy(ctx, reg.Record.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 3)
	assert.Equal(t, reg.Reviews[0].ID, persisted[0].ID)
}

func TestStudyService_UpdateStudy_NotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)

	topic := "anything"
	_, err := svc.UpdateStudy(context.Background(), uuid.New(), service.UpdateStudyInput{
		Topic: &topic,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStudyNotFound)
}

func TestStudyService_DeleteStudy_CascadesToReviews(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)
	ctx := context.Background()

	reg := registerStudy(t, svc, domain.Day("2024-03-01"))
	other := registerStudy(t, svc, domain.Day("2024-03-05"))

	require.NoError(t, svc.DeleteStudy(ctx, reg.Record.ID))

	_, err := svc.GetStudy(ctx, reg.Record.ID)
	assert.ErrorIs(t, err, store.ErrStudyNotFound)

	remaining, err := env.reviews.List(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 3, "only the other study's reviews should remain")
	for _, review := range remaining {
		assert.Equal(t, other.Record.ID, review.StudyRecordID)
	}
}

func TestStudyService_DeleteStudy_NotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudyService(t, env)

	err := svc.DeleteStudy(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStudyNotFound)
}
