package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/service"
)

func newSettingsService(t *testing.T, env *testEnv) service.SettingsService {
	t.Helper()
	svc, err := service.NewSettingsService(env.settings, schedule.DefaultParams(), nil)
	require.NoError(t, err, "failed to create settings service")
	return svc
}

func TestSettingsService_GetSettings_DefaultsWhenUnset(t *testing.T) {
	env := newTestEnv(t)
	svc := newSettingsService(t, env)

	params, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultParams(), params)
}

func TestSettingsService_GetSettings_ConfiguredFallback(t *testing.T) {
	env := newTestEnv(t)
	svc, err := service.NewSettingsService(env.settings, schedule.NewParams(2, 6, 10), nil)
	require.NoError(t, err)

	// No settings row exists yet, so the configured intervals win.
	params, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.NewParams(2, 6, 10), params)

	// A saved row takes over from the configured fallback.
	_, err = svc.UpdateSettings(context.Background(), schedule.NewParams(4, 8, 16))
	require.NoError(t, err)
	params, err = svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.NewParams(4, 8, 16), params)
}

func TestSettingsService_UpdateSettings_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := newSettingsService(t, env)
	ctx := context.Background()

	saved, err := svc.UpdateSettings(ctx, schedule.NewParams(3, 10, 21))
	require.NoError(t, err)
	assert.Equal(t, 3, saved.FirstInterval)
	assert.Equal(t, 10, saved.SecondInterval)
	assert.Equal(t, 21, saved.ThirdInterval)

	loaded, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSettingsService_UpdateSettings_ClampsInvalidIntervals(t *testing.T) {
	env := newTestEnv(t)
	svc := newSettingsService(t, env)

	saved, err := svc.UpdateSettings(context.Background(), schedule.Params{
		FirstInterval:  0,
		SecondInterval: -3,
		ThirdInterval:  14,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved.FirstInterval, "non-positive intervals clamp to one day")
	assert.Equal(t, 1, saved.SecondInterval)
	assert.Equal(t, 14, saved.ThirdInterval)
}
