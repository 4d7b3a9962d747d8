package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// SettingsService manages the schedule interval settings.
type SettingsService interface {
	// GetSettings returns the stored intervals, or the defaults when none
	// have been saved yet.
	GetSettings(ctx context.Context) (schedule.Params, error)

	// UpdateSettings persists new intervals and returns the normalized
	// values actually stored. Existing reviews are not rescheduled.
	UpdateSettings(ctx context.Context, params schedule.Params) (schedule.Params, error)
}

// settingsServiceImpl implements the SettingsService interface.
type settingsServiceImpl struct {
	settings store.SettingsStore
	defaults schedule.Params
	logger   *slog.Logger
}

// NewSettingsService creates a new SettingsService. defaults holds the
// configured intervals reported until settings are saved through the API.
// It returns an error if the settings store is nil.
func NewSettingsService(
	settings store.SettingsStore,
	defaults schedule.Params,
	log *slog.Logger,
) (SettingsService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: settings store cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &settingsServiceImpl{
		settings: settings,
		defaults: defaults.Normalize(),
		logger:   log.With(slog.String("component", "settings_service")),
	}, nil
}

// GetSettings implements SettingsService.GetSettings
func (s *settingsServiceImpl) GetSettings(ctx context.Context) (schedule.Params, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params, err := s.settings.Get(ctx)
	if errors.Is(err, store.ErrSettingsNotFound) {
		log.Debug("no stored schedule settings, using configured defaults")
		return s.defaults, nil
	}
	if err != nil {
		log.Error("failed to load schedule settings", slog.String("error", err.Error()))
		return schedule.Params{}, fmt.Errorf("failed to load schedule settings: %w", err)
	}
	return params, nil
}

// UpdateSettings implements SettingsService.UpdateSettings
func (s *settingsServiceImpl) UpdateSettings(
	ctx context.Context,
	params schedule.Params,
) (schedule.Params, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	params = params.Normalize()
	if err := s.settings.Update(ctx, params); err != nil {
		log.Error("failed to update schedule settings", slog.String("error", err.Error()))
		return schedule.Params{}, fmt.Errorf("failed to update schedule settings: %w", err)
	}

	log.Info("updated schedule settings",
		slog.Int("first_interval", params.FirstInterval),
		slog.Int("second_interval", params.SecondInterval),
		slog.Int("third_interval", params.ThirdInterval))

	return params, nil
}
