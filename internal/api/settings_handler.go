package api

import (
	"log/slog"
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/redact"
	"github.com/studyloop/studyloop-api/internal/service"
)

// SettingsHandler handles schedule-settings HTTP requests
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, log *slog.Logger) *SettingsHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		settingsService: settingsService,
		logger:          log.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings requests
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	params, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to load schedule settings", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(params))
}

// UpdateSettings handles PUT /settings requests
// New intervals affect only future scheduling; existing reviews keep their
// due dates.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	saved, err := h.settingsService.UpdateSettings(r.Context(),
		schedule.NewParams(req.FirstInterval, req.SecondInterval, req.ThirdInterval))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to update schedule settings", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(saved))
}
