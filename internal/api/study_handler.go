package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/redact"
	"github.com/studyloop/studyloop-api/internal/service"
)

// StudyHandler handles study-session HTTP requests
type StudyHandler struct {
	studyService service.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(studyService service.StudyService, log *slog.Logger) *StudyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       log.With(slog.String("component", "study_handler")),
	}
}

// CreateStudy handles POST /studies requests
// It logs a new study session and returns it with its scheduled reviews.
func (h *StudyHandler) CreateStudy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterStudyRequest
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

	date, err := domain.ParseDay(req.Date)
	if err != nil {
		log.Warn("invalid study date", slog.String("date", req.Date))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// UUID format is covered by the validate tag.
	disciplineID := uuid.MustParse(req.DisciplineID)

	registration, err := h.studyService.RegisterStudy(r.Context(), service.RegisterStudyInput{
		DisciplineID: disciplineID,
		Topic:        req.Topic,
		TimeSpent:    req.TimeSpent,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("created study session",
		slog.String("study_id", registration.Record.ID.String()),
		slog.Int("review_count", len(registration.Reviews)))

	shared.RespondWithJSON(w, r, http.StatusCreated, StudyRegistrationResponse{
		Study:   studyToResponse(registration.Record),
		Reviews: reviewsToResponse(registration.Reviews),
	})
}

// ListStudies handles GET /studies requests
func (h *StudyHandler) ListStudies(w http.ResponseWriter, r *http.Request) {
	records, err := h.studyService.ListStudies(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list study records", err)
		return
	}

	response := make([]StudyResponse, 0, len(records))
	for _, record := range records {
		response = append(response, studyToResponse(record))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetStudy handles GET /studies/{id} requests
func (h *StudyHandler) GetStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.studyService.GetStudy(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, studyToResponse(record))
}

// UpdateStudy handles PUT /studies/{id} requests
// A date change regenerates the review set; other edits propagate topic and
// discipline to the existing reviews.
func (h *StudyHandler) UpdateStudy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateStudyRequest
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

	input := service.UpdateStudyInput{
		Topic:     req.Topic,
		TimeSpent: req.TimeSpent,
		Notes:     req.Notes,
	}
	if req.DisciplineID != nil {
		disciplineID := uuid.MustParse(*req.DisciplineID)
		input.DisciplineID = &disciplineID
	}
	if req.Date != nil {
		date, err := domain.ParseDay(*req.Date)
		if err != nil {
			log.Warn("invalid study date", slog.String("date", *req.Date))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	update, err := h.studyService.UpdateStudy(r.Context(), id, input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("updated study session",
		slog.String("study_id", id.String()),
		slog.Bool("regenerated", update.Regenerated))

	shared.RespondWithJSON(w, r, http.StatusOK, updateToResponse(update))
}

// DeleteStudy handles DELETE /studies/{id} requests
// It removes the study record and all of its reviews.
func (h *StudyHandler) DeleteStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.studyService.DeleteStudy(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseIDParam extracts and parses the {id} URL parameter, writing the error
// response itself when the parameter is missing or malformed.
func parseIDParam(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		logger.FromContextOrDefault(r.Context(), log).Warn("ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), log).
			Warn("invalid ID format", slog.String("id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
