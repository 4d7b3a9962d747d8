package api

import (
	"log/slog"
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/store"
)

// DisciplineHandler serves the read-only discipline registry.
type DisciplineHandler struct {
	disciplines store.DisciplineStore
	logger      *slog.Logger
}

// NewDisciplineHandler creates a new DisciplineHandler
func NewDisciplineHandler(disciplines store.DisciplineStore, log *slog.Logger) *DisciplineHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DisciplineHandler")
	}

	return &DisciplineHandler{
		disciplines: disciplines,
		logger:      log.With(slog.String("component", "discipline_handler")),
	}
}

// ListDisciplines handles GET /disciplines requests
func (h *DisciplineHandler) ListDisciplines(w http.ResponseWriter, r *http.Request) {
	disciplines, err := h.disciplines.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list disciplines", err)
		return
	}

	response := make([]DisciplineResponse, 0, len(disciplines))
	for _, discipline := range disciplines {
		response = append(response, DisciplineResponse{
			ID:    discipline.ID.String(),
			Name:  discipline.Name,
			Color: discipline.Color,
			Theme: domain.ThemeForColor(discipline.Color),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
