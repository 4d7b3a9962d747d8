package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/studyloop/studyloop-api/internal/api/middleware"
	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/service"
	"github.com/studyloop/studyloop-api/internal/store"
)

// RouterDeps bundles the dependencies the router needs to build handlers.
type RouterDeps struct {
	Studies     service.StudyService
	Reviews     service.ReviewService
	Settings    service.SettingsService
	Reports     service.ReportService
	Disciplines store.DisciplineStore
	DB          *sql.DB
	Logger      *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))

	studyHandler := NewStudyHandler(deps.Studies, deps.Logger)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Logger)
	settingsHandler := NewSettingsHandler(deps.Settings, deps.Logger)
	reportHandler := NewReportHandler(deps.Reports, deps.Logger)
	disciplineHandler := NewDisciplineHandler(deps.Disciplines, deps.Logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Study session endpoints
		r.Post("/studies", studyHandler.CreateStudy)
		r.Get("/studies", studyHandler.ListStudies)
		r.Get("/studies/{id}", studyHandler.GetStudy)
		r.Put("/studies/{id}", studyHandler.UpdateStudy)
		r.Delete("/studies/{id}", studyHandler.DeleteStudy)

		// Review queue endpoints
		r.Get("/reviews", reviewHandler.GetReviewQueue)
		r.Patch("/reviews/{id}/toggle", reviewHandler.ToggleReview)
		r.Delete("/reviews/{id}", reviewHandler.DeleteReview)

		// Schedule settings endpoints
		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)

		// Reporting endpoints
		r.Get("/reports", reportHandler.GetStatistics)
		r.Get("/disciplines", disciplineHandler.ListDisciplines)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(req.Context()); err != nil {
				shared.RespondWithErrorAndLog(w, req,
					http.StatusServiceUnavailable, "database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
