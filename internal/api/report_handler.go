package api

import (
	"log/slog"
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/service"
)

// ReportHandler handles statistics HTTP requests
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, log *slog.Logger) *ReportHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReportHandler")
	}

	return &ReportHandler{
		reportService: reportService,
		logger:        log.With(slog.String("component", "report_handler")),
	}
}

// GetStatistics handles GET /reports requests
// It returns the aggregate study and review statistics.
func (h *ReportHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.Statistics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute statistics", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
