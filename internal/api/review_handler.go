package api

import (
	"log/slog"
	"net/http"

	"github.com/studyloop/studyloop-api/internal/api/shared"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/service"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService, log *slog.Logger) *ReviewHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// GetReviewQueue handles GET /reviews requests
// It returns the reviews classified relative to today: overdue backlog,
// today's queue, completed history and the pending badge count.
func (h *ReviewHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	classification, err := h.reviewService.ClassifyReviews(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to load review queue", err)
		return
	}

	log.Debug("serving review queue",
		slog.Int("overdue", len(classification.Overdue)),
		slog.Int("due_today", len(classification.Today)),
		slog.Int("pending", classification.PendingCount))

	shared.RespondWithJSON(w, r, http.StatusOK, classificationToResponse(classification))
}

// ToggleReview handles PATCH /reviews/{id}/toggle requests
// It completes a pending review or reopens a completed one. Completing a
// future-dated review is rejected with 409.
func (h *ReviewHandler) ToggleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := parseIDParam(w, r, h.logger)
	if !ok {
		return
	}

	review, err := h.reviewService.ToggleReview(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("toggled review",
		slog.String("review_id", id.String()),
		slog.Bool("completed", review.Completed))

	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(review))
}

// DeleteReview handles DELETE /reviews/{id} requests
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
