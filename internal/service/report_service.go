package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/logger"
	"github.com/studyloop/studyloop-api/internal/store"
)

// DisciplineHours is the per-discipline slice of the study-hours report.
type DisciplineHours struct {
	DisciplineID uuid.UUID    `json:"discipline_id"`
	Name         string       `json:"name"`
	Color        string       `json:"color"`
	Theme        domain.Theme `json:"theme"`
	Hours        float64      `json:"hours"`
}

// Statistics is the aggregate report over all study records and reviews.
type Statistics struct {
	TotalStudyHours      float64           `json:"total_study_hours"`
	CompletedReviewCount int               `json:"completed_review_count"`
	PendingReviewCount   int               `json:"pending_review_count"`
	HoursByDiscipline    []DisciplineHours `json:"hours_by_discipline"`
}

// ReportService derives the statistics surface. Everything is recomputed
// from the stores on each call; nothing is cached or persisted.
type ReportService interface {
	Statistics(ctx context.Context) (*Statistics, error)
}

// reportServiceImpl implements the ReportService interface.
type reportServiceImpl struct {
	studies     store.StudyStore
	reviews     store.ReviewStore
	disciplines store.DisciplineStore
	now         func() time.Time
	logger      *slog.Logger
}

// NewReportService creates a new ReportService. now may be nil, in which
// case time.Now is used.
// It returns an error if any of the required dependencies are nil.
func NewReportService(
	studies store.StudyStore,
	reviews store.ReviewStore,
	disciplines store.DisciplineStore,
	now func() time.Time,
	log *slog.Logger,
) (ReportService, error) {
	if studies == nil {
		return nil, fmt.Errorf("%w: studies store cannot be nil", domain.ErrValidation)
	}
	if reviews == nil {
		return nil, fmt.Errorf("%w: reviews store cannot be nil", domain.ErrValidation)
	}
	if disciplines == nil {
		return nil, fmt.Errorf("%w: disciplines store cannot be nil", domain.ErrValidation)
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	return &reportServiceImpl{
		studies:     studies,
		reviews:     reviews,
		disciplines: disciplines,
		now:         now,
		logger:      log.With(slog.String("component", "report_service")),
	}, nil
}

// Statistics implements ReportService.Statistics
func (s *reportServiceImpl) Statistics(ctx context.Context) (*Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.studies.List(ctx)
	if err != nil {
		log.Error("failed to list study records for report",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list study records: %w", err)
	}

	reviews, err := s.reviews.List(ctx)
	if err != nil {
		log.Error("failed to list reviews for report",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	today := domain.Today(s.now())
	stats := &Statistics{
		TotalStudyHours:      schedule.TotalStudyHours(records),
		CompletedReviewCount: schedule.CompletedReviewCount(reviews),
		PendingReviewCount:   schedule.PendingCount(reviews, today),
		HoursByDiscipline:    s.resolveDisciplineHours(ctx, log, schedule.HoursByDiscipline(records)),
	}

	log.Debug("computed statistics",
		slog.Float64("total_hours", stats.TotalStudyHours),
		slog.Int("completed_reviews", stats.CompletedReviewCount),
		slog.Int("pending_reviews", stats.PendingReviewCount))

	return stats, nil
}

// resolveDisciplineHours attaches discipline names and colors to the raw
// per-ID totals. A discipline missing from the registry gets the Unknown
// placeholder rather than failing the whole report.
func (s *reportServiceImpl) resolveDisciplineHours(
	ctx context.Context,
	log *slog.Logger,
	totals map[string]float64,
) []DisciplineHours {
	result := make([]DisciplineHours, 0, len(totals))
	for rawID, hours := range totals {
		id, err := uuid.Parse(rawID)
		if err != nil {
			log.Warn("skipping malformed discipline id in report",
				slog.String("discipline_id", rawID))
			continue
		}

		discipline, err := s.disciplines.GetByID(ctx, id)
		if err != nil {
			discipline = domain.UnknownDiscipline(id)
		}

		result = append(result, DisciplineHours{
			DisciplineID: id,
			Name:         discipline.Name,
			Color:        discipline.Color,
			Theme:        domain.ThemeForColor(discipline.Color),
			Hours:        hours,
		})
	}

	// Largest slice first; ties broken by name for a stable report.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Hours != result[j].Hours {
			return result[i].Hours > result[j].Hours
		}
		return result[i].Name < result[j].Name
	})

	return result
}
