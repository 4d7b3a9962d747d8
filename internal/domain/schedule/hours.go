package schedule

import (
	"strconv"
	"strings"

	"github.com/studyloop/studyloop-api/internal/domain"
)

// TimeSpentHours parses an HH:MM duration into decimal hours. Malformed or
// empty input contributes zero rather than an error: time spent is display
// data and a bad historical value must never break the statistics surface.
func TimeSpentHours(timeSpent string) float64 {
	parts := strings.Split(timeSpent, ":")
	if len(parts) != 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return 0
	}

	return float64(hours) + float64(minutes)/60
}

// TotalStudyHours sums the time spent across study records, in decimal
// hours.
func TotalStudyHours(records []*domain.StudyRecord) float64 {
	total := 0.0
	for _, record := range records {
		total += TimeSpentHours(record.TimeSpent)
	}
	return total
}

// HoursByDiscipline sums study hours per discipline ID, for the reports
// surface.
func HoursByDiscipline(records []*domain.StudyRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, record := range records {
		totals[record.DisciplineID.String()] += TimeSpentHours(record.TimeSpent)
	}
	return totals
}
