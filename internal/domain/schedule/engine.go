package schedule

import (
	"github.com/studyloop/studyloop-api/internal/domain"
)

// ReviewSlots is the fixed number of reviews scheduled per study record.
const ReviewSlots = 3

// ComputeReviewDates derives the three review due dates for a study done on
// studyDate: studyDate + first/second/third interval, in slot order, using
// calendar-day arithmetic. Deterministic and side-effect free; calling it
// twice with the same inputs yields the same dates.
func ComputeReviewDates(studyDate domain.Day, params Params) [ReviewSlots]domain.Day {
	params = params.Normalize()
	return [ReviewSlots]domain.Day{
		studyDate.AddDays(params.FirstInterval),
		studyDate.AddDays(params.SecondInterval),
		studyDate.AddDays(params.ThirdInterval),
	}
}

// BuildReviews materializes pending Review entities for a study record, one
// per due date, with fresh IDs and the record's topic/discipline snapshot.
func BuildReviews(record *domain.StudyRecord, dates []domain.Day) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0, len(dates))
	for _, date := range dates {
		review, err := domain.NewReview(record, date)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// RevisionSnapshots builds the derived revisions[] snapshot kept on the
// study record for historical display.
func RevisionSnapshots(dates []domain.Day) []domain.RevisionSnapshot {
	snapshots := make([]domain.RevisionSnapshot, 0, len(dates))
	for _, date := range dates {
		snapshots = append(snapshots, domain.RevisionSnapshot{Date: date, Completed: false})
	}
	return snapshots
}

// ScheduleReviews is the full scheduling step for one study record: compute
// the due dates and build the review set. Returns the reviews and the
// matching revision snapshots.
func ScheduleReviews(
	record *domain.StudyRecord,
	params Params,
) ([]*domain.Review, []domain.RevisionSnapshot, error) {
	dates := ComputeReviewDates(record.Date, params)
	reviews, err := BuildReviews(record, dates[:])
	if err != nil {
		return nil, nil, err
	}
	return reviews, RevisionSnapshots(dates[:]), nil
}
