package schedule

import (
	"sort"

	"github.com/studyloop/studyloop-api/internal/domain"
)

// Classification partitions a review collection for display: the overdue
// backlog, today's queue, the completed history, and the actionable pending
// count shown on the navigation badge.
type Classification struct {
	Overdue      []*domain.Review `json:"overdue"`
	Today        []*domain.Review `json:"today"`
	Completed    []*domain.Review `json:"completed"`
	PendingCount int              `json:"pending_count"`
}

// Overdue returns the pending reviews whose due date is strictly before
// today, oldest first, each annotated with DaysOverdue. The input reviews
// are not mutated; annotated copies are returned.
func Overdue(reviews []*domain.Review, today domain.Day) []*domain.Review {
	var overdue []*domain.Review
	for _, review := range reviews {
		if review.Completed || !review.DueDate.Before(today) {
			continue
		}
		annotated := *review
		annotated.DaysOverdue = domain.DaysBetween(review.DueDate, today)
		overdue = append(overdue, &annotated)
	}

	// Most-delinquent first: the longest-forgotten material is the
	// highest forgetting risk.
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DueDate.Before(overdue[j].DueDate)
	})

	return overdue
}

// DueToday returns the pending reviews due exactly today.
func DueToday(reviews []*domain.Review, today domain.Day) []*domain.Review {
	var due []*domain.Review
	for _, review := range reviews {
		if !review.Completed && review.DueDate == today {
			due = append(due, review)
		}
	}
	return due
}

// Completed returns the reviews that have been marked done.
func Completed(reviews []*domain.Review) []*domain.Review {
	var completed []*domain.Review
	for _, review := range reviews {
		if review.Completed {
			completed = append(completed, review)
		}
	}
	return completed
}

// PendingCount counts the actionable pending reviews: not completed and due
// today or earlier. Future-dated reviews are excluded; counting them would
// keep the badge perpetually non-zero and useless as a signal.
func PendingCount(reviews []*domain.Review, today domain.Day) int {
	count := 0
	for _, review := range reviews {
		if !review.Completed && !review.DueDate.After(today) {
			count++
		}
	}
	return count
}

// Classify partitions the reviews for the given day. Recomputed on every
// call; nothing is cached.
func Classify(reviews []*domain.Review, today domain.Day) Classification {
	return Classification{
		Overdue:      Overdue(reviews, today),
		Today:        DueToday(reviews, today),
		Completed:    Completed(reviews),
		PendingCount: PendingCount(reviews, today),
	}
}

// CompletedReviewCount returns the number of completed reviews.
func CompletedReviewCount(reviews []*domain.Review) int {
	return len(Completed(reviews))
}
