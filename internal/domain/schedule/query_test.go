package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

func pendingReview(t *testing.T, dueDate domain.Day) *domain.Review {
	t.Helper()
	record := testRecord(t, "2024-03-01")
	review, err := domain.NewReview(record, dueDate)
	if err != nil {
		t.Fatalf("Expected no error creating review, got %v", err)
	}
	return review
}

func completedReview(t *testing.T, dueDate domain.Day) *domain.Review {
	t.Helper()
	review := pendingReview(t, dueDate)
	review.Complete(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))
	return review
}

func TestOverdue(t *testing.T) {
	t.Parallel() // Enable parallel execution

	today := domain.Day("2024-03-08")
	overdueOld := pendingReview(t, "2024-03-02")
	overdueRecent := pendingReview(t, "2024-03-05")
	dueToday := pendingReview(t, "2024-03-08")
	future := pendingReview(t, "2024-03-15")
	done := completedReview(t, "2024-03-02")

	// Deliberately unsorted input.
	reviews := []*domain.Review{overdueRecent, done, future, overdueOld, dueToday}

	overdue := Overdue(reviews, today)

	if len(overdue) != 2 {
		t.Fatalf("Expected 2 overdue reviews, got %d", len(overdue))
	}

	// Oldest overdue first.
	if overdue[0].ID != overdueOld.ID || overdue[1].ID != overdueRecent.ID {
		t.Error("Expected overdue reviews ordered by due date ascending")
	}
	if overdue[0].DaysOverdue != 6 {
		t.Errorf("Expected daysOverdue 6, got %d", overdue[0].DaysOverdue)
	}
	if overdue[1].DaysOverdue != 3 {
		t.Errorf("Expected daysOverdue 3, got %d", overdue[1].DaysOverdue)
	}

	// Input reviews must not be mutated.
	if overdueOld.DaysOverdue != 0 || overdueRecent.DaysOverdue != 0 {
		t.Error("Expected Overdue not to mutate its input")
	}
}

func TestDueToday(t *testing.T) {
	t.Parallel() // Enable parallel execution

	today := domain.Day("2024-03-08")
	dueToday := pendingReview(t, "2024-03-08")
	completedToday := completedReview(t, "2024-03-08")
	overdue := pendingReview(t, "2024-03-05")
	future := pendingReview(t, "2024-03-09")

	due := DueToday([]*domain.Review{dueToday, completedToday, overdue, future}, today)

	if len(due) != 1 {
		t.Fatalf("Expected 1 review due today, got %d", len(due))
	}
	if due[0].ID != dueToday.ID {
		t.Errorf("Expected review %s, got %s", dueToday.ID, due[0].ID)
	}
}

func TestPendingCount(t *testing.T) {
	t.Parallel() // Enable parallel execution

	today := domain.Day("2024-03-08")

	testCases := []struct {
		name     string
		reviews  []*domain.Review
		expected int
	}{
		{
			name:     "empty collection",
			reviews:  nil,
			expected: 0,
		},
		{
			name: "overdue plus today",
			reviews: []*domain.Review{
				pendingReview(t, "2024-03-05"),
				pendingReview(t, "2024-03-08"),
			},
			expected: 2,
		},
		{
			name: "future pending excluded",
			reviews: []*domain.Review{
				pendingReview(t, "2024-03-09"),
				pendingReview(t, "2024-04-01"),
			},
			expected: 0,
		},
		{
			name: "completed excluded",
			reviews: []*domain.Review{
				completedReview(t, "2024-03-05"),
				completedReview(t, "2024-03-08"),
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := PendingCount(tc.reviews, today)
			if got != tc.expected {
				t.Errorf("Expected pending count %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestClassifyPartitionsAreDisjoint(t *testing.T) {
	t.Parallel() // Enable parallel execution

	today := domain.Day("2024-03-08")
	reviews := []*domain.Review{
		pendingReview(t, "2024-03-02"),
		pendingReview(t, "2024-03-05"),
		pendingReview(t, "2024-03-08"),
		pendingReview(t, "2024-03-15"),
		completedReview(t, "2024-03-02"),
		completedReview(t, "2024-03-08"),
	}

	classification := Classify(reviews, today)

	seen := make(map[uuid.UUID]string)
	for _, review := range classification.Overdue {
		seen[review.ID] = "overdue"
	}
	for _, review := range classification.Today {
		if bucket, ok := seen[review.ID]; ok {
			t.Errorf("Review %s appears in both %s and today", review.ID, bucket)
		}
		seen[review.ID] = "today"
	}
	for _, review := range classification.Completed {
		if bucket, ok := seen[review.ID]; ok {
			t.Errorf("Review %s appears in both %s and completed", review.ID, bucket)
		}
		seen[review.ID] = "completed"
	}

	// Overdue + today + completed covers everything except future pending.
	if len(seen) != 5 {
		t.Errorf("Expected 5 classified reviews, got %d", len(seen))
	}

	// Pending badge counts overdue + today only.
	if classification.PendingCount != 3 {
		t.Errorf("Expected pending count 3, got %d", classification.PendingCount)
	}

	// The future pending review appears in no partition.
	if len(classification.Overdue) != 2 || len(classification.Today) != 1 || len(classification.Completed) != 2 {
		t.Errorf("Expected partitions 2/1/2, got %d/%d/%d",
			len(classification.Overdue), len(classification.Today), len(classification.Completed))
	}
}

func TestCompletedReviewCount(t *testing.T) {
	t.Parallel() // Enable parallel execution

	reviews := []*domain.Review{
		pendingReview(t, "2024-03-05"),
		completedReview(t, "2024-03-02"),
		completedReview(t, "2024-03-08"),
	}

	if got := CompletedReviewCount(reviews); got != 2 {
		t.Errorf("Expected 2 completed reviews, got %d", got)
	}
}
