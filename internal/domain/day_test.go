package domain

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	t.Parallel() // Enable parallel execution

	day, err := ParseDay("2024-03-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if day != Day("2024-03-01") {
		t.Errorf("Expected 2024-03-01, got %s", day)
	}

	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "time-of-day included", input: "2024-03-01T10:00:00Z"},
		{name: "wrong separator", input: "2024/03/01"},
		{name: "not a date", input: "yesterday"},
		{name: "impossible day", input: "2024-02-30"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseDay(tc.input); err == nil {
				t.Errorf("Expected error for %q, got nil", tc.input)
			}
		})
	}
}

func TestDayAddDays(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		start    Day
		days     int
		expected Day
	}{
		{name: "same month", start: "2024-03-01", days: 7, expected: "2024-03-08"},
		{name: "month boundary", start: "2024-01-30", days: 5, expected: "2024-02-04"},
		{name: "leap day", start: "2024-02-28", days: 1, expected: "2024-02-29"},
		{name: "non-leap year", start: "2023-02-28", days: 1, expected: "2023-03-01"},
		{name: "year boundary", start: "2024-12-25", days: 14, expected: "2025-01-08"},
		{name: "negative offset", start: "2024-03-01", days: -1, expected: "2024-02-29"},
		{name: "zero offset", start: "2024-03-01", days: 0, expected: "2024-03-01"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.start.AddDays(tc.days)
			if got != tc.expected {
				t.Errorf("%s + %d days: expected %s, got %s", tc.start, tc.days, tc.expected, got)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		from     Day
		to       Day
		expected int
	}{
		{name: "three days", from: "2024-03-05", to: "2024-03-08", expected: 3},
		{name: "same day", from: "2024-03-08", to: "2024-03-08", expected: 0},
		{name: "reversed", from: "2024-03-08", to: "2024-03-05", expected: -3},
		{name: "across month", from: "2024-01-30", to: "2024-02-04", expected: 5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DaysBetween(tc.from, tc.to)
			if got != tc.expected {
				t.Errorf("DaysBetween(%s, %s): expected %d, got %d", tc.from, tc.to, tc.expected, got)
			}
		})
	}
}

func TestDayOrdering(t *testing.T) {
	t.Parallel() // Enable parallel execution

	earlier := Day("2024-03-05")
	later := Day("2024-03-08")

	if !earlier.Before(later) {
		t.Error("Expected 2024-03-05 to be before 2024-03-08")
	}
	if later.Before(earlier) {
		t.Error("Expected 2024-03-08 not to be before 2024-03-05")
	}
	if !later.After(earlier) {
		t.Error("Expected 2024-03-08 to be after 2024-03-05")
	}
	if earlier.Before(earlier) || earlier.After(earlier) {
		t.Error("Expected a day to be neither before nor after itself")
	}
}

func TestTodayUsesCalendarDay(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// 23:59 local still belongs to the same calendar day.
	late := time.Date(2024, 3, 8, 23, 59, 0, 0, time.UTC)
	if got := Today(late); got != Day("2024-03-08") {
		t.Errorf("Expected 2024-03-08, got %s", got)
	}

	early := time.Date(2024, 3, 8, 0, 0, 1, 0, time.UTC)
	if Today(late) != Today(early) {
		t.Error("Expected both instants to normalize to the same day")
	}
}
