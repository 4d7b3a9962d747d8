package schedule

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
)

func recordWithTime(t *testing.T, timeSpent string) *domain.StudyRecord {
	t.Helper()
	record, err := domain.NewStudyRecord(uuid.New(), "Topic", timeSpent, domain.Day("2024-03-01"), "")
	if err != nil {
		t.Fatalf("Expected no error creating study record, got %v", err)
	}
	return record
}

func TestTimeSpentHours(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "hour and a half", input: "01:30", expected: 1.5},
		{name: "two hours", input: "02:00", expected: 2.0},
		{name: "minutes only", input: "00:45", expected: 0.75},
		{name: "empty string", input: "", expected: 0},
		{name: "missing separator", input: "130", expected: 0},
		{name: "non-numeric", input: "ab:cd", expected: 0},
		{name: "too many fields", input: "01:30:00", expected: 0},
		{name: "negative hours", input: "-1:30", expected: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := TimeSpentHours(tc.input)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("TimeSpentHours(%q): expected %v, got %v", tc.input, tc.expected, got)
			}
		})
	}
}

func TestTotalStudyHours(t *testing.T) {
	t.Parallel() // Enable parallel execution

	records := []*domain.StudyRecord{
		recordWithTime(t, "01:30"),
		recordWithTime(t, "02:00"),
	}

	if got := TotalStudyHours(records); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("Expected 3.5 hours, got %v", got)
	}

	// Malformed entries contribute zero without failing the sum.
	records = append(records, recordWithTime(t, ""))
	records = append(records, recordWithTime(t, "garbage"))

	if got := TotalStudyHours(records); math.Abs(got-3.5) > 1e-9 {
		t.Errorf("Expected malformed entries to contribute 0, got total %v", got)
	}
}

func TestHoursByDiscipline(t *testing.T) {
	t.Parallel() // Enable parallel execution

	first := recordWithTime(t, "01:00")
	second := recordWithTime(t, "02:30")
	sameAsFirst := recordWithTime(t, "00:30")
	sameAsFirst.DisciplineID = first.DisciplineID

	totals := HoursByDiscipline([]*domain.StudyRecord{first, second, sameAsFirst})

	if got := totals[first.DisciplineID.String()]; math.Abs(got-1.5) > 1e-9 {
		t.Errorf("Expected 1.5 hours for first discipline, got %v", got)
	}
	if got := totals[second.DisciplineID.String()]; math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Expected 2.5 hours for second discipline, got %v", got)
	}
}
