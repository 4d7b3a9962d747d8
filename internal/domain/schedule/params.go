package schedule

// Default review intervals, in days after the study date.
const (
	DefaultFirstInterval  = 1
	DefaultSecondInterval = 7
	DefaultThirdInterval  = 14

	// minInterval is the floor every interval is clamped to. Scheduling
	// must stay total, so a non-positive interval degrades to next-day
	// review instead of failing the whole operation.
	minInterval = 1
)

// Params holds the user-configurable scheduling intervals: how many days
// after a study date each of the three reviews falls due. Changing params
// affects only future scheduling; existing reviews keep their due dates.
//
// No ordering is enforced between the intervals. Out-of-order or equal
// intervals still produce three distinct reviews; collapsing or reordering
// them is a display decision, not a scheduling one.
type Params struct {
	FirstInterval  int `json:"first_interval"`
	SecondInterval int `json:"second_interval"`
	ThirdInterval  int `json:"third_interval"`
}

// NewParams builds Params from the given intervals, clamping each to a
// minimum of one day.
func NewParams(first, second, third int) Params {
	return Params{
		FirstInterval:  clampInterval(first),
		SecondInterval: clampInterval(second),
		ThirdInterval:  clampInterval(third),
	}
}

// DefaultParams returns the standard 1/7/14 day intervals.
func DefaultParams() Params {
	return Params{
		FirstInterval:  DefaultFirstInterval,
		SecondInterval: DefaultSecondInterval,
		ThirdInterval:  DefaultThirdInterval,
	}
}

// Normalize returns a copy of the params with every interval clamped to the
// minimum. Use on params loaded from storage or user input.
func (p Params) Normalize() Params {
	return NewParams(p.FirstInterval, p.SecondInterval, p.ThirdInterval)
}

// Intervals returns the three intervals in slot order.
func (p Params) Intervals() [3]int {
	return [3]int{p.FirstInterval, p.SecondInterval, p.ThirdInterval}
}

func clampInterval(days int) int {
	if days < minInterval {
		return minInterval
	}
	return days
}
