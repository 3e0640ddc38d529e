package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BayBookingService/pkg/types"
)

// Interval is a closed-open range of minutes since midnight: [Start, End)
type Interval struct {
	Start int
	End   int
}

// NewInterval builds [start, start+duration)
func NewInterval(start types.TimeString, durationMinutes int) Interval {
	s := start.Minutes()
	return Interval{Start: s, End: s + durationMinutes}
}

// Duration in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}

// IsEmpty returns true for zero or negative length intervals
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps reports whether two intervals share at least one instant.
// Abutting intervals (i.End == o.Start) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Contains reports whether o lies fully inside i
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

// StartTime returns the start as HH:MM
func (i Interval) StartTime() types.TimeString {
	t, _ := types.FromMinutes(i.Start)
	return t
}

// EndTime returns the end as HH:MM ("24:00" for the end of the day)
func (i Interval) EndTime() types.TimeString {
	t, _ := types.FromMinutes(i.End)
	return t
}

func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.StartTime(), i.EndTime())
}

// SortIntervals sorts by start, then by end
func SortIntervals(intervals []Interval) {
	sort.Slice(intervals, func(a, b int) bool {
		if intervals[a].Start == intervals[b].Start {
			return intervals[a].End < intervals[b].End
		}
		return intervals[a].Start < intervals[b].Start
	})
}
