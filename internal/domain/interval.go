package domain

import "time"

// Interval is a half-open time interval [Start, End).
// Two intervals overlap iff s1 < e2 && s2 < e1; adjacent intervals
// (e1 == s2) do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates a half-open interval [start, end)
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps returns true if the two half-open intervals actually intersect.
// Boundary contact is not an overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if the instant falls inside the interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
