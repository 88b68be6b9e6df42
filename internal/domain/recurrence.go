package domain

import "time"

// RecurrencePatternType способ шага паттерна повторения
type RecurrencePatternType string

const (
	RecurrenceDaily   RecurrencePatternType = "daily"
	RecurrenceWeekly  RecurrencePatternType = "weekly"
	RecurrenceMonthly RecurrencePatternType = "monthly"
	RecurrenceCustom  RecurrencePatternType = "custom"
)

// RecurrencePattern is a one-shot expansion directive: it is consumed once
// to produce concrete slots and never re-evaluated afterwards.
type RecurrencePattern struct {
	Type           RecurrencePatternType
	Interval       int // >= 1
	DaysOfWeek     []time.Weekday
	StartDate      time.Time
	EndDate        time.Time // zero value: StartDate + DefaultRecurrenceHorizonDays
	MaxOccurrences *int
}

// EffectiveEndDate returns the explicit end date or the default horizon
func (p *RecurrencePattern) EffectiveEndDate() time.Time {
	if !p.EndDate.IsZero() {
		return p.EndDate
	}
	return p.StartDate.AddDate(0, 0, DefaultRecurrenceHorizonDays)
}

// MatchesDay returns true if the weekday passes the pattern's day filter.
// An empty DaysOfWeek set matches every day.
func (p *RecurrencePattern) MatchesDay(day time.Weekday) bool {
	if len(p.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range p.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
