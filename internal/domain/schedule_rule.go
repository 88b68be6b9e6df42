package domain

import (
	"time"

	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// ProviderScheduleRule is a recurring weekly template: it describes how a
// provider works on a given weekday, not a concrete dated instance. Times
// are local times of day composed against a calendar date at query time.
type ProviderScheduleRule struct {
	ID         int64
	ProviderID int64
	DayOfWeek  time.Weekday

	WorkStart types.TimeString
	WorkEnd   types.TimeString

	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	IsWorking bool

	SlotDurationMinutes    int
	BufferTimeMinutes      int
	MaxAppointmentsPerHour int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultScheduleRule returns the documented fallback applied when no rule
// is configured for the weekday: 09:00-17:00, 30-minute slots, 5-minute
// buffer, no break, working.
func DefaultScheduleRule(providerID int64, day time.Weekday) *ProviderScheduleRule {
	return &ProviderScheduleRule{
		ProviderID:             providerID,
		DayOfWeek:              day,
		WorkStart:              DefaultWorkStart,
		WorkEnd:                DefaultWorkEnd,
		IsWorking:              true,
		SlotDurationMinutes:    DefaultSlotDurationMinutes,
		BufferTimeMinutes:      DefaultBufferMinutes,
		MaxAppointmentsPerHour: DefaultMaxAppointmentsPerHour,
	}
}

// HasBreak returns true if the rule carries a break window
func (r *ProviderScheduleRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil
}
