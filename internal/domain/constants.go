package domain

import "github.com/atyusan/blue-card-sub005/pkg/types"

// Default schedule values applied when a provider has no rule configured
// for a weekday. An explicit, documented fallback - not silent corruption.
const (
	DefaultWorkStart              = types.TimeString("09:00")
	DefaultWorkEnd                = types.TimeString("17:00")
	DefaultSlotDurationMinutes    = 30
	DefaultBufferMinutes          = 5
	DefaultMaxAppointmentsPerHour = 4
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinBookingsPerSlot     = 1
	MaxBookingsPerSlot     = 100
	MaxNotesLength         = 500
	MaxReasonLength        = 500

	// Recurrence expansion is bounded to a year past the start date
	// when the pattern carries no explicit end date.
	DefaultRecurrenceHorizonDays = 365
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveAppointmentStatuses статусы приёмов, занимающих время провайдера
// Используются при проверке конфликтов и подсчёте занятости
var ActiveAppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
}

// TerminalAppointmentStatuses терминальные статусы: дальнейшие изменения запрещены
var TerminalAppointmentStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
