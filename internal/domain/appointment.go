package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusCheckedIn   AppointmentStatus = "checked_in"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// appointmentTransitions описывает машину состояний приёма:
// scheduled → confirmed → checked_in → in_progress → completed,
// с боковыми выходами в cancelled / no_show / rescheduled из любого
// нетерминального состояния
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:   {StatusConfirmed, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusConfirmed:   {StatusCheckedIn, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusCheckedIn:   {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusInProgress:  {StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusRescheduled: {StatusScheduled, StatusConfirmed, StatusCancelled, StatusNoShow},
}

// Appointment represents a patient visit bound to a slot.
// Times are absolute instants copied from the slot at booking time and
// moved independently on reschedule.
type Appointment struct {
	ID         int64
	PatientID  int64
	ProviderID int64
	SlotID     int64

	StartTime time.Time
	EndTime   time.Time
	Status    AppointmentStatus

	Reason *string
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time
	ReminderSent       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the appointment's half-open time interval
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// IsTerminal returns true if no further mutation is accepted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// IsActive returns true if the appointment occupies provider time
// (counts towards conflicts and seat occupancy)
func (a *Appointment) IsActive() bool {
	for _, s := range ActiveAppointmentStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// CanTransitionTo returns true if the status machine permits the move
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValidAppointmentStatus returns true for a known status value
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	default:
		return false
	}
}
