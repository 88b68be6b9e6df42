package domain

import "time"

// TimeOffStatus статус заявки на отсутствие
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// TimeOffType тип отсутствия
type TimeOffType string

const (
	TimeOffVacation   TimeOffType = "vacation"
	TimeOffSickLeave  TimeOffType = "sick_leave"
	TimeOffConference TimeOffType = "conference"
	TimeOffPersonal   TimeOffType = "personal"
)

// TimeOffRequest is a provider absence over a closed range of calendar
// dates. The approval workflow is owned by HR/admin; the scheduling core
// consumes it read-only, and only approved requests affect availability.
type TimeOffRequest struct {
	ID         int64
	ProviderID int64
	StartDate  time.Time // calendar date, inclusive
	EndDate    time.Time // calendar date, inclusive
	Status     TimeOffStatus
	Type       TimeOffType
	ApproverID *int64
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsApproved returns true if the request affects availability
func (t *TimeOffRequest) IsApproved() bool {
	return t.Status == TimeOffApproved
}

// CoversDate returns true if the calendar date falls inside the inclusive range
func (t *TimeOffRequest) CoversDate(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(t.StartDate)) && !d.After(truncateToDate(t.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
