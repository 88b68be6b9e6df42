package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"scheduled to confirmed", StatusScheduled, StatusConfirmed, true},
		{"confirmed to checked_in", StatusConfirmed, StatusCheckedIn, true},
		{"checked_in to in_progress", StatusCheckedIn, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},

		{"scheduled cannot skip to checked_in", StatusScheduled, StatusCheckedIn, false},
		{"scheduled cannot skip to completed", StatusScheduled, StatusCompleted, false},
		{"confirmed cannot go back to scheduled", StatusConfirmed, StatusScheduled, false},
		{"in_progress cannot go back to checked_in", StatusInProgress, StatusCheckedIn, false},

		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"checked_in to rescheduled", StatusCheckedIn, StatusRescheduled, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, true},

		{"rescheduled back to scheduled", StatusRescheduled, StatusScheduled, true},
		{"rescheduled to confirmed", StatusRescheduled, StatusConfirmed, true},
		{"rescheduled to cancelled", StatusRescheduled, StatusCancelled, true},
		{"rescheduled cannot jump to in_progress", StatusRescheduled, StatusInProgress, false},

		{"completed is terminal", StatusCompleted, StatusScheduled, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentTerminalStatusesRejectEverything(t *testing.T) {
	all := []AppointmentStatus{
		StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled,
	}

	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		a := &Appointment{Status: terminal}
		assert.True(t, a.IsTerminal())
		for _, next := range all {
			assert.False(t, a.CanTransitionTo(next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestAppointmentIsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: StatusScheduled}).IsTerminal())
	assert.False(t, (&Appointment{Status: StatusInProgress}).IsTerminal())
	assert.False(t, (&Appointment{Status: StatusRescheduled}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusNoShow}).IsTerminal())
}

func TestAppointmentIsActive(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusCheckedIn, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
		{StatusNoShow, false},
		{StatusRescheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.want, a.IsActive())
		})
	}
}

func TestIsValidAppointmentStatus(t *testing.T) {
	assert.True(t, IsValidAppointmentStatus(StatusScheduled))
	assert.True(t, IsValidAppointmentStatus(StatusNoShow))
	assert.False(t, IsValidAppointmentStatus("booked"))
	assert.False(t, IsValidAppointmentStatus(""))
}
