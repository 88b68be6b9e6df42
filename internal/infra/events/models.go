package events

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий жизненного цикла приёма
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentRescheduled   = "appointment.rescheduled"
	TypeAppointmentCancelled     = "appointment.cancelled"
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeAppointmentReminder      = "appointment.reminder"
)

// AppointmentEvent событие жизненного цикла приёма для внешних потребителей
type AppointmentEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	AppointmentID int64     `json:"appointment_id"`
	PatientID     int64     `json:"patient_id"`
	ProviderID    int64     `json:"provider_id"`
	SlotID        int64     `json:"slot_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Reason        *string   `json:"reason,omitempty"`
}

// NewAppointmentEvent создает событие с уникальным идентификатором
func NewAppointmentEvent(eventType string, now time.Time) AppointmentEvent {
	return AppointmentEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: now,
	}
}
