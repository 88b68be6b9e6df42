package models

import (
	"errors"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при неизвестном статусе приёма
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// RescheduleRequest запрос на перенос временного окна приёма.
// Место в исходном слоте сохраняется - смена слота делается через
// отмену и новое создание
type RescheduleRequest struct {
	NewStartTime time.Time `json:"newStartTime"`
	NewEndTime   time.Time `json:"newEndTime"`
	Reason       *string   `json:"reason,omitempty"`
}

// CancelRequest запрос на отмену приёма
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса приёма
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetPatientAppointmentsRequest запрос на историю приёмов пациента
type GetPatientAppointmentsRequest struct {
	PatientID int64   `json:"patientId"`
	Status    *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID         int64     `json:"id"`
	PatientID  int64     `json:"patientId"`
	ProviderID int64     `json:"providerId"`
	SlotID     int64     `json:"slotId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`

	Reason *string `json:"reason,omitempty"`
	Notes  *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		ProviderID:         a.ProviderID,
		SlotID:             a.SlotID,
		StartTime:          a.StartTime,
		EndTime:            a.EndTime,
		Status:             string(a.Status),
		Reason:             a.Reason,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if ar := FromDomainAppointment(a); ar != nil {
			resp.Appointments = append(resp.Appointments, *ar)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidAppointmentStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
