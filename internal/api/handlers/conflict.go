package handlers

import (
	"net/http"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// ConflictDetail один конфликт расписания в HTTP-ответе
type ConflictDetail struct {
	Type           string  `json:"type"`
	Message        string  `json:"message"`
	SlotIDs        []int64 `json:"slotIds,omitempty"`
	AppointmentIDs []int64 `json:"appointmentIds,omitempty"`
	TimeOffIDs     []int64 `json:"timeOffIds,omitempty"`
}

// ConflictResponse тело ответа 409 с деталями конфликтов
type ConflictResponse struct {
	Code      int              `json:"code"`
	Message   string           `json:"message"`
	Conflicts []ConflictDetail `json:"conflicts"`
}

// NewConflictResponse собирает тело 409 из доменных конфликтов
func NewConflictResponse(message string, conflicts []domain.Conflict) *ConflictResponse {
	resp := &ConflictResponse{
		Code:      http.StatusConflict,
		Message:   message,
		Conflicts: make([]ConflictDetail, 0, len(conflicts)),
	}

	for _, c := range conflicts {
		detail := ConflictDetail{
			Type:    string(c.Type),
			Message: c.Message,
		}

		for _, s := range c.Slots {
			detail.SlotIDs = append(detail.SlotIDs, s.ID)
		}
		for _, a := range c.Appointments {
			detail.AppointmentIDs = append(detail.AppointmentIDs, a.ID)
		}
		for _, t := range c.TimeOff {
			detail.TimeOffIDs = append(detail.TimeOffIDs, t.ID)
		}

		resp.Conflicts = append(resp.Conflicts, detail)
	}

	return resp
}
