package reschedule_appointment

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/service/appointments/models"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStartTime string  `json:"newStartTime"` // RFC3339
	NewEndTime   string  `json:"newEndTime"`   // RFC3339
	Reason       *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleAppointmentRequest) ToServiceRequest() (*models.RescheduleRequest, error) {
	newStartTime, err := time.Parse(time.RFC3339, r.NewStartTime)
	if err != nil {
		return nil, err
	}

	newEndTime, err := time.Parse(time.RFC3339, r.NewEndTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleRequest{
		NewStartTime: newStartTime,
		NewEndTime:   newEndTime,
		Reason:       r.Reason,
	}, nil
}
