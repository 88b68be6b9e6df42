package update_slot

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

// UpdateSlotRequest HTTP request model.
// Затрагивает только переданные поля
type UpdateSlotRequest struct {
	StartTime   *string `json:"startTime,omitempty"` // RFC3339
	EndTime     *string `json:"endTime,omitempty"`   // RFC3339
	SlotType    *string `json:"slotType,omitempty"`
	MaxBookings *int    `json:"maxBookings,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	IsBookable  *bool   `json:"isBookable,omitempty"`
	Specialty   *string `json:"specialty,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest() (*models.UpdateSlotRequest, error) {
	req := &models.UpdateSlotRequest{
		MaxBookings: r.MaxBookings,
		IsAvailable: r.IsAvailable,
		IsBookable:  r.IsBookable,
		Specialty:   r.Specialty,
		Notes:       r.Notes,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	if r.SlotType != nil {
		slotType, err := models.ToDomainSlotType(*r.SlotType)
		if err != nil {
			return nil, err
		}
		req.SlotType = &slotType
	}

	return req, nil
}
