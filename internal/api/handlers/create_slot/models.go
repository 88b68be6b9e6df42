package create_slot

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	ProviderID          int64   `json:"providerId"`
	ResourceID          *int64  `json:"resourceId,omitempty"`
	StartTime           string  `json:"startTime"` // RFC3339
	EndTime             string  `json:"endTime"`   // RFC3339
	SlotType            string  `json:"slotType"`
	MaxBookings         int     `json:"maxBookings"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Specialty           *string `json:"specialty,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	slotType, err := models.ToDomainSlotType(r.SlotType)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		ProviderID:          r.ProviderID,
		ResourceID:          r.ResourceID,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotType:            slotType,
		MaxBookings:         r.MaxBookings,
		BufferBeforeMinutes: r.BufferBeforeMinutes,
		BufferAfterMinutes:  r.BufferAfterMinutes,
		Specialty:           r.Specialty,
		Notes:               r.Notes,
	}, nil
}
