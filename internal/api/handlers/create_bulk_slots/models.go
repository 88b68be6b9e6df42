package create_bulk_slots

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	createBulkSlots "github.com/atyusan/blue-card-sub005/internal/usecase/create_bulk_slots"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// CreateBulkSlotsRequest HTTP request model
type CreateBulkSlotsRequest struct {
	ProviderID        int64   `json:"providerId"`
	ResourceID        *int64  `json:"resourceId,omitempty"`
	StartDate         string  `json:"startDate"`            // "2026-01-15"
	EndDate           string  `json:"endDate"`              // включительно
	DaysOfWeek        []int   `json:"daysOfWeek,omitempty"` // 0 = Sunday
	WindowStart       string  `json:"windowStart"`          // "08:00"
	WindowEnd         string  `json:"windowEnd"`            // "18:00"
	DurationMinutes   int     `json:"durationMinutes"`
	BufferTimeMinutes int     `json:"bufferTimeMinutes"`
	SlotType          string  `json:"slotType"`
	MaxBookings       int     `json:"maxBookings"`
	Specialty         *string `json:"specialty,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	EnforceBuffers    bool    `json:"enforceBuffers"`
}

// CreateBulkSlotsResponse HTTP response model
type CreateBulkSlotsResponse struct {
	CreatedCount int                 `json:"createdCount"`
	CreatedIDs   []int64             `json:"createdIds"`
	Skipped      []SkippedOccurrence `json:"skipped"`
}

// SkippedOccurrence пропущенный слот с причиной
type SkippedOccurrence struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBulkSlotsRequest) ToUseCaseRequest() (*createBulkSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	windowStart, err := types.NewTimeStringFromString(r.WindowStart)
	if err != nil {
		return nil, err
	}

	windowEnd, err := types.NewTimeStringFromString(r.WindowEnd)
	if err != nil {
		return nil, err
	}

	daysOfWeek := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, day := range r.DaysOfWeek {
		daysOfWeek = append(daysOfWeek, time.Weekday(day))
	}

	return &createBulkSlots.Request{
		ProviderID:        r.ProviderID,
		ResourceID:        r.ResourceID,
		StartDate:         startDate,
		EndDate:           endDate,
		DaysOfWeek:        daysOfWeek,
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		DurationMinutes:   r.DurationMinutes,
		BufferTimeMinutes: r.BufferTimeMinutes,
		SlotType:          r.SlotType,
		MaxBookings:       r.MaxBookings,
		Specialty:         r.Specialty,
		Notes:             r.Notes,
		EnforceBuffers:    r.EnforceBuffers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBulkSlots.Response) *CreateBulkSlotsResponse {
	result := &CreateBulkSlotsResponse{
		CreatedCount: resp.CreatedCount,
		CreatedIDs:   resp.CreatedIDs,
		Skipped:      make([]SkippedOccurrence, 0, len(resp.Skipped)),
	}

	if result.CreatedIDs == nil {
		result.CreatedIDs = []int64{}
	}

	for _, skipped := range resp.Skipped {
		result.Skipped = append(result.Skipped, SkippedOccurrence{
			StartTime: skipped.StartTime.Format(time.RFC3339),
			EndTime:   skipped.EndTime.Format(time.RFC3339),
			Reason:    skipped.Reason,
		})
	}

	return result
}
