package create_recurring_slots

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	createRecurringSlots "github.com/atyusan/blue-card-sub005/internal/usecase/create_recurring_slots"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// CreateRecurringSlotsRequest HTTP request model
type CreateRecurringSlotsRequest struct {
	ProviderID          int64   `json:"providerId"`
	ResourceID          *int64  `json:"resourceId,omitempty"`
	StartTime           string  `json:"startTime"` // "09:00"
	DurationMinutes     int     `json:"durationMinutes"`
	SlotType            string  `json:"slotType"`
	MaxBookings         int     `json:"maxBookings"`
	BufferBeforeMinutes int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int     `json:"bufferAfterMinutes"`
	Specialty           *string `json:"specialty,omitempty"`
	Notes               *string `json:"notes,omitempty"`

	PatternType    string `json:"patternType"` // daily | weekly | monthly | custom
	Interval       int    `json:"interval"`
	DaysOfWeek     []int  `json:"daysOfWeek,omitempty"` // 0 = Sunday
	StartDate      string `json:"startDate"`            // "2026-01-15"
	EndDate        string `json:"endDate,omitempty"`
	MaxOccurrences *int   `json:"maxOccurrences,omitempty"`
}

// CreateRecurringSlotsResponse HTTP response model
type CreateRecurringSlotsResponse struct {
	CreatedCount int                 `json:"createdCount"`
	CreatedIDs   []int64             `json:"createdIds"`
	Skipped      []SkippedOccurrence `json:"skipped"`
}

// SkippedOccurrence пропущенное вхождение с причиной
type SkippedOccurrence struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringSlotsRequest) ToUseCaseRequest() (*createRecurringSlots.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	var endDate time.Time
	if r.EndDate != "" {
		endDate, err = time.Parse(domain.DateFormat, r.EndDate)
		if err != nil {
			return nil, err
		}
	}

	daysOfWeek := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, day := range r.DaysOfWeek {
		daysOfWeek = append(daysOfWeek, time.Weekday(day))
	}

	return &createRecurringSlots.Request{
		ProviderID:          r.ProviderID,
		ResourceID:          r.ResourceID,
		StartTime:           startTime,
		DurationMinutes:     r.DurationMinutes,
		SlotType:            r.SlotType,
		MaxBookings:         r.MaxBookings,
		BufferBeforeMinutes: r.BufferBeforeMinutes,
		BufferAfterMinutes:  r.BufferAfterMinutes,
		Specialty:           r.Specialty,
		Notes:               r.Notes,
		PatternType:         r.PatternType,
		Interval:            r.Interval,
		DaysOfWeek:          daysOfWeek,
		StartDate:           startDate,
		EndDate:             endDate,
		MaxOccurrences:      r.MaxOccurrences,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurringSlots.Response) *CreateRecurringSlotsResponse {
	result := &CreateRecurringSlotsResponse{
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
