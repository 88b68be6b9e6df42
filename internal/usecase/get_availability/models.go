package get_availability

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// Request модель запроса доступности на одну дату
type Request struct {
	ProviderID int64     // ID провайдера
	Date       time.Time // Календарная дата
}

// RangeRequest модель запроса доступности на диапазон дат
type RangeRequest struct {
	ProviderID  int64     // ID провайдера
	StartDate   time.Time // Начало диапазона
	EndDate     time.Time // Конец диапазона (включительно)
	ExcludePast bool      // Не включать прошедшие даты в ответ
}

// TimeSlotCellResponse одна ячейка сетки доступности
type TimeSlotCellResponse struct {
	Start       string `json:"start"` // "09:00"
	End         string `json:"end"`   // "09:30"
	IsAvailable bool   `json:"isAvailable"`
	IsBooked    bool   `json:"isBooked"`
	IsBreak     bool   `json:"isBreak"`
}

// DayResponse разбивка доступности одной даты
type DayResponse struct {
	Date      string `json:"date"` // "2026-01-15"
	DayOfWeek int    `json:"dayOfWeek"`

	IsAvailable bool `json:"isAvailable"`
	IsPast      bool `json:"isPast"`
	IsToday     bool `json:"isToday"`

	WorkStart  string  `json:"workStart"`
	WorkEnd    string  `json:"workEnd"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`

	Slots []TimeSlotCellResponse `json:"slots"`

	TotalSlots             int `json:"totalSlots"`
	AvailableSlotsCount    int `json:"availableSlotsCount"`
	AvailabilityPercentage int `json:"availabilityPercentage"`
}

// RangeResponse разбивка доступности диапазона дат
type RangeResponse struct {
	ProviderID int64         `json:"providerId"`
	Days       []DayResponse `json:"days"`
}

// fromDomainDay конвертирует проекцию в DTO
func fromDomainDay(day *domain.AvailabilityDay) *DayResponse {
	resp := &DayResponse{
		Date:                   day.Date.Format(domain.DateFormat),
		DayOfWeek:              int(day.DayOfWeek),
		IsAvailable:            day.IsAvailable,
		IsPast:                 day.IsPast,
		IsToday:                day.IsToday,
		WorkStart:              day.WorkStart.String(),
		WorkEnd:                day.WorkEnd.String(),
		Slots:                  make([]TimeSlotCellResponse, 0, len(day.Slots)),
		TotalSlots:             day.TotalSlots,
		AvailableSlotsCount:    day.AvailableSlotsCount,
		AvailabilityPercentage: day.AvailabilityPercentage,
	}

	if day.BreakStart != nil {
		bs := day.BreakStart.String()
		resp.BreakStart = &bs
	}
	if day.BreakEnd != nil {
		be := day.BreakEnd.String()
		resp.BreakEnd = &be
	}

	for _, cell := range day.Slots {
		resp.Slots = append(resp.Slots, TimeSlotCellResponse{
			Start:       cell.Start.String(),
			End:         cell.End.String(),
			IsAvailable: cell.IsAvailable,
			IsBooked:    cell.IsBooked,
			IsBreak:     cell.IsBreak,
		})
	}

	return resp
}
