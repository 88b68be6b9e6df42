package models

import (
	"errors"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

var (
	// ErrInvalidSlotType возвращается при неизвестном типе слота
	ErrInvalidSlotType = errors.New("invalid slot type")
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	ProviderID          int64           `json:"providerId"`
	ResourceID          *int64          `json:"resourceId,omitempty"`
	StartTime           time.Time       `json:"startTime"`
	EndTime             time.Time       `json:"endTime"`
	SlotType            domain.SlotType `json:"slotType"`
	MaxBookings         int             `json:"maxBookings"`
	BufferBeforeMinutes int             `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int             `json:"bufferAfterMinutes"`
	Specialty           *string         `json:"specialty,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateSlotRequest) ToDomain() *domain.Slot {
	return &domain.Slot{
		ProviderID:          r.ProviderID,
		ResourceID:          r.ResourceID,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		DurationMinutes:     int(r.EndTime.Sub(r.StartTime).Minutes()),
		SlotType:            r.SlotType,
		MaxBookings:         r.MaxBookings,
		CurrentBookings:     0,
		IsAvailable:         true,
		IsBookable:          true,
		BufferBeforeMinutes: r.BufferBeforeMinutes,
		BufferAfterMinutes:  r.BufferAfterMinutes,
		Specialty:           r.Specialty,
		Notes:               r.Notes,
	}
}

// UpdateSlotRequest запрос на обновление слота.
// Затрагивает только переданные поля
type UpdateSlotRequest struct {
	StartTime   *time.Time       `json:"startTime,omitempty"`
	EndTime     *time.Time       `json:"endTime,omitempty"`
	SlotType    *domain.SlotType `json:"slotType,omitempty"`
	MaxBookings *int             `json:"maxBookings,omitempty"`
	IsAvailable *bool            `json:"isAvailable,omitempty"`
	IsBookable  *bool            `json:"isBookable,omitempty"`
	Specialty   *string          `json:"specialty,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ChangesTimeWindow возвращает true, если запрос двигает временное окно
func (r *UpdateSlotRequest) ChangesTimeWindow() bool {
	return r.StartTime != nil || r.EndTime != nil
}

// SearchSlotsRequest запрос на поиск слотов
type SearchSlotsRequest struct {
	ProviderID    *int64           `json:"providerId,omitempty"`
	ResourceID    *int64           `json:"resourceId,omitempty"`
	Specialty     *string          `json:"specialty,omitempty"`
	SlotType      *domain.SlotType `json:"slotType,omitempty"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	EndDate       *time.Time       `json:"endDate,omitempty"`
	OnlyAvailable bool             `json:"onlyAvailable,omitempty"`
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *SearchSlotsRequest) ToDomainFilter() domain.SlotFilter {
	return domain.SlotFilter{
		ProviderID:    r.ProviderID,
		ResourceID:    r.ResourceID,
		Specialty:     r.Specialty,
		SlotType:      r.SlotType,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		OnlyAvailable: r.OnlyAvailable,
	}
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                  int64     `json:"id"`
	ProviderID          int64     `json:"providerId"`
	ResourceID          *int64    `json:"resourceId,omitempty"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	DurationMinutes     int       `json:"durationMinutes"`
	SlotType            string    `json:"slotType"`
	MaxBookings         int       `json:"maxBookings"`
	CurrentBookings     int       `json:"currentBookings"`
	AvailableSpots      int       `json:"availableSpots"`
	IsAvailable         bool      `json:"isAvailable"`
	IsBookable          bool      `json:"isBookable"`
	BufferBeforeMinutes int       `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int       `json:"bufferAfterMinutes"`
	Specialty           *string   `json:"specialty,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                  s.ID,
		ProviderID:          s.ProviderID,
		ResourceID:          s.ResourceID,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		DurationMinutes:     s.DurationMinutes,
		SlotType:            string(s.SlotType),
		MaxBookings:         s.MaxBookings,
		CurrentBookings:     s.CurrentBookings,
		AvailableSpots:      s.AvailableSpots(),
		IsAvailable:         s.IsAvailable,
		IsBookable:          s.IsBookable,
		BufferBeforeMinutes: s.BufferBeforeMinutes,
		BufferAfterMinutes:  s.BufferAfterMinutes,
		Specialty:           s.Specialty,
		Notes:               s.Notes,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if slotResp := FromDomainSlot(s); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainSlotType валидирует тип слота
func ToDomainSlotType(slotType string) (domain.SlotType, error) {
	s := domain.SlotType(slotType)

	validTypes := []domain.SlotType{
		domain.SlotTypeConsultation,
		domain.SlotTypeFollowUp,
		domain.SlotTypeProcedure,
		domain.SlotTypeLab,
		domain.SlotTypeTelehealth,
	}

	for _, valid := range validTypes {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidSlotType
}
