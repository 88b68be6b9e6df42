package domain

import "time"

// SlotType classifies what a slot is intended for
type SlotType string

const (
	SlotTypeConsultation SlotType = "consultation"
	SlotTypeFollowUp     SlotType = "follow_up"
	SlotTypeProcedure    SlotType = "procedure"
	SlotTypeLab          SlotType = "lab"
	SlotTypeTelehealth   SlotType = "telehealth"
)

// Slot represents a bookable time window of a provider (optionally bound
// to a resource such as a room or a device). Times are absolute instants.
type Slot struct {
	ID              int64
	ProviderID      int64
	ResourceID      *int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	SlotType        SlotType

	MaxBookings     int // seats, >= 1
	CurrentBookings int // 0..MaxBookings, mutated only via atomic store updates

	IsAvailable bool
	IsBookable  bool

	// Advisory spacing metadata; does not shrink the slot itself
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	Specialty *string
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the slot's half-open time interval [StartTime, EndTime)
func (s *Slot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// HasActiveBookings returns true if at least one seat is taken.
// A slot with active bookings is structurally immutable.
func (s *Slot) HasActiveBookings() bool {
	return s.CurrentBookings > 0
}

// IsFull returns true if all seats are taken
func (s *Slot) IsFull() bool {
	return s.CurrentBookings >= s.MaxBookings
}

// AvailableSpots returns the number of free seats
func (s *Slot) AvailableSpots() int {
	spots := s.MaxBookings - s.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// CanAcceptBooking returns true if the slot can take one more reservation
func (s *Slot) CanAcceptBooking() bool {
	return s.IsAvailable && s.IsBookable && !s.IsFull()
}

// SlotFilter критерии поиска слотов
type SlotFilter struct {
	ProviderID    *int64
	ResourceID    *int64
	Specialty     *string
	SlotType      *SlotType
	StartDate     *time.Time // Начало периода (опционально)
	EndDate       *time.Time // Конец периода (опционально)
	OnlyAvailable bool       // Только слоты со свободными местами
}
