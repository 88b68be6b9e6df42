package domain

import (
	"math"
	"time"

	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// TimeSlotCell is one discrete cell of the availability grid
type TimeSlotCell struct {
	Start types.TimeString
	End   types.TimeString

	IsAvailable bool
	IsBooked    bool
	IsBreak     bool
}

// AvailabilityDay is the derived availability breakdown of one calendar
// date. It is a pure query-time projection and is never persisted.
type AvailabilityDay struct {
	Date      time.Time
	DayOfWeek time.Weekday

	IsAvailable bool
	IsPast      bool
	IsToday     bool

	WorkStart  types.TimeString
	WorkEnd    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	Slots []TimeSlotCell

	TotalSlots             int
	AvailableSlotsCount    int
	AvailabilityPercentage int // round(100 * available / total), 0 when total = 0
}

// AvailabilityPercent вычисляет процент доступности с округлением
// При total = 0 возвращает 0
func AvailabilityPercent(available, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(available) / float64(total)))
}
