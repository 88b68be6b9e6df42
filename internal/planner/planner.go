// Package planner раскрывает повторяющиеся паттерны и окна массовой
// генерации в конкретные слоты. Чистые функции без доступа к хранилищу:
// проверка конфликтов и запись остаются за вызывающим
package planner

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

var (
	// ErrInvalidBase возвращается при некорректном шаблоне слота
	ErrInvalidBase = errors.New("planner: invalid base slot")

	// ErrInvalidPattern возвращается при некорректном паттерне повторения
	ErrInvalidPattern = errors.New("planner: invalid recurrence pattern")

	// ErrInvalidWindow возвращается при некорректном окне массовой генерации
	ErrInvalidWindow = errors.New("planner: invalid bulk window")
)

// BaseSlot шаблон слота: время суток и атрибуты без конкретной даты
type BaseSlot struct {
	ProviderID          int64
	ResourceID          *int64
	StartTime           types.TimeString
	DurationMinutes     int
	SlotType            domain.SlotType
	MaxBookings         int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Specialty           *string
	Notes               *string
	Location            *time.Location
}

func (b *BaseSlot) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

func (b *BaseSlot) validate() error {
	if b.DurationMinutes < domain.MinSlotDurationMinutes || b.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidBase, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if b.MaxBookings < domain.MinBookingsPerSlot || b.MaxBookings > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookings must be between %d and %d",
			ErrInvalidBase, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
	}
	if b.BufferBeforeMinutes < 0 || b.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers must be non-negative", ErrInvalidBase)
	}
	return nil
}

// BulkWindow критерии массовой генерации: диапазон дат, дни недели
// и дневное окно, нарезаемое на последовательные слоты
type BulkWindow struct {
	StartDate   time.Time
	EndDate     time.Time // calendar date, inclusive
	DaysOfWeek  []time.Weekday
	WindowStart types.TimeString
	WindowEnd   types.TimeString

	// EnforceBuffers расширяет шаг нарезки до duration+buffer,
	// превращая рекомендательные буферы в реальные зазоры
	EnforceBuffers bool
}

// matchesDay пустой набор дней совпадает с любым днём
func (w *BulkWindow) matchesDay(day time.Weekday) bool {
	if len(w.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range w.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// ExpandRecurrence раскрывает паттерн в ленивую последовательность слотов.
// Курсор стартует с даты начала; дата, чей день недели проходит фильтр,
// даёт слот с временем суток шаблона. Шаг курсора: daily +interval дней,
// weekly +7*interval дней, monthly +interval месяцев, custom шагает как
// daily. Остановка: курсор за датой конца или достигнут maxOccurrences.
// Последовательность - чистая функция входов: её можно обойти повторно
// и получить те же слоты
func ExpandRecurrence(base BaseSlot, pattern domain.RecurrencePattern) (iter.Seq[*domain.Slot], error) {
	if err := base.validate(); err != nil {
		return nil, err
	}

	startMinutes, err := base.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidBase, err)
	}

	if pattern.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidPattern)
	}
	if pattern.MaxOccurrences != nil && *pattern.MaxOccurrences < 1 {
		return nil, fmt.Errorf("%w: maxOccurrences must be at least 1", ErrInvalidPattern)
	}

	interval := pattern.Interval
	if interval < 1 {
		interval = 1
	}

	loc := base.location()
	endDate := truncateToDate(pattern.EffectiveEndDate())
	startDate := truncateToDate(pattern.StartDate)

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidPattern)
	}

	seq := func(yield func(*domain.Slot) bool) {
		produced := 0
		for cursor := startDate; !cursor.After(endDate); {
			if pattern.MaxOccurrences != nil && produced >= *pattern.MaxOccurrences {
				return
			}

			if pattern.MatchesDay(cursor.Weekday()) {
				if !yield(materialize(base, cursor, startMinutes, loc)) {
					return
				}
				produced++
			}

			switch pattern.Type {
			case domain.RecurrenceWeekly:
				cursor = cursor.AddDate(0, 0, 7*interval)
			case domain.RecurrenceMonthly:
				cursor = cursor.AddDate(0, interval, 0)
			default: // daily и custom
				cursor = cursor.AddDate(0, 0, interval)
			}
		}
	}

	return seq, nil
}

// ExpandBulk нарезает дневное окно каждой подходящей даты диапазона на
// ленивую последовательность встык идущих слотов ширины DurationMinutes.
// Хвостовой кусок, не помещающийся в окно, отбрасывается. Буферы не
// сужают кусок, если не включен EnforceBuffers. Последовательность
// перезапускаема, как у ExpandRecurrence
func ExpandBulk(base BaseSlot, window BulkWindow) (iter.Seq[*domain.Slot], error) {
	if err := base.validate(); err != nil {
		return nil, err
	}

	windowStartMin, err := window.WindowStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: window start: %v", ErrInvalidWindow, err)
	}
	windowEndMin, err := windowEndMinutes(window.WindowEnd)
	if err != nil {
		return nil, err
	}
	if windowEndMin <= windowStartMin {
		return nil, fmt.Errorf("%w: window start must be before window end", ErrInvalidWindow)
	}

	if window.StartDate.IsZero() || window.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: date range is required", ErrInvalidWindow)
	}

	endDate := truncateToDate(window.EndDate)
	startDate := truncateToDate(window.StartDate)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidWindow)
	}

	stride := base.DurationMinutes
	if window.EnforceBuffers {
		stride += base.BufferBeforeMinutes + base.BufferAfterMinutes
	}

	loc := base.location()

	seq := func(yield func(*domain.Slot) bool) {
		for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
			if !window.matchesDay(date.Weekday()) {
				continue
			}

			for start := windowStartMin; start+base.DurationMinutes <= windowEndMin; start += stride {
				if !yield(materialize(base, date, start, loc)) {
					return
				}
			}
		}
	}

	return seq, nil
}

// materialize собирает конкретный слот из шаблона, даты и минут от начала суток
func materialize(base BaseSlot, date time.Time, startMinutes int, loc *time.Location) *domain.Slot {
	start := time.Date(date.Year(), date.Month(), date.Day(), startMinutes/60, startMinutes%60, 0, 0, loc)
	end := start.Add(time.Duration(base.DurationMinutes) * time.Minute)

	return &domain.Slot{
		ProviderID:          base.ProviderID,
		ResourceID:          base.ResourceID,
		StartTime:           start,
		EndTime:             end,
		DurationMinutes:     base.DurationMinutes,
		SlotType:            base.SlotType,
		MaxBookings:         base.MaxBookings,
		CurrentBookings:     0,
		IsAvailable:         true,
		IsBookable:          true,
		BufferBeforeMinutes: base.BufferBeforeMinutes,
		BufferAfterMinutes:  base.BufferAfterMinutes,
		Specialty:           base.Specialty,
		Notes:               base.Notes,
	}
}

// windowEndMinutes допускает "24:00" как верхнюю границу дневного окна
func windowEndMinutes(end types.TimeString) (int, error) {
	if end == types.TimeString("24:00") {
		return 24 * 60, nil
	}
	minutes, err := end.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: window end: %v", ErrInvalidWindow, err)
	}
	return minutes, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
