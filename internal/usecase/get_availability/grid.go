package get_availability

import (
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// buildDay собирает проекцию доступности одной даты: сетка ячеек шириной
// slotDuration по рабочему окну правила, классификация каждой ячейки по
// перерыву, занятости и свободным слотам
func buildDay(
	rule *domain.ProviderScheduleRule,
	date time.Time,
	now time.Time,
	hasTimeOff bool,
	slots []*domain.Slot,
	loc *time.Location,
) (*domain.AvailabilityDay, error) {
	today := truncateToDate(now.In(loc))
	day := truncateToDate(date.In(loc))

	result := &domain.AvailabilityDay{
		Date:       day,
		DayOfWeek:  day.Weekday(),
		IsPast:     day.Before(today),
		IsToday:    day.Equal(today),
		WorkStart:  rule.WorkStart,
		WorkEnd:    rule.WorkEnd,
		BreakStart: rule.BreakStart,
		BreakEnd:   rule.BreakEnd,
		Slots:      []domain.TimeSlotCell{},
	}

	// Нерабочий день или отсутствие: сетка не строится
	if !rule.IsWorking {
		return result, nil
	}

	workStartMin, err := rule.WorkStart.Minutes()
	if err != nil {
		return nil, err
	}
	workEndMin, err := rule.WorkEnd.Minutes()
	if err != nil {
		return nil, err
	}

	var breakStartMin, breakEndMin int
	if rule.HasBreak() {
		breakStartMin, err = rule.BreakStart.Minutes()
		if err != nil {
			return nil, err
		}
		breakEndMin, err = rule.BreakEnd.Minutes()
		if err != nil {
			return nil, err
		}
	}

	step := rule.SlotDurationMinutes
	if step < 1 {
		step = domain.DefaultSlotDurationMinutes
	}

	// Хвостовая ячейка, вылезающая за конец окна, отбрасывается
	for cellStart := workStartMin; cellStart+step <= workEndMin; cellStart += step {
		cellEnd := cellStart + step

		cell := domain.TimeSlotCell{
			Start: minutesToTimeString(cellStart),
			End:   minutesToTimeString(cellEnd),
		}

		// Перерыв: любое пересечение ячейки с окном перерыва
		if rule.HasBreak() && cellStart < breakEndMin && breakStartMin < cellEnd {
			cell.IsBreak = true
		}

		absStart := time.Date(day.Year(), day.Month(), day.Day(), cellStart/60, cellStart%60, 0, 0, loc)
		absEnd := absStart.Add(time.Duration(step) * time.Minute)

		for _, slot := range slots {
			if !containsCell(slot, absStart, absEnd) {
				continue
			}
			if slot.HasActiveBookings() {
				cell.IsBooked = true
			}
			if slot.CanAcceptBooking() && !cell.IsBreak && !hasTimeOff {
				cell.IsAvailable = true
			}
		}

		result.Slots = append(result.Slots, cell)
		result.TotalSlots++
		if cell.IsAvailable {
			result.AvailableSlotsCount++
		}
	}

	result.AvailabilityPercentage = domain.AvailabilityPercent(result.AvailableSlotsCount, result.TotalSlots)
	result.IsAvailable = rule.IsWorking && !hasTimeOff && result.AvailableSlotsCount > 0

	return result, nil
}

// containsCell ячейка внутри слота: [cellStart, cellEnd) ⊆ [slot.Start, slot.End)
func containsCell(slot *domain.Slot, cellStart, cellEnd time.Time) bool {
	return !cellStart.Before(slot.StartTime) && !cellEnd.After(slot.EndTime)
}

func minutesToTimeString(minutes int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
