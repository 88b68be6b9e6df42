package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

func workingRule(step int) *domain.ProviderScheduleRule {
	return &domain.ProviderScheduleRule{
		ProviderID:          1,
		DayOfWeek:           time.Monday,
		WorkStart:           types.TimeString("09:00"),
		WorkEnd:             types.TimeString("17:00"),
		IsWorking:           true,
		SlotDurationMinutes: step,
	}
}

func bookableSlot(day time.Time, startHour, startMin, durationMin, maxBookings, currentBookings int) *domain.Slot {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC)
	return &domain.Slot{
		ProviderID:      1,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMin) * time.Minute),
		DurationMinutes: durationMin,
		SlotType:        domain.SlotTypeConsultation,
		MaxBookings:     maxBookings,
		CurrentBookings: currentBookings,
		IsAvailable:     true,
		IsBookable:      true,
	}
}

var (
	gridDay = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	gridNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func TestBuildDayGridShape(t *testing.T) {
	day, err := buildDay(workingRule(60), gridDay, gridNow, false, nil, time.UTC)
	require.NoError(t, err)

	// 09:00-17:00 по часу - восемь ячеек
	require.Len(t, day.Slots, 8)
	assert.Equal(t, 8, day.TotalSlots)
	assert.Equal(t, types.TimeString("09:00"), day.Slots[0].Start)
	assert.Equal(t, types.TimeString("10:00"), day.Slots[0].End)
	assert.Equal(t, types.TimeString("16:00"), day.Slots[7].Start)
	assert.Equal(t, types.TimeString("17:00"), day.Slots[7].End)

	// Слотов нет - день закрыт для записи
	assert.Equal(t, 0, day.AvailableSlotsCount)
	assert.False(t, day.IsAvailable)
	assert.Equal(t, 0, day.AvailabilityPercentage)
}

func TestBuildDayNonWorkingDay(t *testing.T) {
	rule := workingRule(60)
	rule.IsWorking = false

	day, err := buildDay(rule, gridDay, gridNow, false, nil, time.UTC)
	require.NoError(t, err)

	assert.Empty(t, day.Slots)
	assert.Equal(t, 0, day.TotalSlots)
	assert.False(t, day.IsAvailable)
}

func TestBuildDayTrailingPartialCellDiscarded(t *testing.T) {
	rule := workingRule(45)

	day, err := buildDay(rule, gridDay, gridNow, false, nil, time.UTC)
	require.NoError(t, err)

	// 480 минут по 45: десять ячеек, хвост в 30 минут отброшен
	require.Len(t, day.Slots, 10)
	assert.Equal(t, types.TimeString("16:30"), day.Slots[9].End)
}

func TestBuildDayBreakCells(t *testing.T) {
	rule := workingRule(60)
	breakStart := types.TimeString("12:30")
	breakEnd := types.TimeString("13:30")
	rule.BreakStart = &breakStart
	rule.BreakEnd = &breakEnd

	day, err := buildDay(rule, gridDay, gridNow, false, nil, time.UTC)
	require.NoError(t, err)
	require.Len(t, day.Slots, 8)

	// Перерыв 12:30-13:30 задевает ячейки 12:00-13:00 и 13:00-14:00
	for i, cell := range day.Slots {
		wantBreak := i == 3 || i == 4
		assert.Equal(t, wantBreak, cell.IsBreak, "cell %s-%s", cell.Start, cell.End)
	}
}

func TestBuildDayAvailableAndBookedCells(t *testing.T) {
	slots := []*domain.Slot{
		bookableSlot(gridDay, 9, 0, 60, 1, 0),  // свободен
		bookableSlot(gridDay, 10, 0, 60, 2, 1), // занят частично, место ещё есть
		bookableSlot(gridDay, 11, 0, 60, 1, 1), // заполнен
	}

	day, err := buildDay(workingRule(60), gridDay, gridNow, false, slots, time.UTC)
	require.NoError(t, err)
	require.Len(t, day.Slots, 8)

	assert.True(t, day.Slots[0].IsAvailable)
	assert.False(t, day.Slots[0].IsBooked)

	assert.True(t, day.Slots[1].IsAvailable)
	assert.True(t, day.Slots[1].IsBooked)

	assert.False(t, day.Slots[2].IsAvailable)
	assert.True(t, day.Slots[2].IsBooked)

	// Ячейки без слота недоступны
	assert.False(t, day.Slots[3].IsAvailable)

	assert.Equal(t, 2, day.AvailableSlotsCount)
	assert.True(t, day.IsAvailable)
	assert.Equal(t, 25, day.AvailabilityPercentage)
}

func TestBuildDaySlotMustCoverWholeCell(t *testing.T) {
	// Получасовой слот не покрывает часовую ячейку целиком
	slots := []*domain.Slot{bookableSlot(gridDay, 9, 0, 30, 1, 0)}

	day, err := buildDay(workingRule(60), gridDay, gridNow, false, slots, time.UTC)
	require.NoError(t, err)

	assert.False(t, day.Slots[0].IsAvailable)
}

func TestBuildDayTimeOffBlocksAvailability(t *testing.T) {
	slots := []*domain.Slot{bookableSlot(gridDay, 9, 0, 60, 1, 0)}

	day, err := buildDay(workingRule(60), gridDay, gridNow, true, slots, time.UTC)
	require.NoError(t, err)

	for _, cell := range day.Slots {
		assert.False(t, cell.IsAvailable)
	}
	assert.False(t, day.IsAvailable)
}

func TestBuildDayBreakSuppressesSlotAvailability(t *testing.T) {
	rule := workingRule(60)
	breakStart := types.TimeString("09:00")
	breakEnd := types.TimeString("10:00")
	rule.BreakStart = &breakStart
	rule.BreakEnd = &breakEnd

	slots := []*domain.Slot{bookableSlot(gridDay, 9, 0, 60, 1, 0)}

	day, err := buildDay(rule, gridDay, gridNow, false, slots, time.UTC)
	require.NoError(t, err)

	assert.True(t, day.Slots[0].IsBreak)
	assert.False(t, day.Slots[0].IsAvailable)
}

func TestBuildDayZeroStepFallsBackToDefault(t *testing.T) {
	day, err := buildDay(workingRule(0), gridDay, gridNow, false, nil, time.UTC)
	require.NoError(t, err)

	// Шаг по умолчанию 30 минут: шестнадцать ячеек на восьмичасовое окно
	assert.Len(t, day.Slots, 16)
}

func TestBuildDayPastAndTodayFlags(t *testing.T) {
	now := time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC)

	past, err := buildDay(workingRule(60), gridDay, now, false, nil, time.UTC)
	require.NoError(t, err)
	assert.True(t, past.IsPast)
	assert.False(t, past.IsToday)

	today, err := buildDay(workingRule(60), now, now, false, nil, time.UTC)
	require.NoError(t, err)
	assert.False(t, today.IsPast)
	assert.True(t, today.IsToday)
}

func TestAvailabilityPercentRounding(t *testing.T) {
	assert.Equal(t, 0, domain.AvailabilityPercent(0, 0))
	assert.Equal(t, 0, domain.AvailabilityPercent(0, 8))
	assert.Equal(t, 100, domain.AvailabilityPercent(8, 8))
	assert.Equal(t, 33, domain.AvailabilityPercent(1, 3))
	assert.Equal(t, 67, domain.AvailabilityPercent(2, 3))
	assert.Equal(t, 13, domain.AvailabilityPercent(1, 8))
}
