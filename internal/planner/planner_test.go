package planner

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/ptr"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validBase() BaseSlot {
	return BaseSlot{
		ProviderID:      1,
		StartTime:       types.TimeString("09:00"),
		DurationMinutes: 30,
		SlotType:        domain.SlotTypeConsultation,
		MaxBookings:     1,
	}
}

func expandRecurrence(t *testing.T, base BaseSlot, pattern domain.RecurrencePattern) []*domain.Slot {
	t.Helper()
	seq, err := ExpandRecurrence(base, pattern)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func expandBulk(t *testing.T, base BaseSlot, window BulkWindow) []*domain.Slot {
	t.Helper()
	seq, err := ExpandBulk(base, window)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestExpandRecurrenceWeekly(t *testing.T) {
	// 2026-03-02 - понедельник
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceWeekly,
		Interval:  1,
		StartDate: date(2026, time.March, 2),
		EndDate:   date(2026, time.March, 30),
	})
	require.Len(t, slots, 5)

	for i, s := range slots {
		expected := time.Date(2026, time.March, 2+7*i, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, s.StartTime)
		assert.Equal(t, expected.Add(30*time.Minute), s.EndTime)
		assert.Equal(t, time.Monday, s.StartTime.Weekday())
	}
}

func TestExpandRecurrenceDailyWithInterval(t *testing.T) {
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceDaily,
		Interval:  2,
		StartDate: date(2026, time.March, 2),
		EndDate:   date(2026, time.March, 8),
	})
	require.Len(t, slots, 4)

	assert.Equal(t, 2, slots[0].StartTime.Day())
	assert.Equal(t, 4, slots[1].StartTime.Day())
	assert.Equal(t, 6, slots[2].StartTime.Day())
	assert.Equal(t, 8, slots[3].StartTime.Day())
}

func TestExpandRecurrenceDaysOfWeekFilter(t *testing.T) {
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:       domain.RecurrenceDaily,
		Interval:   1,
		DaysOfWeek: []time.Weekday{time.Tuesday, time.Thursday},
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 8),
	})
	require.Len(t, slots, 2)

	assert.Equal(t, time.Tuesday, slots[0].StartTime.Weekday())
	assert.Equal(t, time.Thursday, slots[1].StartTime.Weekday())
}

func TestExpandRecurrenceMonthly(t *testing.T) {
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceMonthly,
		Interval:  1,
		StartDate: date(2026, time.January, 15),
		EndDate:   date(2026, time.April, 15),
	})
	require.Len(t, slots, 4)

	for i, s := range slots {
		assert.Equal(t, time.Month(int(time.January)+i), s.StartTime.Month())
		assert.Equal(t, 15, s.StartTime.Day())
	}
}

func TestExpandRecurrenceMaxOccurrences(t *testing.T) {
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:           domain.RecurrenceDaily,
		Interval:       1,
		StartDate:      date(2026, time.March, 2),
		EndDate:        date(2026, time.March, 31),
		MaxOccurrences: ptr.Ptr(5),
	})
	assert.Len(t, slots, 5)
}

func TestExpandRecurrenceDefaultHorizon(t *testing.T) {
	// Без даты конца раскрытие ограничено годом от даты начала
	start := date(2026, time.March, 2)
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceWeekly,
		Interval:  1,
		StartDate: start,
	})
	require.Len(t, slots, 53)

	horizon := start.AddDate(0, 0, domain.DefaultRecurrenceHorizonDays)
	last := slots[len(slots)-1]
	assert.False(t, last.StartTime.After(horizon))
}

func TestExpandRecurrenceIntervalCoercedToOne(t *testing.T) {
	slots := expandRecurrence(t, validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceDaily,
		Interval:  0,
		StartDate: date(2026, time.March, 2),
		EndDate:   date(2026, time.March, 4),
	})
	assert.Len(t, slots, 3)
}

func TestExpandRecurrenceSlotAttributes(t *testing.T) {
	base := validBase()
	base.MaxBookings = 3
	base.BufferBeforeMinutes = 5
	base.BufferAfterMinutes = 10
	base.Specialty = ptr.Ptr("cardiology")

	slots := expandRecurrence(t, base, domain.RecurrencePattern{
		Type:      domain.RecurrenceDaily,
		StartDate: date(2026, time.March, 2),
		EndDate:   date(2026, time.March, 2),
	})
	require.Len(t, slots, 1)

	s := slots[0]
	assert.Equal(t, int64(1), s.ProviderID)
	assert.Equal(t, 30, s.DurationMinutes)
	assert.Equal(t, domain.SlotTypeConsultation, s.SlotType)
	assert.Equal(t, 3, s.MaxBookings)
	assert.Equal(t, 0, s.CurrentBookings)
	assert.True(t, s.IsAvailable)
	assert.True(t, s.IsBookable)
	assert.Equal(t, 5, s.BufferBeforeMinutes)
	assert.Equal(t, 10, s.BufferAfterMinutes)
	assert.Equal(t, "cardiology", *s.Specialty)
}

func TestExpandRecurrenceSequenceIsRestartable(t *testing.T) {
	seq, err := ExpandRecurrence(validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceDaily,
		Interval:  1,
		StartDate: date(2026, time.March, 2),
		EndDate:   date(2026, time.March, 6),
	})
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
	}
}

func TestExpandRecurrenceStopsOnEarlyBreak(t *testing.T) {
	// Обход можно оборвать, не раскрывая остаток горизонта
	seq, err := ExpandRecurrence(validBase(), domain.RecurrencePattern{
		Type:      domain.RecurrenceDaily,
		Interval:  1,
		StartDate: date(2026, time.March, 2),
	})
	require.NoError(t, err)

	taken := 0
	for range seq {
		taken++
		if taken == 3 {
			break
		}
	}
	assert.Equal(t, 3, taken)
}

func TestExpandRecurrenceValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(base *BaseSlot, pattern *domain.RecurrencePattern)
		wantErr error
	}{
		{
			name:    "duration below minimum",
			mutate:  func(b *BaseSlot, _ *domain.RecurrencePattern) { b.DurationMinutes = 4 },
			wantErr: ErrInvalidBase,
		},
		{
			name:    "duration above maximum",
			mutate:  func(b *BaseSlot, _ *domain.RecurrencePattern) { b.DurationMinutes = 481 },
			wantErr: ErrInvalidBase,
		},
		{
			name:    "maxBookings below minimum",
			mutate:  func(b *BaseSlot, _ *domain.RecurrencePattern) { b.MaxBookings = 0 },
			wantErr: ErrInvalidBase,
		},
		{
			name:    "negative buffer",
			mutate:  func(b *BaseSlot, _ *domain.RecurrencePattern) { b.BufferBeforeMinutes = -1 },
			wantErr: ErrInvalidBase,
		},
		{
			name:    "invalid start time",
			mutate:  func(b *BaseSlot, _ *domain.RecurrencePattern) { b.StartTime = "nope" },
			wantErr: ErrInvalidBase,
		},
		{
			name:    "missing start date",
			mutate:  func(_ *BaseSlot, p *domain.RecurrencePattern) { p.StartDate = time.Time{} },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "end date before start date",
			mutate:  func(_ *BaseSlot, p *domain.RecurrencePattern) { p.EndDate = date(2026, time.March, 1) },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "zero maxOccurrences",
			mutate:  func(_ *BaseSlot, p *domain.RecurrencePattern) { p.MaxOccurrences = ptr.Ptr(0) },
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := validBase()
			pattern := domain.RecurrencePattern{
				Type:      domain.RecurrenceDaily,
				Interval:  1,
				StartDate: date(2026, time.March, 2),
				EndDate:   date(2026, time.March, 8),
			}
			tt.mutate(&base, &pattern)

			_, err := ExpandRecurrence(base, pattern)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandBulkTwoWeeks(t *testing.T) {
	slots := expandBulk(t, validBase(), BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 15),
		DaysOfWeek:  []time.Weekday{time.Tuesday, time.Thursday},
		WindowStart: types.TimeString("08:00"),
		WindowEnd:   types.TimeString("10:00"),
	})
	// 4 подходящих дня по 4 получасовых слота
	require.Len(t, slots, 16)

	first := slots[0]
	assert.Equal(t, time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC), first.StartTime)

	// Слоты одного дня идут встык
	for i := 1; i < 4; i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
}

func TestExpandBulkEveryDayWhenNoFilter(t *testing.T) {
	slots := expandBulk(t, validBase(), BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 4),
		WindowStart: types.TimeString("09:00"),
		WindowEnd:   types.TimeString("10:00"),
	})
	assert.Len(t, slots, 6)
}

func TestExpandBulkDiscardsTrailingPartial(t *testing.T) {
	slots := expandBulk(t, validBase(), BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 2),
		WindowStart: types.TimeString("09:00"),
		WindowEnd:   types.TimeString("10:15"),
	})
	// 09:00 и 09:30 помещаются, хвост 10:00-10:30 вылезает за окно
	require.Len(t, slots, 2)
	assert.Equal(t, 9, slots[1].StartTime.Hour())
	assert.Equal(t, 30, slots[1].StartTime.Minute())
}

func TestExpandBulkEnforceBuffers(t *testing.T) {
	base := validBase()
	base.BufferBeforeMinutes = 5
	base.BufferAfterMinutes = 5

	slots := expandBulk(t, base, BulkWindow{
		StartDate:      date(2026, time.March, 2),
		EndDate:        date(2026, time.March, 2),
		WindowStart:    types.TimeString("09:00"),
		WindowEnd:      types.TimeString("11:00"),
		EnforceBuffers: true,
	})
	// Шаг 40 минут: 09:00, 09:40, 10:20
	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 40, 0, 0, time.UTC), slots[1].StartTime)
	assert.Equal(t, time.Date(2026, time.March, 2, 10, 20, 0, 0, time.UTC), slots[2].StartTime)
}

func TestExpandBulkMidnightWindowEnd(t *testing.T) {
	slots := expandBulk(t, validBase(), BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 2),
		WindowStart: types.TimeString("23:00"),
		WindowEnd:   types.TimeString("24:00"),
	})
	require.Len(t, slots, 2)
	assert.Equal(t, 23, slots[1].StartTime.Hour())
	assert.Equal(t, 30, slots[1].StartTime.Minute())
}

func TestExpandBulkSequenceIsRestartable(t *testing.T) {
	seq, err := ExpandBulk(validBase(), BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 4),
		WindowStart: types.TimeString("09:00"),
		WindowEnd:   types.TimeString("11:00"),
	})
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
	}
}

func TestExpandBulkValidation(t *testing.T) {
	valid := BulkWindow{
		StartDate:   date(2026, time.March, 2),
		EndDate:     date(2026, time.March, 8),
		WindowStart: types.TimeString("09:00"),
		WindowEnd:   types.TimeString("17:00"),
	}

	tests := []struct {
		name    string
		mutate  func(w *BulkWindow)
		wantErr error
	}{
		{
			name:    "window end not after start",
			mutate:  func(w *BulkWindow) { w.WindowEnd = types.TimeString("09:00") },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "invalid window end",
			mutate:  func(w *BulkWindow) { w.WindowEnd = types.TimeString("25:00") },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "missing start date",
			mutate:  func(w *BulkWindow) { w.StartDate = time.Time{} },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "end date before start date",
			mutate:  func(w *BulkWindow) { w.EndDate = date(2026, time.March, 1) },
			wantErr: ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := valid
			tt.mutate(&window)

			_, err := ExpandBulk(validBase(), window)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
