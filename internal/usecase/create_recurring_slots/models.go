package create_recurring_slots

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// Request модель запроса на генерацию повторяющихся слотов
type Request struct {
	ProviderID          int64            // ID провайдера
	ResourceID          *int64           // ID кабинета/оборудования (опционально)
	StartTime           types.TimeString // Время начала слота (например, "09:00")
	DurationMinutes     int              // Длительность слота в минутах
	SlotType            string           // Тип слота
	MaxBookings         int              // Мест в слоте
	BufferBeforeMinutes int              // Буфер до слота
	BufferAfterMinutes  int              // Буфер после слота
	Specialty           *string          // Специальность (опционально)
	Notes               *string          // Заметки (опционально)

	PatternType    string         // daily | weekly | monthly | custom
	Interval       int            // Шаг паттерна, >= 1
	DaysOfWeek     []time.Weekday // Фильтр дней недели (пусто = все)
	StartDate      time.Time      // Дата начала
	EndDate        time.Time      // Дата конца (ноль = горизонт по умолчанию)
	MaxOccurrences *int           // Ограничение числа повторений (опционально)
}

// SkippedOccurrence пропущенное вхождение с причиной
type SkippedOccurrence struct {
	StartTime time.Time         `json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Conflicts []domain.Conflict `json:"-"`
	Reason    string            `json:"reason"`
}

// Response модель ответа генерации
type Response struct {
	CreatedCount int                 // Сколько слотов записано
	CreatedIDs   []int64             // ID созданных слотов
	Skipped      []SkippedOccurrence // Пропущенные из-за конфликтов вхождения
}
