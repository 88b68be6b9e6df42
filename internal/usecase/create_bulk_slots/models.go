package create_bulk_slots

import (
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/pkg/types"
)

// Request модель запроса на массовую генерацию слотов
type Request struct {
	ProviderID        int64            // ID провайдера
	ResourceID        *int64           // ID кабинета/оборудования (опционально)
	StartDate         time.Time        // Начало диапазона дат
	EndDate           time.Time        // Конец диапазона дат (включительно)
	DaysOfWeek        []time.Weekday   // Дни недели (пусто = все)
	WindowStart       types.TimeString // Начало дневного окна (например, "08:00")
	WindowEnd         types.TimeString // Конец дневного окна, не входит в нарезку
	DurationMinutes   int              // Ширина слота в минутах
	BufferTimeMinutes int              // Буфер, записывается в метаданные слота
	SlotType          string           // Тип слота
	MaxBookings       int              // Мест в слоте
	Specialty         *string          // Специальность (опционально)
	Notes             *string          // Заметки (опционально)

	// EnforceBuffers превращает буфер в реальный зазор между слотами
	EnforceBuffers bool
}

// SkippedOccurrence пропущенный слот с причиной
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
	Skipped      []SkippedOccurrence // Пропущенные из-за конфликтов слоты
}
