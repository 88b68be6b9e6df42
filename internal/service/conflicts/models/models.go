package models

import "github.com/atyusan/blue-card-sub005/internal/domain"

// DetectRequest запрос на проверку интервала на конфликты
type DetectRequest struct {
	ProviderID int64
	Interval   domain.Interval

	// ResourceID сужает проверку слотов до конкретного кабинета/оборудования
	ResourceID *int64

	// ExcludeSlotID исключает слот из проверки (обновление слота,
	// а также приёмы внутри целевого слота - их ограничивает вместимость)
	ExcludeSlotID *int64

	// ExcludeAppointmentID исключает переносимый приём из проверки
	ExcludeAppointmentID *int64
}

// DetectResponse результат проверки
type DetectResponse struct {
	Conflicts []domain.Conflict
}

// HasConflicts возвращает true, если интервал занят
func (r *DetectResponse) HasConflicts() bool {
	return len(r.Conflicts) > 0
}
