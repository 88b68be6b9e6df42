package domain

// ConflictType тип обнаруженного конфликта расписания
type ConflictType string

const (
	// ConflictTypeTime пересечение с другим слотом или активным приёмом
	ConflictTypeTime ConflictType = "TIME_CONFLICT"

	// ConflictTypeProviderUnavailable интервал попадает на согласованное отсутствие провайдера
	ConflictTypeProviderUnavailable ConflictType = "PROVIDER_UNAVAILABLE"
)

// Conflict описывает один обнаруженный конфликт вместе с записями,
// которые его вызвали (для отображения вызывающей стороне)
type Conflict struct {
	Type    ConflictType
	Message string

	Slots        []*Slot
	Appointments []*Appointment
	TimeOff      []*TimeOffRequest
}
