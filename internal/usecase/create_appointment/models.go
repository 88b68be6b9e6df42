package create_appointment

import "time"

// Request модель запроса на создание приёма
type Request struct {
	PatientID int64   // ID пациента
	SlotID    int64   // ID слота, на который идёт запись
	Reason    *string // Причина обращения (опционально)
	Notes     *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID         int64     // ID созданного приёма
	PatientID  int64     // ID пациента
	ProviderID int64     // ID провайдера
	SlotID     int64     // ID слота
	StartTime  time.Time // Время начала
	EndTime    time.Time // Время окончания
	Status     string    // Статус приёма

	Reason *string // Причина обращения
	Notes  *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
