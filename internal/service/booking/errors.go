package booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotFull возвращается, когда в слоте не осталось мест.
	// Окончательная ошибка - повтор бессмысленен без отмены чужого приёма
	ErrSlotFull = errors.New("slot is fully booked")

	// ErrSlotUnavailable возвращается, когда слот закрыт для записи
	ErrSlotUnavailable = errors.New("slot is not available for booking")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("booking service: internal error")
)
