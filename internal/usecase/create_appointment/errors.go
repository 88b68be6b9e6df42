package create_appointment

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не зарегистрирован
	ErrProviderNotFound = errors.New("create_appointment: provider not found")

	// ErrProviderInactive возвращается, когда провайдер деактивирован
	ErrProviderInactive = errors.New("create_appointment: provider is not active")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_appointment: slot not found")

	// ErrSlotNotBookable возвращается, когда слот закрыт для записи
	ErrSlotNotBookable = errors.New("create_appointment: slot is not bookable")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("create_appointment: slot is fully booked")

	// ErrSlotInPast возвращается при попытке записи на прошедший слот
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
