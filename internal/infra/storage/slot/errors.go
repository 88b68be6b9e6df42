package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull возвращается, когда все места слота заняты
	// Это окончательный результат, повторять попытку бессмысленно
	ErrSlotFull = errors.New("slot.repository: slot is full")

	// ErrSlotUnavailable возвращается, когда слот закрыт для бронирования
	// (is_available = false или is_bookable = false)
	ErrSlotUnavailable = errors.New("slot.repository: slot is not available for booking")

	// ErrSlotHasBookings возвращается при попытке изменить или удалить слот с активными бронированиями
	ErrSlotHasBookings = errors.New("slot.repository: slot has active bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	// Класс потенциально временных ошибок - вызывающая сторона может повторить попытку
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
