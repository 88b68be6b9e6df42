package staffservice

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не зарегистрирован в StaffService
	ErrProviderNotFound = errors.New("provider not found in staff service")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что StaffService недоступен и проверку провайдера следует пропустить
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
