package conflicts

import (
	"errors"
	"fmt"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

var (
	// ErrConflict возвращается, когда запрошенный интервал пересекается
	// с существующими слотами, приёмами или отсутствием провайдера
	ErrConflict = errors.New("scheduling conflict detected")

	// ErrInvalidInterval возвращается при некорректном интервале проверки
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts service: internal error")
)

// ConflictError несёт детали обнаруженных конфликтов.
// Разворачивается в ErrConflict для проверки через errors.Is
type ConflictError struct {
	Conflicts []domain.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflict(s)", ErrConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
