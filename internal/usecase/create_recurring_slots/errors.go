package create_recurring_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_slots: invalid input data")

	// ErrNothingToCreate возвращается, когда паттерн не дал ни одного слота
	ErrNothingToCreate = errors.New("create_recurring_slots: pattern produced no slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_slots: internal error")
)
