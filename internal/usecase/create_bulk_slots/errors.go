package create_bulk_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_bulk_slots: invalid input data")

	// ErrNothingToCreate возвращается, когда критерии не дали ни одного слота
	ErrNothingToCreate = errors.New("create_bulk_slots: criteria produced no slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_bulk_slots: internal error")
)
