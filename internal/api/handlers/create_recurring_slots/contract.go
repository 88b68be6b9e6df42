package create_recurring_slots

import (
	"context"

	createRecurringSlots "github.com/atyusan/blue-card-sub005/internal/usecase/create_recurring_slots"
)

type CreateRecurringSlotsUseCase interface {
	Execute(ctx context.Context, req *createRecurringSlots.Request) (*createRecurringSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
