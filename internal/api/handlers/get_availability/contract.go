package get_availability

import (
	"context"

	getAvailability "github.com/atyusan/blue-card-sub005/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	ExecuteForDate(ctx context.Context, req *getAvailability.Request) (*getAvailability.DayResponse, error)
	ExecuteForRange(ctx context.Context, req *getAvailability.RangeRequest) (*getAvailability.RangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
