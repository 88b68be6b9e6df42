package booking

import "context"

// SlotSeatRepository интерфейс атомарных операций над местами слота
type SlotSeatRepository interface {
	ReserveSeat(ctx context.Context, id int64) error
	ReleaseSeat(ctx context.Context, id int64) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncReservation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
