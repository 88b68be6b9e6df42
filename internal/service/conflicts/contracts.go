package conflicts

import (
	"context"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindOverlapping(ctx context.Context, providerID int64, resourceID *int64, interval domain.Interval, excludeSlotID *int64) ([]*domain.Slot, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	FindOverlappingForProvider(ctx context.Context, providerID int64, interval domain.Interval, excludeSlotID *int64, excludeAppointmentID *int64) ([]*domain.Appointment, error)
}

// TimeOffRepository интерфейс репозитория отсутствий
type TimeOffRepository interface {
	FindApproved(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.TimeOffRequest, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncConflictsDetected(conflictType string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
