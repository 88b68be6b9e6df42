package jobs

import (
	"context"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	FindDueForReminder(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
	FindOverdue(ctx context.Context, startedBefore time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// SeatCoordinator интерфейс координатора мест в слотах
type SeatCoordinator interface {
	Release(ctx context.Context, slotID int64) error
}

// EventPublisher интерфейс публикатора событий приёмов
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
