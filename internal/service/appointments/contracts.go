package appointments

import (
	"context"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateSchedule(ctx context.Context, id int64, start, end time.Time) error
}

// SeatCoordinator интерфейс координатора мест в слотах
type SeatCoordinator interface {
	Release(ctx context.Context, slotID int64) error
}

// ConflictChecker интерфейс сервиса обнаружения конфликтов
type ConflictChecker interface {
	CheckAvailable(ctx context.Context, req *conflictModels.DetectRequest) error
}

// EventPublisher интерфейс публикатора событий приёмов
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncAppointmentCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
