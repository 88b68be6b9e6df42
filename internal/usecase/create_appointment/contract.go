package create_appointment

import (
	"context"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	"github.com/atyusan/blue-card-sub005/internal/integrations/staffservice"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// SeatCoordinator интерфейс координатора мест в слотах
type SeatCoordinator interface {
	Reserve(ctx context.Context, slotID int64) error
}

// ConflictChecker интерфейс сервиса обнаружения конфликтов
type ConflictChecker interface {
	CheckAvailable(ctx context.Context, req *conflictModels.DetectRequest) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetProviderWithGracefulDegradation(ctx context.Context, providerID int64) (*staffservice.Provider, error)
}

// EventPublisher интерфейс публикатора событий приёмов
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncAppointmentCreated()
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
