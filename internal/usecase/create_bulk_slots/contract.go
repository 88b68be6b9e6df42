package create_bulk_slots

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

// ConflictChecker интерфейс сервиса обнаружения конфликтов
type ConflictChecker interface {
	CheckAvailable(ctx context.Context, req *conflictModels.DetectRequest) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	AddSlotsGenerated(mode string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
