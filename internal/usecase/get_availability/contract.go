package get_availability

import (
	"context"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderScheduleRule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindByProviderAndDateRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Slot, error)
}

// TimeOffRepository интерфейс репозитория отсутствий
type TimeOffRepository interface {
	FindApproved(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.TimeOffRequest, error)
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
