package schedulerules

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderScheduleRule, error)
	Upsert(ctx context.Context, rule *domain.ProviderScheduleRule) (*domain.ProviderScheduleRule, error)
}

// CacheInvalidator интерфейс кэша правил, сбрасываемого при изменении
type CacheInvalidator interface {
	InvalidateProvider(providerID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
