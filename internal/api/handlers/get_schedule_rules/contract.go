package get_schedule_rules

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/service/schedulerules/models"
)

type ScheduleRuleService interface {
	GetByProvider(ctx context.Context, providerID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
