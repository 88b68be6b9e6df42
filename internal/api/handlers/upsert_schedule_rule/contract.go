package upsert_schedule_rule

import (
	"context"

	"github.com/atyusan/blue-card-sub005/internal/service/schedulerules/models"
)

type ScheduleRuleService interface {
	Upsert(ctx context.Context, providerID int64, day int, req *models.UpsertRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
