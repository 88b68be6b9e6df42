package schedulerules

import (
	"context"
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/service/schedulerules/models"
)

// Service сервис управления правилами расписания провайдеров
type Service struct {
	ruleRepo RuleRepository
	cache    CacheInvalidator
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил расписания
func NewService(ruleRepo RuleRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		cache:    cache,
		logger:   logger,
	}
}

// GetByProvider получает все правила расписания провайдера
func (s *Service) GetByProvider(ctx context.Context, providerID int64) (*models.RuleListResponse, error) {
	rules, err := s.ruleRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProvider - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// Upsert создает или обновляет правило расписания и сбрасывает кэш
// провайдера, чтобы следующий запрос доступности увидел новое правило
func (s *Service) Upsert(ctx context.Context, providerID int64, day int, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Upsert: upserting rule for provider=%d day=%d", providerID, day)

	if day < 0 || day > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	rule := req.ToDomain(providerID, time.Weekday(day))
	if err := validateRule(rule); err != nil {
		s.logger.Warn("Upsert: validation failed for provider=%d day=%d: %v", providerID, day, err)
		return nil, err
	}

	saved, err := s.ruleRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error for provider=%d day=%d: %v", providerID, day, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateProvider(providerID)

	s.logger.Info("Upsert: rule id=%d saved for provider=%d day=%d", saved.ID, providerID, day)
	return models.FromDomainRule(saved), nil
}

// validateRule проверяет бизнес-инварианты правила расписания
func validateRule(rule *domain.ProviderScheduleRule) error {
	if err := rule.WorkStart.Validate(); err != nil {
		return fmt.Errorf("%w: workStart: %v", ErrInvalidInput, err)
	}
	if err := rule.WorkEnd.Validate(); err != nil {
		return fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}
	if !rule.WorkStart.IsBefore(rule.WorkEnd) {
		return fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}

	if (rule.BreakStart == nil) != (rule.BreakEnd == nil) {
		return fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidInput)
	}
	if rule.HasBreak() {
		if err := rule.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: breakStart: %v", ErrInvalidInput, err)
		}
		if err := rule.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: breakEnd: %v", ErrInvalidInput, err)
		}
		if !rule.BreakStart.IsBefore(*rule.BreakEnd) {
			return fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
		}
		if rule.BreakStart.IsBefore(rule.WorkStart) || rule.WorkEnd.IsBefore(*rule.BreakEnd) {
			return fmt.Errorf("%w: break window must fit inside the work window", ErrInvalidInput)
		}
	}

	if rule.SlotDurationMinutes < domain.MinSlotDurationMinutes || rule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if rule.BufferTimeMinutes < 0 {
		return fmt.Errorf("%w: bufferTimeMinutes must be non-negative", ErrInvalidInput)
	}
	if rule.MaxAppointmentsPerHour < 1 {
		return fmt.Errorf("%w: maxAppointmentsPerHour must be at least 1", ErrInvalidInput)
	}

	return nil
}
