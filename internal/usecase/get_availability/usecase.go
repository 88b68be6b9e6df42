package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
)

// Диапазон ограничен, чтобы один запрос не строил сетку на годы вперёд
const maxRangeDays = 92

// UseCase use case вычисления доступности провайдера.
// Доступность - чистая проекция поверх правил расписания, отсутствий
// и существующих слотов; ничего не пишется
type UseCase struct {
	ruleRepo     RuleRepository
	slotRepo     SlotRepository
	timeOffRepo  TimeOffRepository
	ruleCache    *RuleCache
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	slotRepo SlotRepository,
	timeOffRepo TimeOffRepository,
	ruleCache *RuleCache,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		ruleRepo:     ruleRepo,
		slotRepo:     slotRepo,
		timeOffRepo:  timeOffRepo,
		ruleCache:    ruleCache,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// ExecuteForDate строит разбивку доступности на одну дату
func (uc *UseCase) ExecuteForDate(ctx context.Context, req *Request) (*DayResponse, error) {
	uc.logger.Info("GetAvailability: provider=%d date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	days, err := uc.buildRange(ctx, req.ProviderID, req.Date, req.Date, false)
	if err != nil {
		return nil, err
	}

	return &days[0], nil
}

// ExecuteForRange строит разбивку доступности на диапазон дат
func (uc *UseCase) ExecuteForRange(ctx context.Context, req *RangeRequest) (*RangeResponse, error) {
	uc.logger.Info("GetAvailability: provider=%d range=[%s, %s] excludePast=%t",
		req.ProviderID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.ExcludePast)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}
	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, maxRangeDays)
	}

	days, err := uc.buildRange(ctx, req.ProviderID, req.StartDate, req.EndDate, req.ExcludePast)
	if err != nil {
		return nil, err
	}

	return &RangeResponse{
		ProviderID: req.ProviderID,
		Days:       days,
	}, nil
}

// buildRange строит проекции дат [from, to] включительно.
// Правила, отсутствия и слоты загружаются один раз на весь диапазон
func (uc *UseCase) buildRange(ctx context.Context, providerID int64, from, to time.Time, excludePast bool) ([]DayResponse, error) {
	now := uc.timeProvider.Now()
	today := truncateToDate(now.In(uc.location))

	startDate := truncateToDate(from.In(uc.location))
	endDate := truncateToDate(to.In(uc.location))

	// 1. Правила расписания: кэш, затем БД
	rules, err := uc.providerRules(ctx, providerID)
	if err != nil {
		return nil, err
	}

	// 2. Одобренные отсутствия диапазона
	timeOff, err := uc.timeOffRepo.FindApproved(ctx, providerID, startDate, endDate)
	if err != nil {
		uc.logger.Error("GetAvailability: time-off lookup failed for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: time-off lookup failed: %v", ErrInternal, err)
	}

	// 3. Слоты диапазона, сгруппированные по дате начала
	slots, err := uc.slotRepo.FindByProviderAndDateRange(ctx, providerID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailability: slot lookup failed for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: slot lookup failed: %v", ErrInternal, err)
	}

	slotsByDate := make(map[string][]*domain.Slot)
	for _, slot := range slots {
		key := slot.StartTime.In(uc.location).Format(domain.DateFormat)
		slotsByDate[key] = append(slotsByDate[key], slot)
	}

	// 4. Проекция на каждую дату
	days := make([]DayResponse, 0, int(endDate.Sub(startDate).Hours()/24)+1)
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if excludePast && date.Before(today) {
			continue
		}

		rule := ruleForWeekday(rules, providerID, date.Weekday())
		dayKey := date.Format(domain.DateFormat)

		day, err := buildDay(rule, date, now, coversDate(timeOff, date), slotsByDate[dayKey], uc.location)
		if err != nil {
			uc.logger.Error("GetAvailability: grid build failed for provider=%d date=%s: %v", providerID, dayKey, err)
			return nil, fmt.Errorf("%w: grid build failed: %v", ErrInternal, err)
		}

		days = append(days, *fromDomainDay(day))
	}

	uc.logger.Info("GetAvailability: built %d day(s) for provider=%d", len(days), providerID)
	return days, nil
}

// providerRules возвращает правила провайдера, кэшируя набор целиком
func (uc *UseCase) providerRules(ctx context.Context, providerID int64) ([]*domain.ProviderScheduleRule, error) {
	if rules, ok := uc.ruleCache.Get(providerID); ok {
		return rules, nil
	}

	rules, err := uc.ruleRepo.GetByProvider(ctx, providerID)
	if err != nil {
		uc.logger.Error("GetAvailability: rule lookup failed for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: rule lookup failed: %v", ErrInternal, err)
	}

	uc.ruleCache.Store(providerID, rules)
	return rules, nil
}

// ruleForWeekday находит правило на день недели, иначе документированный
// дефолт 09:00-17:00 со слотами по 30 минут
func ruleForWeekday(rules []*domain.ProviderScheduleRule, providerID int64, day time.Weekday) *domain.ProviderScheduleRule {
	for _, rule := range rules {
		if rule.DayOfWeek == day {
			return rule
		}
	}
	return domain.DefaultScheduleRule(providerID, day)
}

// coversDate хотя бы одно отсутствие накрывает дату
func coversDate(timeOff []*domain.TimeOffRequest, date time.Time) bool {
	for _, t := range timeOff {
		if t.CoversDate(date) {
			return true
		}
	}
	return false
}
