package create_recurring_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/planner"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
	slotModels "github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

// Размер пачки на транзакцию: длинная генерация не держит одну
// транзакцию открытой на сотни вставок
const batchSize = 100

// UseCase use case генерации повторяющихся слотов
type UseCase struct {
	slotRepo  SlotRepository
	conflicts ConflictChecker
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		conflicts: conflictChecker,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute раскрывает паттерн в конкретные слоты и записывает их пачками.
// Вхождение с конфликтом пропускается и попадает в отчёт, остальные
// создаются - частичный успех нормален для массовой генерации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringSlots: provider=%d pattern=%s start=%s",
		req.ProviderID, req.PatternType, req.StartDate.Format(domain.DateFormat))

	// 1. Валидация и раскрытие паттерна
	base, pattern, err := toPlannerInputs(req)
	if err != nil {
		uc.logger.Warn("CreateRecurringSlots: validation failed: %v", err)
		return nil, err
	}

	occurrences, err := planner.ExpandRecurrence(base, pattern)
	if err != nil {
		uc.logger.Warn("CreateRecurringSlots: expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Потребляем ленивую последовательность пачками, проверяя каждое
	// вхождение на конфликты
	resp := &Response{
		CreatedIDs: make([]int64, 0, batchSize),
		Skipped:    make([]SkippedOccurrence, 0),
	}

	total := 0
	batch := make([]*domain.Slot, 0, batchSize)
	for slot := range occurrences {
		total++
		batch = append(batch, slot)
		if len(batch) < batchSize {
			continue
		}

		// Отмена контекста между пачками останавливает генерацию,
		// уже записанные пачки остаются
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("CreateRecurringSlots: cancelled after %d created: %v", resp.CreatedCount, err)
			return nil, fmt.Errorf("%w: cancelled: %v", ErrInternal, err)
		}

		if err := uc.persistBatch(ctx, batch, resp); err != nil {
			return nil, err
		}
		batch = batch[:0]
	}

	if total == 0 {
		uc.logger.Warn("CreateRecurringSlots: pattern produced no slots for provider=%d", req.ProviderID)
		return nil, ErrNothingToCreate
	}

	if len(batch) > 0 {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("CreateRecurringSlots: cancelled after %d created: %v", resp.CreatedCount, err)
			return nil, fmt.Errorf("%w: cancelled: %v", ErrInternal, err)
		}
		if err := uc.persistBatch(ctx, batch, resp); err != nil {
			return nil, err
		}
	}

	uc.metrics.AddSlotsGenerated("recurring", resp.CreatedCount)
	uc.logger.Info("CreateRecurringSlots: created %d slot(s), skipped %d for provider=%d",
		resp.CreatedCount, len(resp.Skipped), req.ProviderID)

	return resp, nil
}

// persistBatch записывает одну пачку в транзакции
func (uc *UseCase) persistBatch(ctx context.Context, batch []*domain.Slot, resp *Response) error {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, slot := range batch {
			err := uc.conflicts.CheckAvailable(txCtx, &conflictModels.DetectRequest{
				ProviderID: slot.ProviderID,
				Interval:   slot.Interval(),
				ResourceID: slot.ResourceID,
			})

			var conflictErr *conflicts.ConflictError
			if errors.As(err, &conflictErr) {
				resp.Skipped = append(resp.Skipped, SkippedOccurrence{
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Conflicts: conflictErr.Conflicts,
					Reason:    conflictErr.Error(),
				})
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}

			created, err := uc.slotRepo.Create(txCtx, slot)
			if err != nil {
				return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}

			resp.CreatedCount++
			resp.CreatedIDs = append(resp.CreatedIDs, created.ID)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("CreateRecurringSlots: batch failed: %v", err)
	}
	return err
}

// toPlannerInputs конвертирует запрос в шаблон слота и паттерн
func toPlannerInputs(req *Request) (planner.BaseSlot, domain.RecurrencePattern, error) {
	slotType, err := slotModels.ToDomainSlotType(req.SlotType)
	if err != nil {
		return planner.BaseSlot{}, domain.RecurrencePattern{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	patternType, err := toPatternType(req.PatternType)
	if err != nil {
		return planner.BaseSlot{}, domain.RecurrencePattern{}, err
	}

	if err := req.StartTime.Validate(); err != nil {
		return planner.BaseSlot{}, domain.RecurrencePattern{}, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if req.StartDate.IsZero() {
		return planner.BaseSlot{}, domain.RecurrencePattern{}, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	base := planner.BaseSlot{
		ProviderID:          req.ProviderID,
		ResourceID:          req.ResourceID,
		StartTime:           req.StartTime,
		DurationMinutes:     req.DurationMinutes,
		SlotType:            slotType,
		MaxBookings:         req.MaxBookings,
		BufferBeforeMinutes: req.BufferBeforeMinutes,
		BufferAfterMinutes:  req.BufferAfterMinutes,
		Specialty:           req.Specialty,
		Notes:               req.Notes,
	}

	pattern := domain.RecurrencePattern{
		Type:           patternType,
		Interval:       req.Interval,
		DaysOfWeek:     req.DaysOfWeek,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MaxOccurrences: req.MaxOccurrences,
	}

	return base, pattern, nil
}

func toPatternType(s string) (domain.RecurrencePatternType, error) {
	switch domain.RecurrencePatternType(s) {
	case domain.RecurrenceDaily, domain.RecurrenceWeekly, domain.RecurrenceMonthly, domain.RecurrenceCustom:
		return domain.RecurrencePatternType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown pattern type %q", ErrInvalidInput, s)
	}
}
