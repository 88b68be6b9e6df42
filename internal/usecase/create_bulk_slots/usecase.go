package create_bulk_slots

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

// Размер пачки на транзакцию
const batchSize = 100

// UseCase use case массовой генерации слотов по критериям
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

// Execute нарезает дневное окно каждой подходящей даты на слоты и
// записывает их пачками. Слот с конфликтом пропускается и попадает
// в отчёт - частичный успех нормален для массовой генерации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBulkSlots: provider=%d range=[%s, %s] window=[%s, %s)",
		req.ProviderID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.WindowStart, req.WindowEnd)

	// 1. Валидация и нарезка окна
	base, window, err := toPlannerInputs(req)
	if err != nil {
		uc.logger.Warn("CreateBulkSlots: validation failed: %v", err)
		return nil, err
	}

	chunks, err := planner.ExpandBulk(base, window)
	if err != nil {
		uc.logger.Warn("CreateBulkSlots: expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Потребляем ленивую последовательность пачками
	resp := &Response{
		CreatedIDs: make([]int64, 0, batchSize),
		Skipped:    make([]SkippedOccurrence, 0),
	}

	total := 0
	batch := make([]*domain.Slot, 0, batchSize)
	for slot := range chunks {
		total++
		batch = append(batch, slot)
		if len(batch) < batchSize {
			continue
		}

		if err := ctx.Err(); err != nil {
			uc.logger.Warn("CreateBulkSlots: cancelled after %d created: %v", resp.CreatedCount, err)
			return nil, fmt.Errorf("%w: cancelled: %v", ErrInternal, err)
		}

		if err := uc.persistBatch(ctx, batch, resp); err != nil {
			return nil, err
		}
		batch = batch[:0]
	}

	if total == 0 {
		uc.logger.Warn("CreateBulkSlots: criteria produced no slots for provider=%d", req.ProviderID)
		return nil, ErrNothingToCreate
	}

	if len(batch) > 0 {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("CreateBulkSlots: cancelled after %d created: %v", resp.CreatedCount, err)
			return nil, fmt.Errorf("%w: cancelled: %v", ErrInternal, err)
		}
		if err := uc.persistBatch(ctx, batch, resp); err != nil {
			return nil, err
		}
	}

	uc.metrics.AddSlotsGenerated("bulk", resp.CreatedCount)
	uc.logger.Info("CreateBulkSlots: created %d slot(s), skipped %d for provider=%d",
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
		uc.logger.Error("CreateBulkSlots: batch failed: %v", err)
	}
	return err
}

// toPlannerInputs конвертирует запрос в шаблон слота и окно генерации
func toPlannerInputs(req *Request) (planner.BaseSlot, planner.BulkWindow, error) {
	slotType, err := slotModels.ToDomainSlotType(req.SlotType)
	if err != nil {
		return planner.BaseSlot{}, planner.BulkWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.BufferTimeMinutes < 0 {
		return planner.BaseSlot{}, planner.BulkWindow{}, fmt.Errorf("%w: bufferTimeMinutes must be non-negative", ErrInvalidInput)
	}

	base := planner.BaseSlot{
		ProviderID:          req.ProviderID,
		ResourceID:          req.ResourceID,
		StartTime:           req.WindowStart,
		DurationMinutes:     req.DurationMinutes,
		SlotType:            slotType,
		MaxBookings:         req.MaxBookings,
		BufferBeforeMinutes: req.BufferTimeMinutes,
		BufferAfterMinutes:  req.BufferTimeMinutes,
		Specialty:           req.Specialty,
		Notes:               req.Notes,
	}

	window := planner.BulkWindow{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DaysOfWeek:     req.DaysOfWeek,
		WindowStart:    req.WindowStart,
		WindowEnd:      req.WindowEnd,
		EnforceBuffers: req.EnforceBuffers,
	}

	return base, window, nil
}
