package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
)

// Service сервис жизненного цикла слотов
type Service struct {
	slotRepo  SlotRepository
	conflicts ConflictChecker
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	conflicts ConflictChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		conflicts: conflicts,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create создает слот после проверки конфликтов.
// Проверка и вставка идут в одной serializable транзакции, чтобы два
// одновременных запроса на одно окно не прошли оба
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for provider=%d start=%s", req.ProviderID, req.StartTime.Format("2006-01-02 15:04"))

	slot := req.ToDomain()
	if err := validateSlot(slot); err != nil {
		s.logger.Warn("Create: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	var created *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.conflicts.CheckAvailable(txCtx, &conflictModels.DetectRequest{
			ProviderID: slot.ProviderID,
			Interval:   slot.Interval(),
			ResourceID: slot.ResourceID,
		}); err != nil {
			return err
		}

		var err error
		created, err = s.slotRepo.Create(txCtx, slot)
		return err
	})

	if err != nil {
		var conflictErr *conflicts.ConflictError
		if errors.As(err, &conflictErr) {
			s.logger.Warn("Create: conflicts for provider=%d: %d", req.ProviderID, len(conflictErr.Conflicts))
			return nil, err
		}
		s.logger.Error("Create: failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Create - transaction failed: %v", ErrInternal, err)
	}

	s.metrics.AddSlotsGenerated("single", 1)
	s.logger.Info("Create: slot id=%d created for provider=%d", created.ID, created.ProviderID)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// Update обновляет слот. Слот с активными бронированиями структурно
// неизменяем: двигать окно или менять вместимость нельзя, пока пациенты
// не отменены или не перенесены. Доступность (is_bookable) менять можно
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d", id)

	var updated *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		structural := req.ChangesTimeWindow() || req.MaxBookings != nil
		if structural && slot.HasActiveBookings() {
			return ErrSlotHasBookings
		}

		applyUpdate(slot, req)
		if err := validateSlot(slot); err != nil {
			return err
		}

		// Перепроверяем окно только если оно сдвинулось
		if req.ChangesTimeWindow() {
			if err := s.conflicts.CheckAvailable(txCtx, &conflictModels.DetectRequest{
				ProviderID:    slot.ProviderID,
				Interval:      slot.Interval(),
				ResourceID:    slot.ResourceID,
				ExcludeSlotID: &slot.ID,
			}); err != nil {
				return err
			}
		}

		if err := s.slotRepo.Update(txCtx, slot); err != nil {
			return err
		}

		updated = slot
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Update: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		case errors.Is(err, ErrSlotHasBookings):
			s.logger.Warn("Update: slot id=%d has active bookings", id)
			return nil, ErrSlotHasBookings
		case errors.Is(err, ErrInvalidInput):
			return nil, err
		case errors.Is(err, conflicts.ErrConflict):
			return nil, err
		}
		s.logger.Error("Update: failed for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Update: slot id=%d updated", id)
	return models.FromDomainSlot(updated), nil
}

// Delete удаляет слот. Репозиторий удаляет атомарно с условием
// current_bookings = 0, так что гонка с параллельной записью невозможна
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%d not found", id)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotHasBookings):
			s.logger.Warn("Delete: slot id=%d has active bookings", id)
			return ErrSlotHasBookings
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot id=%d deleted", id)
	return nil
}

// Search ищет слоты по фильтру
func (s *Service) Search(ctx context.Context, req *models.SearchSlotsRequest) (*models.SlotListResponse, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}

	slots, err := s.slotRepo.FindWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// applyUpdate накладывает переданные поля запроса на слот
func applyUpdate(slot *domain.Slot, req *models.UpdateSlotRequest) {
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	slot.DurationMinutes = int(slot.EndTime.Sub(slot.StartTime).Minutes())

	if req.SlotType != nil {
		slot.SlotType = *req.SlotType
	}
	if req.MaxBookings != nil {
		slot.MaxBookings = *req.MaxBookings
	}
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	if req.IsBookable != nil {
		slot.IsBookable = *req.IsBookable
	}
	if req.Specialty != nil {
		slot.Specialty = req.Specialty
	}
	if req.Notes != nil {
		slot.Notes = req.Notes
	}
}

// validateSlot проверяет бизнес-инварианты слота
func validateSlot(slot *domain.Slot) error {
	if !slot.Interval().IsValid() {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	duration := slot.DurationMinutes
	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if slot.MaxBookings < domain.MinBookingsPerSlot || slot.MaxBookings > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookings must be between %d and %d",
			ErrInvalidInput, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
	}

	if slot.BufferBeforeMinutes < 0 || slot.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers must be non-negative", ErrInvalidInput)
	}

	if _, err := models.ToDomainSlotType(string(slot.SlotType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if slot.Notes != nil && len(*slot.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
