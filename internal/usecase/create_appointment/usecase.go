package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	staffClient "github.com/atyusan/blue-card-sub005/internal/integrations/staffservice"
	bookingSvc "github.com/atyusan/blue-card-sub005/internal/service/booking"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	seats           SeatCoordinator
	conflicts       ConflictChecker
	staffClient     StaffServiceClient
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepository SlotRepository,
	seats SeatCoordinator,
	conflicts ConflictChecker,
	staffServiceClient StaffServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepository,
		seats:           seats,
		conflicts:       conflicts,
		staffClient:     staffServiceClient,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма
// Проверка конфликтов, захват места и запись приёма идут в одной
// сериализуемой транзакции: два пациента не могут получить последнее
// место одного слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, slot=%d", req.PatientID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменные для хранения результата
	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateAppointment: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.2. Слот должен быть открыт для записи и не в прошлом
		if !slot.IsAvailable || !slot.IsBookable {
			uc.logger.Warn("CreateAppointment: slot id=%d is not bookable", req.SlotID)
			return ErrSlotNotBookable
		}
		if !slot.StartTime.After(now) {
			uc.logger.Warn("CreateAppointment: slot id=%d starts in the past", req.SlotID)
			return ErrSlotInPast
		}

		// 3.3. Проверяем провайдера через StaffService.
		// При недоступности сервиса проверка пропускается - локальные
		// данные расписания достаточны для записи
		if err := uc.checkProvider(txCtx, slot.ProviderID); err != nil {
			return err
		}

		// 3.4. Проверяем интервал слота на конфликты.
		// Собственный слот исключается: занятость внутри него ограничивает
		// вместимость, а не пересечение
		if err := uc.conflicts.CheckAvailable(txCtx, &conflictModels.DetectRequest{
			ProviderID:    slot.ProviderID,
			Interval:      slot.Interval(),
			ResourceID:    slot.ResourceID,
			ExcludeSlotID: &slot.ID,
		}); err != nil {
			return err
		}

		// 3.5. Атомарно захватываем место
		if err := uc.seats.Reserve(txCtx, slot.ID); err != nil {
			switch {
			case errors.Is(err, bookingSvc.ErrSlotFull):
				uc.logger.Warn("CreateAppointment: slot id=%d is full", req.SlotID)
				return ErrSlotFull
			case errors.Is(err, bookingSvc.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, bookingSvc.ErrSlotUnavailable):
				return ErrSlotNotBookable
			}
			uc.logger.Error("CreateAppointment: reserve failed for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: reserve failed: %v", ErrInternal, err)
		}

		// 3.6. Сохраняем приём только после успешного захвата места
		appointment := &domain.Appointment{
			PatientID:  req.PatientID,
			ProviderID: slot.ProviderID,
			SlotID:     slot.ID,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Status:     domain.StatusScheduled,
			Reason:     req.Reason,
			Notes:      req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentCreated()
	uc.publishCreated(result, now)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		PatientID:  result.PatientID,
		ProviderID: result.ProviderID,
		SlotID:     result.SlotID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		Reason:     result.Reason,
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// checkProvider проверяет, что провайдер существует и активен.
// Недоступность StaffService не блокирует запись
func (uc *UseCase) checkProvider(ctx context.Context, providerID int64) error {
	provider, err := uc.staffClient.GetProviderWithGracefulDegradation(ctx, providerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateAppointment: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateAppointment: staff service degraded, skipping provider check for id=%d", providerID)
			return nil
		}
		uc.logger.Error("CreateAppointment: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsActive {
		uc.logger.Warn("CreateAppointment: provider id=%d is inactive", providerID)
		return ErrProviderInactive
	}

	return nil
}

// publishCreated публикует событие fire-and-forget: отказ брокера
// логируется и не откатывает созданный приём
func (uc *UseCase) publishCreated(a *domain.Appointment, now time.Time) {
	event := events.NewAppointmentEvent(events.TypeAppointmentCreated, now)
	event.AppointmentID = a.ID
	event.PatientID = a.PatientID
	event.ProviderID = a.ProviderID
	event.SlotID = a.SlotID
	event.StartTime = a.StartTime
	event.EndTime = a.EndTime
	event.Status = string(a.Status)
	event.Reason = a.Reason

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Error("CreateAppointment: failed to publish event for appointment=%d: %v", a.ID, err)
		}
	}()
}
