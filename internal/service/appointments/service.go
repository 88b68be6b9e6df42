package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	appointmentRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/appointment"
	"github.com/atyusan/blue-card-sub005/internal/service/appointments/models"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// Service сервис жизненного цикла приёмов: машина состояний, перенос,
// отмена и публикация событий для внешних потребителей
type Service struct {
	appointmentRepo AppointmentRepository
	seats           SeatCoordinator
	conflicts       ConflictChecker
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	appointmentRepo AppointmentRepository,
	seats SeatCoordinator,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		seats:           seats,
		conflicts:       conflictChecker,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает приём по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByPatient получает историю приёмов пациента
func (s *Service) GetByPatient(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetByPatient: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	appointments, err := s.appointmentRepo.GetByPatientID(ctx, req.PatientID, status)
	if err != nil {
		s.logger.Error("GetByPatient: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetByPatient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByPatient: fetched %d appointments for patient=%d", len(appointments), req.PatientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Reschedule переносит временное окно приёма после проверки конфликтов.
// Место на привязанном слоте сохраняется - вместимость была удержана при
// создании и не перезахватывается
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.RescheduleRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Reschedule: moving appointment id=%d to [%s, %s)",
		id, req.NewStartTime.Format(time.RFC3339), req.NewEndTime.Format(time.RFC3339))

	interval := domain.Interval{Start: req.NewStartTime, End: req.NewEndTime}
	if !interval.IsValid() {
		return nil, fmt.Errorf("%w: new start time must be before new end time", ErrInvalidInput)
	}

	var moved *domain.Appointment
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if appointment.IsTerminal() {
			return ErrTerminalStatus
		}

		// Новый интервал проверяется без собственного слота и без
		// самого приёма: они не конфликтуют сами с собой
		if err := s.conflicts.CheckAvailable(txCtx, &conflictModels.DetectRequest{
			ProviderID:           appointment.ProviderID,
			Interval:             interval,
			ExcludeSlotID:        &appointment.SlotID,
			ExcludeAppointmentID: &appointment.ID,
		}); err != nil {
			return err
		}

		if err := s.appointmentRepo.UpdateSchedule(txCtx, id, req.NewStartTime, req.NewEndTime); err != nil {
			return err
		}

		appointment.StartTime = req.NewStartTime
		appointment.EndTime = req.NewEndTime
		moved = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("Reschedule: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, ErrTerminalStatus):
			s.logger.Warn("Reschedule: appointment id=%d is terminal", id)
			return nil, ErrTerminalStatus
		case errors.Is(err, conflicts.ErrConflict):
			return nil, err
		}
		s.logger.Error("Reschedule: failed for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reschedule - transaction failed: %v", ErrInternal, err)
	}

	s.publishEvent(moved, events.TypeAppointmentRescheduled)
	s.logger.Info("Reschedule: appointment id=%d moved", id)
	return models.FromDomainAppointment(moved), nil
}

// Cancel отменяет приём и возвращает место слоту.
// Отмена терминального приёма отклоняется
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if appointment.IsTerminal() {
			return ErrTerminalStatus
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason); err != nil {
			return err
		}

		if err := s.seats.Release(txCtx, appointment.SlotID); err != nil {
			return err
		}

		appointment.Status = domain.StatusCancelled
		cancelled = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		case errors.Is(err, ErrTerminalStatus):
			s.logger.Warn("Cancel: appointment id=%d is terminal", id)
			return ErrTerminalStatus
		}
		s.logger.Error("Cancel: failed for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - transaction failed: %v", ErrInternal, err)
	}

	s.metrics.IncAppointmentCancelled()
	s.publishEvent(cancelled, events.TypeAppointmentCancelled)
	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return nil
}

// UpdateStatus переводит приём в новый статус через машину состояний.
// Переход в cancelled через этот метод также возвращает место слоту
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if appointment.IsTerminal() {
			return ErrTerminalStatus
		}

		if !appointment.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			return err
		}

		// Отмена и неявка освобождают место
		if newStatus == domain.StatusCancelled || newStatus == domain.StatusNoShow {
			if err := s.seats.Release(txCtx, appointment.SlotID); err != nil {
				return err
			}
		}

		appointment.Status = newStatus
		updated = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		case errors.Is(err, ErrTerminalStatus):
			s.logger.Warn("UpdateStatus: appointment id=%d is terminal", id)
			return ErrTerminalStatus
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: invalid transition for appointment id=%d: %v", id, err)
			return err
		}
		s.logger.Error("UpdateStatus: failed for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - transaction failed: %v", ErrInternal, err)
	}

	if newStatus == domain.StatusCancelled {
		s.metrics.IncAppointmentCancelled()
	}
	s.publishEvent(updated, events.TypeAppointmentStatusChanged)
	s.logger.Info("UpdateStatus: appointment id=%d updated to status=%s", id, newStatus)
	return nil
}

// publishEvent публикует событие fire-and-forget: отказ брокера логируется
// и никогда не откатывает успешную мутацию расписания
func (s *Service) publishEvent(a *domain.Appointment, eventType string) {
	event := events.NewAppointmentEvent(eventType, s.timeProvider.Now())
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

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("publishEvent: failed to publish %s for appointment=%d: %v", eventType, a.ID, err)
		}
	}()
}
