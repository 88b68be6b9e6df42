package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

// Service сервис обнаружения конфликтов расписания.
// Интервалы полуоткрытые: слот, заканчивающийся в 10:00, не конфликтует
// со слотом, начинающимся в 10:00
type Service struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	timeOffRepo     TimeOffRepository
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса конфликтов
func NewService(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	timeOffRepo TimeOffRepository,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		timeOffRepo:     timeOffRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Detect проверяет интервал провайдера на конфликты: пересекающиеся слоты,
// активные приёмы и одобренные отсутствия. Порядок проверки фиксированный,
// результат содержит все найденные конфликты, а не только первый
func (s *Service) Detect(ctx context.Context, req *models.DetectRequest) (*models.DetectResponse, error) {
	if !req.Interval.IsValid() {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInterval)
	}

	resp := &models.DetectResponse{Conflicts: make([]domain.Conflict, 0)}

	// Пересекающиеся слоты провайдера
	slots, err := s.slotRepo.FindOverlapping(ctx, req.ProviderID, req.ResourceID, req.Interval, req.ExcludeSlotID)
	if err != nil {
		s.logger.Error("Detect: slot overlap lookup failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Detect - slot overlap lookup: %v", ErrInternal, err)
	}
	if len(slots) > 0 {
		resp.Conflicts = append(resp.Conflicts, domain.Conflict{
			Type:    domain.ConflictTypeTime,
			Message: fmt.Sprintf("interval overlaps %d existing slot(s)", len(slots)),
			Slots:   slots,
		})
	}

	// Активные приёмы провайдера. Приёмы целевого слота не считаются:
	// занятость внутри слота ограничивает вместимость, а не пересечение
	appointments, err := s.appointmentRepo.FindOverlappingForProvider(ctx, req.ProviderID, req.Interval, req.ExcludeSlotID, req.ExcludeAppointmentID)
	if err != nil {
		s.logger.Error("Detect: appointment overlap lookup failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Detect - appointment overlap lookup: %v", ErrInternal, err)
	}
	if len(appointments) > 0 {
		resp.Conflicts = append(resp.Conflicts, domain.Conflict{
			Type:         domain.ConflictTypeTime,
			Message:      fmt.Sprintf("interval overlaps %d active appointment(s)", len(appointments)),
			Appointments: appointments,
		})
	}

	// Одобренные отсутствия, задевающие календарные даты интервала.
	// Колонки заявок - DATE, поэтому границы интервала приводятся к
	// календарным датам: иначе внутридневной интервал не находит
	// однодневное отсутствие
	timeOff, err := s.timeOffRepo.FindApproved(ctx, req.ProviderID, truncateToDate(req.Interval.Start), truncateToDate(req.Interval.End))
	if err != nil {
		s.logger.Error("Detect: time-off lookup failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Detect - time-off lookup: %v", ErrInternal, err)
	}
	if len(timeOff) > 0 {
		resp.Conflicts = append(resp.Conflicts, domain.Conflict{
			Type:    domain.ConflictTypeProviderUnavailable,
			Message: fmt.Sprintf("provider has %d approved time-off request(s) in the interval", len(timeOff)),
			TimeOff: timeOff,
		})
	}

	for _, c := range resp.Conflicts {
		s.metrics.IncConflictsDetected(string(c.Type), 1)
	}

	if resp.HasConflicts() {
		s.logger.Warn("Detect: %d conflict(s) for provider=%d interval=[%s, %s)",
			len(resp.Conflicts), req.ProviderID,
			req.Interval.Start.Format(time.RFC3339), req.Interval.End.Format(time.RFC3339))
	}

	return resp, nil
}

// CheckAvailable проверяет интервал и возвращает ConflictError, если он занят
func (s *Service) CheckAvailable(ctx context.Context, req *models.DetectRequest) error {
	resp, err := s.Detect(ctx, req)
	if err != nil {
		return err
	}

	if resp.HasConflicts() {
		return &ConflictError{Conflicts: resp.Conflicts}
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
