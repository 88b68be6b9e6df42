package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	"github.com/atyusan/blue-card-sub005/pkg/dbmetrics"
)

const (
	maxReserveAttempts = 3
	retryBaseDelay     = 50 * time.Millisecond
)

// Service координатор мест в слотах. Захват места - одиночный условный
// UPDATE в репозитории, поэтому одновременные запросы на последнее место
// разрешаются на уровне БД: ровно один проходит
type Service struct {
	slotRepo SlotSeatRepository
	metrics  Metrics
	logger   Logger
}

// NewService создает новый экземпляр координатора мест
func NewService(slotRepo SlotSeatRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Reserve захватывает одно место в слоте.
// Повторяет только инфраструктурные сбои (ErrExecQuery): ErrSlotFull
// окончателен и не повторяется никогда
func (s *Service) Reserve(ctx context.Context, slotID int64) error {
	// Внутри транзакции повтор невозможен: после ошибки стейтмента
	// Postgres держит транзакцию в aborted до отката, так что вторая
	// попытка обречена и только тянет время
	attempts := maxReserveAttempts
	if dbmetrics.IsInTransaction(ctx) {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.slotRepo.ReserveSeat(ctx, slotID)
		if err == nil {
			s.metrics.IncReservation("success")
			s.logger.Info("Reserve: seat reserved slot=%d attempt=%d", slotID, attempt)
			return nil
		}

		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.metrics.IncReservation("not_found")
			s.logger.Warn("Reserve: slot=%d not found", slotID)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotFull):
			s.metrics.IncReservation("full")
			s.logger.Warn("Reserve: slot=%d is full", slotID)
			return ErrSlotFull
		case errors.Is(err, slotRepo.ErrSlotUnavailable):
			s.metrics.IncReservation("unavailable")
			s.logger.Warn("Reserve: slot=%d is unavailable", slotID)
			return ErrSlotUnavailable
		case errors.Is(err, slotRepo.ErrExecQuery):
			lastErr = err
			s.logger.Warn("Reserve: transient failure slot=%d attempt=%d: %v", slotID, attempt, err)
			if attempt < attempts {
				select {
				case <-ctx.Done():
					s.metrics.IncReservation("error")
					return fmt.Errorf("%w: Reserve - context cancelled: %v", ErrInternal, ctx.Err())
				case <-time.After(retryBaseDelay * time.Duration(attempt)):
				}
			}
		default:
			s.metrics.IncReservation("error")
			s.logger.Error("Reserve: repository error slot=%d: %v", slotID, err)
			return fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.IncReservation("error")
	s.logger.Error("Reserve: exhausted %d attempt(s) slot=%d: %v", attempts, slotID, lastErr)
	return fmt.Errorf("%w: Reserve - exhausted retries: %v", ErrInternal, lastErr)
}

// Release возвращает место слоту. Идемпотентна: счётчик не уходит ниже нуля,
// повторный вызов безопасен
func (s *Service) Release(ctx context.Context, slotID int64) error {
	if err := s.slotRepo.ReleaseSeat(ctx, slotID); err != nil {
		s.metrics.IncReservation("release_error")
		s.logger.Error("Release: repository error slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncReservation("released")
	s.logger.Info("Release: seat released slot=%d", slotID)
	return nil
}
