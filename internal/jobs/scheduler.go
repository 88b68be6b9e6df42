// Package jobs содержит фоновые задачи расписания: напоминания о
// предстоящих приёмах и перевод просроченных приёмов в no_show
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
)

const jobTimeout = 2 * time.Minute

// Scheduler запускает периодические задачи по cron-расписанию
type Scheduler struct {
	cron            *cron.Cron
	appointmentRepo AppointmentRepository
	seats           SeatCoordinator
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger

	reminderLead time.Duration
	noShowGrace  time.Duration
}

// NewScheduler создает планировщик фоновых задач.
// reminderLeadMinutes - за сколько минут до начала приёма шлётся
// напоминание; noShowGraceMinutes - сколько минут после начала приём
// ждёт пациента перед переводом в no_show
func NewScheduler(
	appointmentRepo AppointmentRepository,
	seats SeatCoordinator,
	publisher EventPublisher,
	reminderLeadMinutes int,
	noShowGraceMinutes int,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		appointmentRepo: appointmentRepo,
		seats:           seats,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		reminderLead:    time.Duration(reminderLeadMinutes) * time.Minute,
		noShowGrace:     time.Duration(noShowGraceMinutes) * time.Minute,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("*/5 * * * *", s.runReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/10 * * * *", s.runNoShowSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Jobs: scheduler started, reminder_lead=%s no_show_grace=%s", s.reminderLead, s.noShowGrace)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Jobs: scheduler stopped")
}

// runReminders публикует напоминания о приёмах, начинающихся в окне
// [now, now+lead], по которым напоминание ещё не отправлено
func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := s.timeProvider.Now()

	appointments, err := s.appointmentRepo.FindDueForReminder(ctx, now, now.Add(s.reminderLead))
	if err != nil {
		s.logger.Error("Jobs: reminder lookup failed: %v", err)
		return
	}

	if len(appointments) == 0 {
		return
	}

	s.logger.Info("Jobs: sending %d reminder(s)", len(appointments))

	for _, a := range appointments {
		event := events.NewAppointmentEvent(events.TypeAppointmentReminder, now)
		event.AppointmentID = a.ID
		event.PatientID = a.PatientID
		event.ProviderID = a.ProviderID
		event.SlotID = a.SlotID
		event.StartTime = a.StartTime
		event.EndTime = a.EndTime
		event.Status = string(a.Status)

		if err := s.publisher.Publish(ctx, event); err != nil {
			// Напоминание не помечается отправленным - следующий прогон повторит
			s.logger.Error("Jobs: failed to publish reminder for appointment=%d: %v", a.ID, err)
			continue
		}

		if err := s.appointmentRepo.MarkReminderSent(ctx, a.ID); err != nil {
			s.logger.Error("Jobs: failed to mark reminder sent for appointment=%d: %v", a.ID, err)
		}
	}
}

// runNoShowSweep переводит приёмы, не начавшиеся спустя grace-период,
// в no_show и освобождает места
func (s *Scheduler) runNoShowSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := s.timeProvider.Now()

	appointments, err := s.appointmentRepo.FindOverdue(ctx, now.Add(-s.noShowGrace))
	if err != nil {
		s.logger.Error("Jobs: no-show lookup failed: %v", err)
		return
	}

	if len(appointments) == 0 {
		return
	}

	s.logger.Info("Jobs: marking %d appointment(s) as no_show", len(appointments))

	for _, a := range appointments {
		if err := s.appointmentRepo.UpdateStatus(ctx, a.ID, domain.StatusNoShow); err != nil {
			s.logger.Error("Jobs: failed to mark no_show for appointment=%d: %v", a.ID, err)
			continue
		}

		if err := s.seats.Release(ctx, a.SlotID); err != nil {
			s.logger.Error("Jobs: failed to release seat for slot=%d: %v", a.SlotID, err)
		}

		event := events.NewAppointmentEvent(events.TypeAppointmentStatusChanged, now)
		event.AppointmentID = a.ID
		event.PatientID = a.PatientID
		event.ProviderID = a.ProviderID
		event.SlotID = a.SlotID
		event.StartTime = a.StartTime
		event.EndTime = a.EndTime
		event.Status = string(domain.StatusNoShow)

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Jobs: failed to publish no_show event for appointment=%d: %v", a.ID, err)
		}
	}
}
