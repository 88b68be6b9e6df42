package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	appointmentRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/appointment"
	"github.com/atyusan/blue-card-sub005/internal/service/appointments/models"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
	"github.com/atyusan/blue-card-sub005/pkg/ptr"
)

type fakeAppointmentRepository struct {
	appointment *domain.Appointment
	getErr      error

	byPatient []*domain.Appointment
	gotStatus *domain.AppointmentStatus

	updatedStatus   *domain.AppointmentStatus
	cancelledReason string
	newStart        time.Time
	newEnd          time.Time
}

func (f *fakeAppointmentRepository) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepository) GetByPatientID(_ context.Context, _ int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	f.gotStatus = status
	return f.byPatient, nil
}

func (f *fakeAppointmentRepository) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepository) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelledReason = reason
	return nil
}

func (f *fakeAppointmentRepository) UpdateSchedule(_ context.Context, _ int64, start, end time.Time) error {
	f.newStart = start
	f.newEnd = end
	return nil
}

type fakeSeats struct {
	released []int64
}

func (f *fakeSeats) Release(_ context.Context, slotID int64) error {
	f.released = append(f.released, slotID)
	return nil
}

type fakeConflictChecker struct {
	err error
	got *conflictModels.DetectRequest
}

func (f *fakeConflictChecker) CheckAvailable(_ context.Context, req *conflictModels.DetectRequest) error {
	f.got = req
	return f.err
}

type recordingPublisher struct {
	events chan events.AppointmentEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(chan events.AppointmentEvent, 8)}
}

func (p *recordingPublisher) Publish(_ context.Context, event events.AppointmentEvent) error {
	p.events <- event
	return nil
}

func (p *recordingPublisher) waitForEvent(t *testing.T) events.AppointmentEvent {
	t.Helper()
	select {
	case e := <-p.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("expected an event to be published")
		return events.AppointmentEvent{}
	}
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type cancelMetrics struct{ cancelled int }

func (m *cancelMetrics) IncAppointmentCancelled() { m.cancelled++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc       *Service
	repo      *fakeAppointmentRepository
	seats     *fakeSeats
	checker   *fakeConflictChecker
	publisher *recordingPublisher
	metrics   *cancelMetrics
}

func newTestEnv(appointment *domain.Appointment) *testEnv {
	env := &testEnv{
		repo:      &fakeAppointmentRepository{appointment: appointment},
		seats:     &fakeSeats{},
		checker:   &fakeConflictChecker{},
		publisher: newRecordingPublisher(),
		metrics:   &cancelMetrics{},
	}
	env.svc = NewService(
		env.repo,
		env.seats,
		env.checker,
		passthroughTxManager{},
		env.publisher,
		fixedTimeProvider{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)},
		env.metrics,
		nopLogger{},
	)
	return env
}

func scheduledAppointment() *domain.Appointment {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         1,
		PatientID:  10,
		ProviderID: 20,
		SlotID:     30,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     domain.StatusScheduled,
	}
}

func TestGetAppointmentByID(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	resp, err := env.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)

	env.repo.getErr = appointmentRepo.ErrAppointmentNotFound
	_, err = env.svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByPatient(t *testing.T) {
	env := newTestEnv(nil)
	env.repo.byPatient = []*domain.Appointment{scheduledAppointment()}

	resp, err := env.svc.GetByPatient(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: 10,
		Status:    ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	require.NotNil(t, env.repo.gotStatus)
	assert.Equal(t, domain.StatusConfirmed, *env.repo.gotStatus)
}

func TestGetByPatientInvalidStatus(t *testing.T) {
	env := newTestEnv(nil)

	_, err := env.svc.GetByPatient(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: 10,
		Status:    ptr.Ptr("waiting"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReschedule(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	newStart := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(30 * time.Minute)

	resp, err := env.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		NewStartTime: newStart,
		NewEndTime:   newEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newEnd, resp.EndTime)
	assert.Equal(t, newStart, env.repo.newStart)

	// Проверка конфликтов исключает собственный слот и сам приём
	require.NotNil(t, env.checker.got)
	require.NotNil(t, env.checker.got.ExcludeSlotID)
	assert.Equal(t, int64(30), *env.checker.got.ExcludeSlotID)
	require.NotNil(t, env.checker.got.ExcludeAppointmentID)
	assert.Equal(t, int64(1), *env.checker.got.ExcludeAppointmentID)

	event := env.publisher.waitForEvent(t)
	assert.Equal(t, events.TypeAppointmentRescheduled, event.EventType)
	assert.Equal(t, int64(1), event.AppointmentID)
}

func TestRescheduleInvalidInterval(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	start := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	_, err := env.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		NewStartTime: start,
		NewEndTime:   start,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRescheduleTerminalAppointment(t *testing.T) {
	appointment := scheduledAppointment()
	appointment.Status = domain.StatusCompleted
	env := newTestEnv(appointment)

	newStart := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	_, err := env.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		NewStartTime: newStart,
		NewEndTime:   newStart.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestRescheduleConflict(t *testing.T) {
	env := newTestEnv(scheduledAppointment())
	env.checker.err = &conflicts.ConflictError{Conflicts: []domain.Conflict{{Type: domain.ConflictTypeTime}}}

	newStart := time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	_, err := env.svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		NewStartTime: newStart,
		NewEndTime:   newStart.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, conflicts.ErrConflict)
}

func TestCancel(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{CancellationReason: "patient request"})
	require.NoError(t, err)

	assert.Equal(t, "patient request", env.repo.cancelledReason)
	assert.Equal(t, []int64{30}, env.seats.released, "место возвращается слоту")
	assert.Equal(t, 1, env.metrics.cancelled)

	event := env.publisher.waitForEvent(t)
	assert.Equal(t, events.TypeAppointmentCancelled, event.EventType)
	assert.Equal(t, "cancelled", event.Status)
}

func TestCancelTerminalAppointment(t *testing.T) {
	appointment := scheduledAppointment()
	appointment.Status = domain.StatusCancelled
	env := newTestEnv(appointment)

	err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{CancellationReason: "again"})
	assert.ErrorIs(t, err, ErrTerminalStatus)
	assert.Empty(t, env.seats.released)
}

func TestCancelReasonTooLong(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{
		CancellationReason: strings.Repeat("x", domain.MaxReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	require.NotNil(t, env.repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *env.repo.updatedStatus)
	assert.Empty(t, env.seats.released)

	event := env.publisher.waitForEvent(t)
	assert.Equal(t, events.TypeAppointmentStatusChanged, event.EventType)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatusTerminalAppointment(t *testing.T) {
	appointment := scheduledAppointment()
	appointment.Status = domain.StatusNoShow
	env := newTestEnv(appointment)

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestUpdateStatusReleasesSeatOnCancellation(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, []int64{30}, env.seats.released)
	assert.Equal(t, 1, env.metrics.cancelled)
}

func TestUpdateStatusReleasesSeatOnNoShow(t *testing.T) {
	env := newTestEnv(scheduledAppointment())

	err := env.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
	require.NoError(t, err)

	assert.Equal(t, []int64{30}, env.seats.released)
	assert.Equal(t, 0, env.metrics.cancelled, "неявка не учитывается как отмена")
}
