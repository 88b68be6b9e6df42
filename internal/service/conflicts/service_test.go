package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
)

type fakeSlotRepo struct {
	slots []*domain.Slot
	err   error

	gotResourceID    *int64
	gotExcludeSlotID *int64
}

func (f *fakeSlotRepo) FindOverlapping(_ context.Context, _ int64, resourceID *int64, _ domain.Interval, excludeSlotID *int64) ([]*domain.Slot, error) {
	f.gotResourceID = resourceID
	f.gotExcludeSlotID = excludeSlotID
	return f.slots, f.err
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error

	gotExcludeSlotID        *int64
	gotExcludeAppointmentID *int64
}

func (f *fakeAppointmentRepo) FindOverlappingForProvider(_ context.Context, _ int64, _ domain.Interval, excludeSlotID *int64, excludeAppointmentID *int64) ([]*domain.Appointment, error) {
	f.gotExcludeSlotID = excludeSlotID
	f.gotExcludeAppointmentID = excludeAppointmentID
	return f.appointments, f.err
}

type fakeTimeOffRepo struct {
	timeOff []*domain.TimeOffRequest
	err     error

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeTimeOffRepo) FindApproved(_ context.Context, _ int64, from, to time.Time) ([]*domain.TimeOffRequest, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.timeOff, f.err
}

// datePredicateTimeOffRepo воспроизводит предикат репозитория над
// DATE-колонками: start_date <= to AND end_date >= from
type datePredicateTimeOffRepo struct {
	timeOff []*domain.TimeOffRequest
}

func (f *datePredicateTimeOffRepo) FindApproved(_ context.Context, _ int64, from, to time.Time) ([]*domain.TimeOffRequest, error) {
	matched := make([]*domain.TimeOffRequest, 0)
	for _, t := range f.timeOff {
		if !t.StartDate.After(to) && !t.EndDate.Before(from) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

type countingMetrics struct {
	byType map[string]int
}

func (m *countingMetrics) IncConflictsDetected(conflictType string, count int) {
	if m.byType == nil {
		m.byType = make(map[string]int)
	}
	m.byType[conflictType] += count
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func detectRequest() *models.DetectRequest {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &models.DetectRequest{
		ProviderID: 1,
		Interval:   domain.NewInterval(start, start.Add(30*time.Minute)),
	}
}

func TestDetectNoConflicts(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})

	resp, err := svc.Detect(context.Background(), detectRequest())
	require.NoError(t, err)
	assert.False(t, resp.HasConflicts())
	assert.Empty(t, resp.Conflicts)
}

func TestDetectCollectsAllConflictKinds(t *testing.T) {
	metrics := &countingMetrics{}
	svc := NewService(
		&fakeSlotRepo{slots: []*domain.Slot{{ID: 10}}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{{ID: 20}, {ID: 21}}},
		&fakeTimeOffRepo{timeOff: []*domain.TimeOffRequest{{ID: 30}}},
		metrics,
		nopLogger{},
	)

	resp, err := svc.Detect(context.Background(), detectRequest())
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 3)

	assert.Equal(t, domain.ConflictTypeTime, resp.Conflicts[0].Type)
	assert.Len(t, resp.Conflicts[0].Slots, 1)

	assert.Equal(t, domain.ConflictTypeTime, resp.Conflicts[1].Type)
	assert.Len(t, resp.Conflicts[1].Appointments, 2)

	assert.Equal(t, domain.ConflictTypeProviderUnavailable, resp.Conflicts[2].Type)
	assert.Len(t, resp.Conflicts[2].TimeOff, 1)

	assert.Equal(t, 2, metrics.byType[string(domain.ConflictTypeTime)])
	assert.Equal(t, 1, metrics.byType[string(domain.ConflictTypeProviderUnavailable)])
}

func TestDetectInvalidInterval(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})

	req := detectRequest()
	req.Interval.End = req.Interval.Start

	_, err := svc.Detect(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDetectForwardsExclusions(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	appointmentRepo := &fakeAppointmentRepo{}
	svc := NewService(slotRepo, appointmentRepo, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})

	resourceID := int64(7)
	excludeSlotID := int64(42)
	excludeAppointmentID := int64(99)

	req := detectRequest()
	req.ResourceID = &resourceID
	req.ExcludeSlotID = &excludeSlotID
	req.ExcludeAppointmentID = &excludeAppointmentID

	_, err := svc.Detect(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, slotRepo.gotResourceID)
	assert.Equal(t, resourceID, *slotRepo.gotResourceID)
	require.NotNil(t, slotRepo.gotExcludeSlotID)
	assert.Equal(t, excludeSlotID, *slotRepo.gotExcludeSlotID)

	require.NotNil(t, appointmentRepo.gotExcludeSlotID)
	assert.Equal(t, excludeSlotID, *appointmentRepo.gotExcludeSlotID)
	require.NotNil(t, appointmentRepo.gotExcludeAppointmentID)
	assert.Equal(t, excludeAppointmentID, *appointmentRepo.gotExcludeAppointmentID)
}

func TestDetectTruncatesTimeOffBoundsToDates(t *testing.T) {
	repo := &fakeTimeOffRepo{}
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, repo, &countingMetrics{}, nopLogger{})

	_, err := svc.Detect(context.Background(), detectRequest())
	require.NoError(t, err)

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, repo.gotFrom, "границы отсутствий сравниваются как календарные даты")
	assert.Equal(t, day, repo.gotTo)
}

func TestDetectIntradayIntervalOnSingleDayTimeOff(t *testing.T) {
	// Однодневное одобренное отсутствие хранится как DATE: интервал
	// 09:00-09:30 того же дня обязан на него наткнуться
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	repo := &datePredicateTimeOffRepo{
		timeOff: []*domain.TimeOffRequest{{
			ID:         30,
			ProviderID: 1,
			StartDate:  day,
			EndDate:    day,
			Status:     domain.TimeOffApproved,
			Type:       domain.TimeOffSickLeave,
		}},
	}
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, repo, &countingMetrics{}, nopLogger{})

	resp, err := svc.Detect(context.Background(), detectRequest())
	require.NoError(t, err)

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictTypeProviderUnavailable, resp.Conflicts[0].Type)
	assert.Equal(t, int64(30), resp.Conflicts[0].TimeOff[0].ID)
}

func TestDetectRepositoryFailure(t *testing.T) {
	boom := errors.New("boom")

	svc := NewService(&fakeSlotRepo{err: boom}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})
	_, err := svc.Detect(context.Background(), detectRequest())
	assert.ErrorIs(t, err, ErrInternal)

	svc = NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{err: boom}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})
	_, err = svc.Detect(context.Background(), detectRequest())
	assert.ErrorIs(t, err, ErrInternal)

	svc = NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{err: boom}, &countingMetrics{}, nopLogger{})
	_, err = svc.Detect(context.Background(), detectRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCheckAvailable(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})
	assert.NoError(t, svc.CheckAvailable(context.Background(), detectRequest()))

	svc = NewService(&fakeSlotRepo{slots: []*domain.Slot{{ID: 10}}}, &fakeAppointmentRepo{}, &fakeTimeOffRepo{}, &countingMetrics{}, nopLogger{})
	err := svc.CheckAvailable(context.Background(), detectRequest())

	assert.ErrorIs(t, err, ErrConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(10), conflictErr.Conflicts[0].Slots[0].ID)
}
