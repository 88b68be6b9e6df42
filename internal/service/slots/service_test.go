package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atyusan/blue-card-sub005/internal/domain"
	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	"github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	conflictModels "github.com/atyusan/blue-card-sub005/internal/service/conflicts/models"
	"github.com/atyusan/blue-card-sub005/internal/service/slots/models"
	"github.com/atyusan/blue-card-sub005/pkg/ptr"
)

type fakeSlotRepository struct {
	slot      *domain.Slot
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	findErr   error
	found     []*domain.Slot

	updated   *domain.Slot
	gotFilter domain.SlotFilter
}

func (f *fakeSlotRepository) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *slot
	created.ID = 100
	return &created, nil
}

func (f *fakeSlotRepository) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepository) Update(_ context.Context, slot *domain.Slot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = slot
	return nil
}

func (f *fakeSlotRepository) Delete(_ context.Context, _ int64) error {
	return f.deleteErr
}

func (f *fakeSlotRepository) FindWithFilter(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	f.gotFilter = filter
	return f.found, f.findErr
}

type fakeConflictChecker struct {
	err   error
	calls int
	got   *conflictModels.DetectRequest
}

func (f *fakeConflictChecker) CheckAvailable(_ context.Context, req *conflictModels.DetectRequest) error {
	f.calls++
	f.got = req
	return f.err
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

type slotsMetrics struct {
	generated map[string]int
}

func (m *slotsMetrics) AddSlotsGenerated(mode string, count int) {
	if m.generated == nil {
		m.generated = make(map[string]int)
	}
	m.generated[mode] += count
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSlotRepository, checker *fakeConflictChecker) (*Service, *slotsMetrics) {
	metrics := &slotsMetrics{}
	return NewService(repo, checker, passthroughTxManager{}, metrics, nopLogger{}), metrics
}

func createRequest() *models.CreateSlotRequest {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &models.CreateSlotRequest{
		ProviderID:  1,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		SlotType:    domain.SlotTypeConsultation,
		MaxBookings: 1,
	}
}

func existingSlot() *domain.Slot {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return &domain.Slot{
		ID:              5,
		ProviderID:      1,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		SlotType:        domain.SlotTypeConsultation,
		MaxBookings:     1,
		IsAvailable:     true,
		IsBookable:      true,
	}
}

func TestCreateSlot(t *testing.T) {
	repo := &fakeSlotRepository{}
	checker := &fakeConflictChecker{}
	svc, metrics := newTestService(repo, checker)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.True(t, resp.IsBookable)
	assert.Equal(t, 1, checker.calls)
	assert.Equal(t, 1, metrics.generated["single"])
}

func TestCreateSlotConflict(t *testing.T) {
	conflictErr := &conflicts.ConflictError{Conflicts: []domain.Conflict{{Type: domain.ConflictTypeTime}}}
	repo := &fakeSlotRepository{}
	svc, _ := newTestService(repo, &fakeConflictChecker{err: conflictErr})

	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, conflicts.ErrConflict)

	var got *conflicts.ConflictError
	require.ErrorAs(t, err, &got)
	assert.Len(t, got.Conflicts, 1)
}

func TestCreateSlotValidation(t *testing.T) {
	svc, _ := newTestService(&fakeSlotRepository{}, &fakeConflictChecker{})

	req := createRequest()
	req.EndTime = req.StartTime.Add(2 * time.Minute)
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.EndTime = req.StartTime
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.MaxBookings = 101
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.SlotType = "surgery"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSlotStructuralChangeBlockedByBookings(t *testing.T) {
	slot := existingSlot()
	slot.CurrentBookings = 1
	svc, _ := newTestService(&fakeSlotRepository{slot: slot}, &fakeConflictChecker{})

	newStart := slot.StartTime.Add(time.Hour)
	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{StartTime: &newStart})
	assert.ErrorIs(t, err, ErrSlotHasBookings)

	_, err = svc.Update(context.Background(), 5, &models.UpdateSlotRequest{MaxBookings: ptr.Ptr(3)})
	assert.ErrorIs(t, err, ErrSlotHasBookings)
}

func TestUpdateSlotAvailabilityChangeAllowedWithBookings(t *testing.T) {
	slot := existingSlot()
	slot.CurrentBookings = 1
	repo := &fakeSlotRepository{slot: slot}
	checker := &fakeConflictChecker{}
	svc, _ := newTestService(repo, checker)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{IsBookable: ptr.Ptr(false)})
	require.NoError(t, err)

	assert.False(t, resp.IsBookable)
	assert.Equal(t, 0, checker.calls, "окно не двигалось - перепроверка не нужна")
	require.NotNil(t, repo.updated)
}

func TestUpdateSlotTimeWindowRechecksConflicts(t *testing.T) {
	slot := existingSlot()
	repo := &fakeSlotRepository{slot: slot}
	checker := &fakeConflictChecker{}
	svc, _ := newTestService(repo, checker)

	newStart := slot.StartTime.Add(time.Hour)
	newEnd := newStart.Add(30 * time.Minute)
	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{StartTime: &newStart, EndTime: &newEnd})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, 1, checker.calls)
	require.NotNil(t, checker.got.ExcludeSlotID)
	assert.Equal(t, int64(5), *checker.got.ExcludeSlotID)
}

func TestUpdateSlotNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeSlotRepository{getErr: slotRepo.ErrSlotNotFound}, &fakeConflictChecker{})

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{IsBookable: ptr.Ptr(false)})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(&fakeSlotRepository{slot: existingSlot()}, &fakeConflictChecker{})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)

	svc, _ = newTestService(&fakeSlotRepository{getErr: slotRepo.ErrSlotNotFound}, &fakeConflictChecker{})
	_, err = svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDeleteSlot(t *testing.T) {
	svc, _ := newTestService(&fakeSlotRepository{}, &fakeConflictChecker{})
	assert.NoError(t, svc.Delete(context.Background(), 5))

	svc, _ = newTestService(&fakeSlotRepository{deleteErr: slotRepo.ErrSlotNotFound}, &fakeConflictChecker{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrSlotNotFound)

	svc, _ = newTestService(&fakeSlotRepository{deleteErr: slotRepo.ErrSlotHasBookings}, &fakeConflictChecker{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrSlotHasBookings)

	svc, _ = newTestService(&fakeSlotRepository{deleteErr: errors.New("boom")}, &fakeConflictChecker{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrInternal)
}

func TestSearchSlots(t *testing.T) {
	repo := &fakeSlotRepository{found: []*domain.Slot{existingSlot()}}
	svc, _ := newTestService(repo, &fakeConflictChecker{})

	providerID := int64(1)
	resp, err := svc.Search(context.Background(), &models.SearchSlotsRequest{
		ProviderID:    &providerID,
		OnlyAvailable: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	require.NotNil(t, repo.gotFilter.ProviderID)
	assert.Equal(t, providerID, *repo.gotFilter.ProviderID)
	assert.True(t, repo.gotFilter.OnlyAvailable)
}

func TestSearchSlotsInvalidDateRange(t *testing.T) {
	svc, _ := newTestService(&fakeSlotRepository{}, &fakeConflictChecker{})

	start := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err := svc.Search(context.Background(), &models.SearchSlotsRequest{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
