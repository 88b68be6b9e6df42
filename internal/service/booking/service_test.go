package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	"github.com/atyusan/blue-card-sub005/pkg/dbmetrics"
)

type fakeSeatRepo struct {
	reserveErrs []error // по одной ошибке на попытку, nil = успех
	releaseErr  error

	reserveCalls int
	releaseCalls int
}

func (f *fakeSeatRepo) ReserveSeat(_ context.Context, _ int64) error {
	f.reserveCalls++
	if f.reserveCalls <= len(f.reserveErrs) {
		return f.reserveErrs[f.reserveCalls-1]
	}
	return nil
}

func (f *fakeSeatRepo) ReleaseSeat(_ context.Context, _ int64) error {
	f.releaseCalls++
	return f.releaseErr
}

type reservationMetrics struct {
	results map[string]int
}

func (m *reservationMetrics) IncReservation(result string) {
	if m.results == nil {
		m.results = make(map[string]int)
	}
	m.results[result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestReserveSuccess(t *testing.T) {
	repo := &fakeSeatRepo{}
	metrics := &reservationMetrics{}
	svc := NewService(repo, metrics, nopLogger{})

	require.NoError(t, svc.Reserve(context.Background(), 1))
	assert.Equal(t, 1, repo.reserveCalls)
	assert.Equal(t, 1, metrics.results["success"])
}

func TestReserveFinalErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantErr    error
		wantResult string
	}{
		{"not found", slotRepo.ErrSlotNotFound, ErrSlotNotFound, "not_found"},
		{"full", slotRepo.ErrSlotFull, ErrSlotFull, "full"},
		{"unavailable", slotRepo.ErrSlotUnavailable, ErrSlotUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSeatRepo{reserveErrs: []error{tt.repoErr}}
			metrics := &reservationMetrics{}
			svc := NewService(repo, metrics, nopLogger{})

			err := svc.Reserve(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, repo.reserveCalls, "final errors must not be retried")
			assert.Equal(t, 1, metrics.results[tt.wantResult])
		})
	}
}

func TestReserveRetriesTransientFailures(t *testing.T) {
	repo := &fakeSeatRepo{reserveErrs: []error{slotRepo.ErrExecQuery, slotRepo.ErrExecQuery}}
	metrics := &reservationMetrics{}
	svc := NewService(repo, metrics, nopLogger{})

	require.NoError(t, svc.Reserve(context.Background(), 1))
	assert.Equal(t, 3, repo.reserveCalls)
	assert.Equal(t, 1, metrics.results["success"])
}

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error                                                    { return nil }
func (fakeTx) Rollback() error                                                  { return nil }

func TestReserveDoesNotRetryInsideTransaction(t *testing.T) {
	// После сбоя стейтмента Postgres откатывает всю транзакцию,
	// так что повторная попытка внутри неё не может пройти
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	repo := &fakeSeatRepo{reserveErrs: []error{slotRepo.ErrExecQuery}}
	svc := NewService(repo, &reservationMetrics{}, nopLogger{})

	err := svc.Reserve(ctx, 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, repo.reserveCalls)
}

func TestReserveFinalErrorsInsideTransaction(t *testing.T) {
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	repo := &fakeSeatRepo{reserveErrs: []error{slotRepo.ErrSlotFull}}
	svc := NewService(repo, &reservationMetrics{}, nopLogger{})

	assert.ErrorIs(t, svc.Reserve(ctx, 1), ErrSlotFull)
}

func TestReserveExhaustsRetries(t *testing.T) {
	repo := &fakeSeatRepo{reserveErrs: []error{slotRepo.ErrExecQuery, slotRepo.ErrExecQuery, slotRepo.ErrExecQuery}}
	metrics := &reservationMetrics{}
	svc := NewService(repo, metrics, nopLogger{})

	err := svc.Reserve(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReserveAttempts, repo.reserveCalls)
	assert.Equal(t, 1, metrics.results["error"])
}

func TestReserveUnknownRepositoryError(t *testing.T) {
	repo := &fakeSeatRepo{reserveErrs: []error{errors.New("connection reset")}}
	svc := NewService(repo, &reservationMetrics{}, nopLogger{})

	err := svc.Reserve(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, repo.reserveCalls)
}

func TestReserveStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &fakeSeatRepo{reserveErrs: []error{slotRepo.ErrExecQuery, slotRepo.ErrExecQuery, slotRepo.ErrExecQuery}}
	svc := NewService(repo, &reservationMetrics{}, nopLogger{})

	err := svc.Reserve(ctx, 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Less(t, repo.reserveCalls, maxReserveAttempts)
}

func TestRelease(t *testing.T) {
	repo := &fakeSeatRepo{}
	metrics := &reservationMetrics{}
	svc := NewService(repo, metrics, nopLogger{})

	require.NoError(t, svc.Release(context.Background(), 1))
	assert.Equal(t, 1, metrics.results["released"])

	// Повторный вызов безопасен
	require.NoError(t, svc.Release(context.Background(), 1))
	assert.Equal(t, 2, repo.releaseCalls)
}

func TestReleaseRepositoryError(t *testing.T) {
	repo := &fakeSeatRepo{releaseErr: errors.New("boom")}
	metrics := &reservationMetrics{}
	svc := NewService(repo, metrics, nopLogger{})

	err := svc.Release(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, metrics.results["release_error"])
}
