package scheduler_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	balanceerrors "leavedesk/internal/balance/errors"
	"leavedesk/internal/leaverequest"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/scheduler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSweepRepository struct {
	leaverequest.Repository

	findPendingOlderThanFn func(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeSweepRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error) {
	if f.findPendingOlderThanFn != nil {
		return f.findPendingOlderThanFn(ctx, cutoff, limit)
	}
	return nil, nil
}

func (f *fakeSweepRepository) WithTx(tx *sql.Tx) leaverequest.Repository { return f }

type fakeSweepService struct {
	leaverequest.Service

	mu            sync.Mutex
	autoApproveFn func(ctx context.Context, requestID string) (*leaverequest.LeaveRequestResponse, error)
	approved      []string
}

func (f *fakeSweepService) AutoApprove(ctx context.Context, requestID string) (*leaverequest.LeaveRequestResponse, error) {
	resp, err := f.autoApproveFn(ctx, requestID)
	if err == nil {
		f.mu.Lock()
		f.approved = append(f.approved, requestID)
		f.mu.Unlock()
	}
	return resp, err
}

func (f *fakeSweepService) approvedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.approved...)
}

func pendingSince(age time.Duration) leaverequest.LeaveRequest {
	return leaverequest.LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: "LR-000099",
		UserID:        uuid.New(),
		LeaveType:     "Annual Leave",
		TotalDays:     2,
		Status:        leaverequest.StatusPending,
		CreatedAt:     time.Now().Add(-age),
	}
}

func TestAutoApproveSweep(t *testing.T) {
	t.Run("approves aged candidates and keeps going past failures", func(t *testing.T) {
		healthy := pendingSince(100 * time.Hour)
		raced := pendingSince(90 * time.Hour)
		broke := pendingSince(80 * time.Hour)
		second := pendingSince(75 * time.Hour)

		listed := make(chan struct{}, 1)
		repo := &fakeSweepRepository{
			findPendingOlderThanFn: func(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error) {
				select {
				case listed <- struct{}{}:
				default:
				}
				assert.Equal(t, 100, limit)
				assert.WithinDuration(t, time.Now().Add(-72*time.Hour), cutoff, time.Minute)
				return []leaverequest.LeaveRequest{healthy, raced, broke, second}, nil
			},
		}

		service := &fakeSweepService{
			autoApproveFn: func(ctx context.Context, requestID string) (*leaverequest.LeaveRequestResponse, error) {
				switch requestID {
				case raced.ID.String():
					return nil, leaverequesterrors.ErrAlreadyDecided
				case broke.ID.String():
					return nil, balanceerrors.ErrInsufficientBalance
				default:
					return &leaverequest.LeaveRequestResponse{ID: requestID, Status: leaverequest.StatusApproved}, nil
				}
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.RunAutoApproveSweep(ctx, scheduler.Config{
				SweepInterval: 10 * time.Millisecond,
			}, repo, service, zap.NewNop())
			close(done)
		}()

		select {
		case <-listed:
		case <-time.After(2 * time.Second):
			t.Fatal("sweep never listed candidates")
		}

		assert.Eventually(t, func() bool {
			return len(service.approvedIDs()) >= 2
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		<-done

		approved := service.approvedIDs()
		assert.Contains(t, approved, healthy.ID.String())
		assert.Contains(t, approved, second.ID.String())
		assert.NotContains(t, approved, raced.ID.String())
		assert.NotContains(t, approved, broke.ID.String())
	})

	t.Run("listing failure does not kill the loop", func(t *testing.T) {
		var calls int
		var mu sync.Mutex
		repo := &fakeSweepRepository{
			findPendingOlderThanFn: func(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return nil, errors.New("db down")
			},
		}
		service := &fakeSweepService{
			autoApproveFn: func(ctx context.Context, requestID string) (*leaverequest.LeaveRequestResponse, error) {
				t.Error("no candidates should be approved")
				return nil, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.RunAutoApproveSweep(ctx, scheduler.Config{
				SweepInterval: 10 * time.Millisecond,
			}, repo, service, zap.NewNop())
			close(done)
		}()

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return calls >= 2
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		<-done
	})
}
