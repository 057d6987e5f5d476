package leaverequest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"
	"leavedesk/internal/events"
	"leavedesk/internal/leaverequest"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRequestRepository struct {
	withTxFn               func(tx *sql.Tx) leaverequest.Repository
	createFn               func(ctx context.Context, lr *leaverequest.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error)
	findAllByOwnerFn       func(ctx context.Context, userID uuid.UUID) ([]leaverequest.LeaveRequest, error)
	findAllByManagerFn     func(ctx context.Context, managerID uuid.UUID) ([]leaverequest.LeaveRequest, error)
	findPendingOlderThanFn func(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error)
	updateFieldsFn         func(ctx context.Context, lr *leaverequest.LeaveRequest) (int64, error)
	transitionFn           func(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error)
	markRejectedFn         func(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
	deleteOwnedFn          func(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

func (f *fakeLeaveRequestRepository) WithTx(tx *sql.Tx) leaverequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRequestRepository) Create(ctx context.Context, lr *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRequestRepository) FindAllByOwner(ctx context.Context, userID uuid.UUID) ([]leaverequest.LeaveRequest, error) {
	if f.findAllByOwnerFn != nil {
		return f.findAllByOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindAllByManager(ctx context.Context, managerID uuid.UUID) ([]leaverequest.LeaveRequest, error) {
	if f.findAllByManagerFn != nil {
		return f.findAllByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]leaverequest.LeaveRequest, error) {
	if f.findPendingOlderThanFn != nil {
		return f.findPendingOlderThanFn(ctx, cutoff, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) UpdateFields(ctx context.Context, lr *leaverequest.LeaveRequest) (int64, error) {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, lr)
	}
	return 1, nil
}

func (f *fakeLeaveRequestRepository) TransitionToApproved(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error) {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, id, approvedBy, approvedAt)
	}
	return 1, nil
}

func (f *fakeLeaveRequestRepository) MarkRejected(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	if f.markRejectedFn != nil {
		return f.markRejectedFn(ctx, id, decidedBy, decidedAt)
	}
	return 1, nil
}

func (f *fakeLeaveRequestRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	if f.deleteOwnedFn != nil {
		return f.deleteOwnedFn(ctx, id, ownerID)
	}
	return 1, nil
}

type fakeBalanceRepository struct {
	withTxFn            func(tx *sql.Tx) balance.Repository
	findByUserFn        func(ctx context.Context, userID string) ([]balance.BalanceView, error)
	findByUserAndTypeFn func(ctx context.Context, userID, leaveTypeName string) (*balance.BalanceView, error)
	deductFn            func(ctx context.Context, userID, leaveTypeName string, days int) (int64, error)
	restoreFn           func(ctx context.Context, userID, leaveTypeName string, days int) (int64, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) FindByUser(ctx context.Context, userID string) ([]balance.BalanceView, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByUserAndType(ctx context.Context, userID, leaveTypeName string) (*balance.BalanceView, error) {
	if f.findByUserAndTypeFn != nil {
		return f.findByUserAndTypeFn(ctx, userID, leaveTypeName)
	}
	return &balance.BalanceView{LeaveTypeName: leaveTypeName, Days: 20}, nil
}

func (f *fakeBalanceRepository) Deduct(ctx context.Context, userID, leaveTypeName string, days int) (int64, error) {
	if f.deductFn != nil {
		return f.deductFn(ctx, userID, leaveTypeName, days)
	}
	return 1, nil
}

func (f *fakeBalanceRepository) Restore(ctx context.Context, userID, leaveTypeName string, days int) (int64, error) {
	if f.restoreFn != nil {
		return f.restoreFn(ctx, userID, leaveTypeName, days)
	}
	return 1, nil
}

func (f *fakeBalanceRepository) ProvisionForUser(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeBalanceRepository) BackfillForType(ctx context.Context, leaveTypeID string, days int) error {
	return nil
}

type fakeUserRepository struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{ID: id, FullName: "Someone", Mobile: "0800000000", Role: user.RoleEmployee}, nil
}

func (f *fakeUserRepository) FindByMobile(ctx context.Context, mobile string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error)      { return nil, nil }
func (f *fakeUserRepository) FindManagers(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) Search(ctx context.Context, term string, page, limit int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveRequestServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     leaverequest.Service
	repo        *fakeLeaveRequestRepository
	balanceRepo *fakeBalanceRepository
	userRepo    *fakeUserRepository
	counterRepo *fakeCounterRepository
	outboxRepo  *fakeOutboxRepository
}

func setupLeaveRequestServiceTest(t *testing.T) *leaveRequestServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRequestRepository{}
	balanceRepo := &fakeBalanceRepository{}
	userRepo := &fakeUserRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}

	svc := leaverequest.NewService(db, repo, balanceRepo, userRepo, counterRepo, outboxRepo, nil)

	return &leaveRequestServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		balanceRepo: balanceRepo,
		userRepo:    userRepo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingRequest(ownerID, managerID uuid.UUID) *leaverequest.LeaveRequest {
	return &leaverequest.LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: "LR-000042",
		UserID:        ownerID,
		ManagerID:     &managerID,
		LeaveType:     "Annual Leave",
		StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		TotalDays:     3,
		Status:        leaverequest.StatusPending,
	}
}

func TestLeaveRequestService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leaverequest.CreateLeaveRequestRequest{
			LeaveType:   "Annual Leave",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-03",
			Description: "Family event",
		}

		var eventType string
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(ownerID), lr.UserID)
			assert.Equal(t, "LR-000001", lr.RequestNumber)
			assert.Equal(t, 3, lr.TotalDays)
			assert.Equal(t, leaverequest.StatusPending, lr.Status)
			return nil
		}
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			eventType = event.EventType
			assert.Equal(t, events.LeaveNotificationsTopic, event.Topic)
			return nil
		}

		resp, err := deps.service.Create(ctx, ownerID, req)

		assert.NoError(t, err)
		assert.Equal(t, "LR-000001", resp.RequestNumber)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.Equal(t, events.LeaveRequestCreated, eventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("single day counts as one", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leaverequest.CreateLeaveRequestRequest{
			LeaveType: "Annual Leave",
			StartDate: "2026-09-01",
			EndDate:   "2026-09-01",
		}

		resp, err := deps.service.Create(ctx, ownerID, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.TotalDays)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		req := leaverequest.CreateLeaveRequestRequest{
			LeaveType: "Annual Leave",
			StartDate: "2026-09-03",
			EndDate:   "2026-09-01",
		}

		_, err := deps.service.Create(ctx, ownerID, req)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.balanceRepo.findByUserAndTypeFn = func(ctx context.Context, uid, name string) (*balance.BalanceView, error) {
			return &balance.BalanceView{LeaveTypeName: name, Days: 2}, nil
		}
		req := leaverequest.CreateLeaveRequestRequest{
			LeaveType: "Annual Leave",
			StartDate: "2026-09-01",
			EndDate:   "2026-09-03",
		}

		_, err := deps.service.Create(ctx, ownerID, req)

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
	})

	t.Run("negative balance not configured", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.balanceRepo.findByUserAndTypeFn = func(ctx context.Context, uid, name string) (*balance.BalanceView, error) {
			return nil, gorm.ErrRecordNotFound
		}
		req := leaverequest.CreateLeaveRequestRequest{
			LeaveType: "Annual Leave",
			StartDate: "2026-09-01",
			EndDate:   "2026-09-03",
		}

		_, err := deps.service.Create(ctx, ownerID, req)

		assert.ErrorIs(t, err, balanceerrors.ErrNotConfigured)
	})
}

func TestLeaveRequestService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success recomputes day span", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateFieldsFn = func(ctx context.Context, updated *leaverequest.LeaveRequest) (int64, error) {
			assert.Equal(t, 7, updated.TotalDays)
			return 1, nil
		}

		resp, err := deps.service.Update(ctx, ownerID.String(), lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			StartDate: "2026-10-01",
			EndDate:   "2026-10-07",
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not the owner", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Update(ctx, uuid.New().String(), lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			Description: "new reason",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotRequestOwner)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Update(ctx, ownerID.String(), lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			Description: "new reason",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
	})

	t.Run("negative decided mid-flight", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateFieldsFn = func(ctx context.Context, updated *leaverequest.LeaveRequest) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Update(ctx, ownerID.String(), lr.ID.String(), leaverequest.UpdateLeaveRequestRequest{
			Description: "new reason",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success deducts then flips", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		var deducted int
		deps.balanceRepo.deductFn = func(ctx context.Context, uid, name string, days int) (int64, error) {
			assert.Equal(t, ownerID.String(), uid)
			assert.Equal(t, "Annual Leave", name)
			deducted = days
			return 1, nil
		}
		deps.repo.transitionFn = func(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error) {
			assert.Equal(t, lr.ID, id)
			if assert.NotNil(t, approvedBy) {
				assert.Equal(t, managerID, *approvedBy)
			}
			return 1, nil
		}

		var eventType string
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			eventType = event.EventType
			return nil
		}

		resp, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Equal(t, 3, deducted)
		assert.Equal(t, events.LeaveRequestApproved, eventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative lost the race", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.transitionFn = func(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance at approval", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.balanceRepo.deductFn = func(ctx context.Context, uid, name string, days int) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not the assigned manager", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, uuid.New().String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAssignedManager)
	})

	t.Run("negative self approval", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, ownerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrSelfApproval)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
	})
}

func TestLeaveRequestService_AutoApprove(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success records nil approver", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.transitionFn = func(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error) {
			assert.Nil(t, approvedBy)
			return 1, nil
		}

		var eventType string
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			eventType = event.EventType
			return nil
		}

		resp, err := deps.service.AutoApprove(ctx, lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Nil(t, resp.ApprovedBy)
		assert.Equal(t, events.LeaveRequestAutoApproved, eventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusRejected
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.AutoApprove(ctx, lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
	})
}

func TestLeaveRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success leaves balance untouched", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.balanceRepo.deductFn = func(ctx context.Context, uid, name string, days int) (int64, error) {
			t.Fatal("reject must not touch the balance")
			return 0, nil
		}

		var eventType string
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			eventType = event.EventType
			return nil
		}

		resp, err := deps.service.Reject(ctx, managerID.String(), lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.Equal(t, events.LeaveRequestRejected, eventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative decided mid-flight", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.markRejectedFn = func(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Reject(ctx, managerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		deps.repo.deleteOwnedFn = func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
			assert.Equal(t, lr.ID, id)
			assert.Equal(t, ownerID, owner)
			return 1, nil
		}

		err := deps.service.Delete(ctx, ownerID.String(), lr.ID.String())

		assert.NoError(t, err)
	})

	t.Run("negative not the owner", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		deps.repo.deleteOwnedFn = func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
			return 0, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		err := deps.service.Delete(ctx, uuid.New().String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotRequestOwner)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusApproved
		deps.repo.deleteOwnedFn = func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
			return 0, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		err := deps.service.Delete(ctx, ownerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyDecided)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.deleteOwnedFn = func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
			return 0, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Delete(ctx, ownerID.String(), uuid.New().String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrLeaveRequestNotFound)
	})
}

func TestLeaveRequestService_Lists(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("owner listing", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByOwnerFn = func(ctx context.Context, uid uuid.UUID) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, ownerID, uid)
			return []leaverequest.LeaveRequest{*pendingRequest(ownerID, managerID)}, nil
		}

		resp, err := deps.service.ListForOwner(ctx, ownerID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, leaverequest.StatusPending, resp[0].Status)
	})

	t.Run("manager listing", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByManagerFn = func(ctx context.Context, mid uuid.UUID) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, managerID, mid)
			return []leaverequest.LeaveRequest{*pendingRequest(ownerID, managerID)}, nil
		}

		resp, err := deps.service.ListForManager(ctx, managerID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByOwnerFn = func(ctx context.Context, uid uuid.UUID) ([]leaverequest.LeaveRequest, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.ListForOwner(ctx, ownerID.String())

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestCountDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1, leaverequest.CountDays(day(1), day(1)))
	assert.Equal(t, 3, leaverequest.CountDays(day(1), day(3)))
	assert.Equal(t, 7, leaverequest.CountDays(day(1), day(7)))
}
