package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"
	"leavedesk/internal/events"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/leavetype"
	leavetypeerrors "leavedesk/internal/leavetype/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/counter"
	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const requestNumberCounter = "leave_request"

//go:generate mockgen -source=leave_request_service.go -destination=mock/leave_request_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateLeaveRequestRequest) (*LeaveRequestResponse, error)
	Update(ctx context.Context, ownerID, requestID string, req UpdateLeaveRequestRequest) (*LeaveRequestResponse, error)
	Delete(ctx context.Context, ownerID, requestID string) error
	GetByID(ctx context.Context, actorID, requestID string) (*LeaveRequestResponse, error)
	ListForOwner(ctx context.Context, ownerID string) ([]LeaveRequestResponse, error)
	ListForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, deciderID, requestID string) (*LeaveRequestResponse, error)
	Reject(ctx context.Context, deciderID, requestID string) (*LeaveRequestResponse, error)
	AutoApprove(ctx context.Context, requestID string) (*LeaveRequestResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo balance.Repository
	userRepo    user.Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balanceRepo balance.Repository,
	userRepo user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		balanceRepo: balanceRepo,
		userRepo:    userRepo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		rdb:         rdb,
		logger:      l,
	}
}

func parseDateRange(start, end string) (time.Time, time.Time, int, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, 0, apperror.InvalidField("start_date")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, 0, apperror.InvalidField("end_date")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, 0, leaverequesterrors.ErrInvalidDateRange
	}
	return startDate, endDate, CountDays(startDate, endDate), nil
}

// checkBalance verifies the owner has a balance row for the leave type and
// enough days on it. The read is advisory only; Approve re-checks with the
// guarded deduct before any state changes.
func (s *service) checkBalance(ctx context.Context, ownerID, leaveTypeName string, days int) error {
	if !leavetype.IsValidName(leaveTypeName) {
		return leavetypeerrors.ErrInvalidName
	}
	view, err := s.balanceRepo.FindByUserAndType(ctx, ownerID, leaveTypeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrNotConfigured
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to check leave balance", 500)
	}
	if view.Days < days {
		return balanceerrors.ErrInsufficientBalance
	}
	return nil
}

func (s *service) resolveManager(ctx context.Context, ownerID uuid.UUID, raw string) (*uuid.UUID, error) {
	if raw != "" {
		managerID, err := uuid.Parse(raw)
		if err != nil {
			return nil, usererrors.ErrInvalidUserID
		}
		manager, err := s.userRepo.FindByID(ctx, managerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, usererrors.ErrManagerNotFound
			}
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load manager", 500)
		}
		if manager.Role != user.RoleManager {
			return nil, usererrors.ErrManagerRoleRequired
		}
		return &managerID, nil
	}

	// Fall back to the owner's assigned manager.
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load requester", 500)
	}
	return owner.ManagerID, nil
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateLeaveRequestRequest) (*LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("owner_id", ownerID),
		zap.String("leave_type", req.LeaveType),
	)

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	startDate, endDate, totalDays, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create leave request rejected: bad date range", zap.Error(err))
		return nil, err
	}

	if err := s.checkBalance(ctx, ownerID, req.LeaveType, totalDays); err != nil {
		s.logger.Warn("create leave request rejected: balance check failed",
			zap.String("owner_id", ownerID),
			zap.String("leave_type", req.LeaveType),
			zap.Int("total_days", totalDays),
			zap.Error(err),
		)
		return nil, err
	}

	managerID, err := s.resolveManager(ctx, ownerUUID, req.ManagerID)
	if err != nil {
		s.logger.Warn("create leave request rejected: bad manager reference", zap.Error(err))
		return nil, err
	}

	seq, err := s.counterRepo.GetNextValue(ctx, requestNumberCounter)
	if err != nil {
		s.logger.Error("failed to allocate request number", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to allocate request number", 500)
	}

	lr := &LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: fmt.Sprintf("LR-%06d", seq),
		UserID:        ownerUUID,
		ManagerID:     managerID,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		Description:   req.Description,
		Status:        StatusPending,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to begin transaction", 500)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, lr); err != nil {
		s.logger.Error("failed to persist leave request", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to create leave request", 500)
	}

	if err := s.writeOutboxEvent(ctx, tx, lr, events.LeaveRequestCreated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.logger.Info("leave request created",
		zap.String("request_id", lr.ID.String()),
		zap.String("request_number", lr.RequestNumber),
		zap.String("owner_id", ownerID),
		zap.Int("total_days", totalDays),
	)
	return toResponse(lr), nil
}

func (s *service) Update(ctx context.Context, ownerID, requestID string, req UpdateLeaveRequestRequest) (*LeaveRequestResponse, error) {
	lr, err := s.fetchOwned(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}
	if lr.Status != StatusPending {
		return nil, leaverequesterrors.ErrAlreadyDecided
	}

	if req.LeaveType != "" {
		lr.LeaveType = req.LeaveType
	}
	if req.StartDate != "" {
		lr.StartDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, apperror.InvalidField("start_date")
		}
	}
	if req.EndDate != "" {
		lr.EndDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, apperror.InvalidField("end_date")
		}
	}
	if lr.EndDate.Before(lr.StartDate) {
		return nil, leaverequesterrors.ErrInvalidDateRange
	}
	lr.TotalDays = CountDays(lr.StartDate, lr.EndDate)
	if req.Description != "" {
		lr.Description = req.Description
	}
	if req.ManagerID != "" {
		managerID, err := s.resolveManager(ctx, lr.UserID, req.ManagerID)
		if err != nil {
			return nil, err
		}
		lr.ManagerID = managerID
	}

	if err := s.checkBalance(ctx, ownerID, lr.LeaveType, lr.TotalDays); err != nil {
		s.logger.Warn("update leave request rejected: balance check failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to begin transaction", 500)
	}
	defer tx.Rollback()

	rows, err := s.repo.WithTx(tx).UpdateFields(ctx, lr)
	if err != nil {
		s.logger.Error("failed to update leave request", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to update leave request", 500)
	}
	if rows == 0 {
		// Decided or removed between our read and this write.
		return nil, leaverequesterrors.ErrAlreadyDecided
	}

	if err := s.writeOutboxEvent(ctx, tx, lr, events.LeaveRequestUpdated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.logger.Info("leave request updated", zap.String("request_id", lr.ID.String()))
	return toResponse(lr), nil
}

func (s *service) Delete(ctx context.Context, ownerID, requestID string) error {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return leaverequesterrors.ErrInvalidLeaveRequestID
	}
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	rows, err := s.repo.DeleteOwned(ctx, id, ownerUUID)
	if err != nil {
		s.logger.Error("failed to delete leave request", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete leave request", 500)
	}
	if rows == 0 {
		lr, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return leaverequesterrors.ErrLeaveRequestNotFound
		}
		if lr.UserID != ownerUUID {
			return leaverequesterrors.ErrNotRequestOwner
		}
		return leaverequesterrors.ErrAlreadyDecided
	}

	s.logger.Info("leave request deleted",
		zap.String("request_id", requestID),
		zap.String("owner_id", ownerID),
	)
	return nil
}

func (s *service) GetByID(ctx context.Context, actorID, requestID string) (*LeaveRequestResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch leave request", 500)
	}

	// Visible to the owner and to the assigned manager only.
	if lr.UserID != actorUUID && (lr.ManagerID == nil || *lr.ManagerID != actorUUID) {
		return nil, leaverequesterrors.ErrLeaveRequestNotFound
	}
	return toResponse(lr), nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID string) ([]LeaveRequestResponse, error) {
	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	requests, err := s.repo.FindAllByOwner(ctx, id)
	if err != nil {
		s.logger.Error("failed to list leave requests", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list leave requests", 500)
	}
	return toResponses(requests), nil
}

func (s *service) ListForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	id, err := uuid.Parse(managerID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	requests, err := s.repo.FindAllByManager(ctx, id)
	if err != nil {
		s.logger.Error("failed to list managed leave requests", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list leave requests", 500)
	}
	return toResponses(requests), nil
}

// Approve deducts the owner's balance and flips the request to APPROVED in
// one transaction. The guarded deduct and the conditional status flip
// together make concurrent approvals, overlapping sweeps and stale retries
// collapse into exactly one winner; every loser rolls back cleanly.
func (s *service) Approve(ctx context.Context, deciderID, requestID string) (*LeaveRequestResponse, error) {
	lr, err := s.fetchForDecision(ctx, deciderID, requestID)
	if err != nil {
		return nil, err
	}

	deciderUUID, _ := uuid.Parse(deciderID)
	return s.approve(ctx, lr, &deciderUUID, events.LeaveRequestApproved)
}

// AutoApprove resolves a request that sat pending past the grace period.
// No authority check: the sweep acts on behalf of the system, recorded as a
// nil approver.
func (s *service) AutoApprove(ctx context.Context, requestID string) (*LeaveRequestResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch leave request", 500)
	}
	if lr.Status != StatusPending {
		return nil, leaverequesterrors.ErrAlreadyDecided
	}

	return s.approve(ctx, lr, nil, events.LeaveRequestAutoApproved)
}

func (s *service) approve(ctx context.Context, lr *LeaveRequest, approvedBy *uuid.UUID, eventType string) (*LeaveRequestResponse, error) {
	ownerID := lr.UserID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to begin transaction", 500)
	}
	defer tx.Rollback()

	rows, err := s.balanceRepo.WithTx(tx).Deduct(ctx, ownerID, lr.LeaveType, lr.TotalDays)
	if err != nil {
		s.logger.Error("failed to deduct leave balance", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to deduct leave balance", 500)
	}
	if rows == 0 {
		if _, ferr := s.balanceRepo.FindByUserAndType(ctx, ownerID, lr.LeaveType); errors.Is(ferr, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrNotConfigured
		}
		s.logger.Warn("approval blocked: insufficient balance",
			zap.String("request_id", lr.ID.String()),
			zap.String("owner_id", ownerID),
			zap.Int("total_days", lr.TotalDays),
		)
		return nil, balanceerrors.ErrInsufficientBalance
	}

	approvedAt := time.Now()
	flipped, err := s.repo.WithTx(tx).TransitionToApproved(ctx, lr.ID, approvedBy, approvedAt)
	if err != nil {
		s.logger.Error("failed to transition leave request", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to approve leave request", 500)
	}
	if flipped == 0 {
		// Someone else decided it first. Rolling back restores the deduct.
		s.logger.Warn("approval lost the race", zap.String("request_id", lr.ID.String()))
		return nil, leaverequesterrors.ErrAlreadyDecided
	}

	lr.Status = StatusApproved
	lr.ApprovedBy = approvedBy
	lr.ApprovedAt = &approvedAt

	if err := s.writeOutboxEvent(ctx, tx, lr, eventType); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.invalidateBalanceCache(ctx, ownerID)

	s.logger.Info("leave request approved",
		zap.String("request_id", lr.ID.String()),
		zap.String("event_type", eventType),
		zap.Int("days_deducted", lr.TotalDays),
	)
	return toResponse(lr), nil
}

func (s *service) Reject(ctx context.Context, deciderID, requestID string) (*LeaveRequestResponse, error) {
	lr, err := s.fetchForDecision(ctx, deciderID, requestID)
	if err != nil {
		return nil, err
	}
	deciderUUID, _ := uuid.Parse(deciderID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to begin transaction", 500)
	}
	defer tx.Rollback()

	decidedAt := time.Now()
	rows, err := s.repo.WithTx(tx).MarkRejected(ctx, lr.ID, deciderUUID, decidedAt)
	if err != nil {
		s.logger.Error("failed to reject leave request", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to reject leave request", 500)
	}
	if rows == 0 {
		return nil, leaverequesterrors.ErrAlreadyDecided
	}

	lr.Status = StatusRejected
	lr.ApprovedBy = &deciderUUID
	lr.ApprovedAt = &decidedAt

	if err := s.writeOutboxEvent(ctx, tx, lr, events.LeaveRequestRejected); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.logger.Info("leave request rejected",
		zap.String("request_id", lr.ID.String()),
		zap.String("decided_by", deciderID),
	)
	return toResponse(lr), nil
}

func (s *service) fetchOwned(ctx context.Context, ownerID, requestID string) (*LeaveRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch leave request", 500)
	}
	if lr.UserID != ownerUUID {
		return nil, leaverequesterrors.ErrNotRequestOwner
	}
	return lr, nil
}

// fetchForDecision loads a pending request and verifies the decider is its
// assigned manager and not its owner.
func (s *service) fetchForDecision(ctx context.Context, deciderID, requestID string) (*LeaveRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	deciderUUID, err := uuid.Parse(deciderID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch leave request", 500)
	}
	if lr.Status != StatusPending {
		return nil, leaverequesterrors.ErrAlreadyDecided
	}
	if lr.UserID == deciderUUID {
		return nil, leaverequesterrors.ErrSelfApproval
	}
	if lr.ManagerID == nil || *lr.ManagerID != deciderUUID {
		return nil, leaverequesterrors.ErrNotAssignedManager
	}
	return lr, nil
}

func (s *service) invalidateBalanceCache(ctx context.Context, ownerID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balance.GetBalancesKey(ownerID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate balance cache",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
	}
}

func (s *service) writeOutboxEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest, eventType string) error {
	event := events.LeaveRequestEvent{
		EventType:  eventType,
		RequestID:  lr.ID.String(),
		OwnerID:    lr.UserID.String(),
		LeaveType:  lr.LeaveType,
		StartDate:  lr.StartDate.Format("2006-01-02"),
		EndDate:    lr.EndDate.Format("2006-01-02"),
		TotalDays:  lr.TotalDays,
		Status:     lr.Status,
		OccurredAt: time.Now(),
	}

	if owner, err := s.userRepo.FindByID(ctx, lr.UserID); err == nil {
		event.OwnerName = owner.FullName
		event.Recipients = append(event.Recipients, recipientAddress(owner))
		if lr.ManagerID != nil {
			if manager, err := s.userRepo.FindByID(ctx, *lr.ManagerID); err == nil {
				event.Recipients = append(event.Recipients, recipientAddress(manager))
			}
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal notification event", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to marshal notification event", 500)
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveNotificationsTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("failed to write outbox event", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to write outbox event", 500)
	}
	return nil
}

func recipientAddress(u *user.User) string {
	if u.Email != "" {
		return u.Email
	}
	return u.Mobile
}

func toResponse(lr *LeaveRequest) *LeaveRequestResponse {
	resp := &LeaveRequestResponse{
		ID:            lr.ID.String(),
		RequestNumber: lr.RequestNumber,
		UserID:        lr.UserID.String(),
		LeaveType:     lr.LeaveType,
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		TotalDays:     lr.TotalDays,
		Description:   lr.Description,
		Status:        lr.Status,
		ApprovedAt:    lr.ApprovedAt,
		CreatedAt:     lr.CreatedAt,
	}
	if lr.ManagerID != nil {
		id := lr.ManagerID.String()
		resp.ManagerID = &id
	}
	if lr.ApprovedBy != nil {
		id := lr.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}

func toResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, *toResponse(&requests[i]))
	}
	return out
}
