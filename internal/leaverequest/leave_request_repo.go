package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_request_repo.go -destination=mock/leave_request_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAllByOwner(ctx context.Context, userID uuid.UUID) ([]LeaveRequest, error)
	FindAllByManager(ctx context.Context, managerID uuid.UUID) ([]LeaveRequest, error)
	FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]LeaveRequest, error)
	UpdateFields(ctx context.Context, lr *LeaveRequest) (int64, error)
	TransitionToApproved(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error)
	MarkRejected(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// execer returns the bound transaction when present so every mutation in an
// approve or create flow commits or rolls back together.
func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (
			id, request_number, user_id, manager_id, leave_type,
			start_date, end_date, total_days, description, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.execer().ExecContext(ctx, query,
		lr.ID, lr.RequestNumber, lr.UserID, lr.ManagerID, lr.LeaveType,
		lr.StartDate, lr.EndDate, lr.TotalDays, lr.Description, lr.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindAllByOwner(ctx context.Context, userID uuid.UUID) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByManager(ctx context.Context, managerID uuid.UUID) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END, created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("created_at <= ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// UpdateFields rewrites the mutable fields of a request while it is still
// pending. Zero rows affected means the request was decided or deleted in
// the meantime.
func (r *repository) UpdateFields(ctx context.Context, lr *LeaveRequest) (int64, error) {
	query := `
		UPDATE leave_requests
		SET manager_id = $2, leave_type = $3, start_date = $4, end_date = $5,
			total_days = $6, description = $7, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL
	`
	result, err := r.execer().ExecContext(ctx, query,
		lr.ID, lr.ManagerID, lr.LeaveType, lr.StartDate, lr.EndDate,
		lr.TotalDays, lr.Description,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// TransitionToApproved flips a request to APPROVED only while it is still
// pending. approvedBy is nil when the grace-period sweep resolves the
// request. The conditional WHERE makes concurrent deciders race safely:
// exactly one caller observes one affected row.
func (r *repository) TransitionToApproved(ctx context.Context, id uuid.UUID, approvedBy *uuid.UUID, approvedAt time.Time) (int64, error) {
	query := `
		UPDATE leave_requests
		SET status = 'APPROVED', approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL
	`
	result, err := r.execer().ExecContext(ctx, query, id, approvedBy, approvedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// MarkRejected records the decision and soft deletes the row in one
// statement, so a rejected request leaves the active set but stays
// queryable for audit.
func (r *repository) MarkRejected(ctx context.Context, id uuid.UUID, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	query := `
		UPDATE leave_requests
		SET status = 'REJECTED', approved_by = $2, approved_at = $3,
			updated_at = NOW(), deleted_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL
	`
	result, err := r.execer().ExecContext(ctx, query, id, decidedBy, decidedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *repository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	query := `
		UPDATE leave_requests
		SET updated_at = NOW(), deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'PENDING' AND deleted_at IS NULL
	`
	result, err := r.execer().ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
