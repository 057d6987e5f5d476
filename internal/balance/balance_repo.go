package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUser(ctx context.Context, userID string) ([]BalanceView, error)
	FindByUserAndType(ctx context.Context, userID, leaveTypeName string) (*BalanceView, error)
	Deduct(ctx context.Context, userID, leaveTypeName string, days int) (int64, error)
	Restore(ctx context.Context, userID, leaveTypeName string, days int) (int64, error)
	ProvisionForUser(ctx context.Context, userID string) error
	BackfillForType(ctx context.Context, leaveTypeID string, days int) error
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

func (r *repository) FindByUser(ctx context.Context, userID string) ([]BalanceView, error) {
	var views []BalanceView
	err := r.db.WithContext(ctx).
		Table("leave_balances lb").
		Select("lb.leave_type_id AS leave_type_id, lt.name AS leave_type_name, lb.days AS days").
		Joins("JOIN leave_types lt ON lt.id = lb.leave_type_id").
		Where("lb.user_id = ?", userID).
		Where("lt.deleted_at IS NULL").
		Order("lt.name ASC").
		Scan(&views).Error
	return views, err
}

func (r *repository) FindByUserAndType(ctx context.Context, userID, leaveTypeName string) (*BalanceView, error) {
	var view BalanceView
	res := r.db.WithContext(ctx).
		Table("leave_balances lb").
		Select("lb.leave_type_id AS leave_type_id, lt.name AS leave_type_name, lb.days AS days").
		Joins("JOIN leave_types lt ON lt.id = lb.leave_type_id").
		Where("lb.user_id = ?", userID).
		Where("lt.name = ?", leaveTypeName).
		Where("lt.deleted_at IS NULL").
		Limit(1).
		Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &view, nil
}

// Deduct is the atomic read-check-write: the days >= $3 guard makes sure the
// count never goes negative. Zero rows affected means either insufficient
// balance or no entry at all; callers distinguish via FindByUserAndType.
func (r *repository) Deduct(ctx context.Context, userID, leaveTypeName string, days int) (int64, error) {
	query := `
UPDATE leave_balances lb
SET days = lb.days - $3, updated_at = now()
FROM leave_types lt
WHERE lb.leave_type_id = lt.id
	AND lb.user_id = $1
	AND lt.name = $2
	AND lt.deleted_at IS NULL
	AND lb.days >= $3
`
	res, err := r.execer().ExecContext(ctx, query, userID, leaveTypeName, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) Restore(ctx context.Context, userID, leaveTypeName string, days int) (int64, error) {
	query := `
UPDATE leave_balances lb
SET days = lb.days + $3, updated_at = now()
FROM leave_types lt
WHERE lb.leave_type_id = lt.id
	AND lb.user_id = $1
	AND lt.name = $2
	AND lt.deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, userID, leaveTypeName, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ProvisionForUser back-fills one entry per registered leave type at the
// type's default count. Existing entries are left untouched.
func (r *repository) ProvisionForUser(ctx context.Context, userID string) error {
	query := `
INSERT INTO leave_balances (id, user_id, leave_type_id, days, created_at, updated_at)
SELECT gen_random_uuid(), $1, lt.id, lt.default_days, now(), now()
FROM leave_types lt
WHERE lt.deleted_at IS NULL
ON CONFLICT (user_id, leave_type_id) DO NOTHING
`
	_, err := r.execer().ExecContext(ctx, query, userID)
	return err
}

// BackfillForType appends an entry for one leave type to every existing
// user. Used when a new type is registered.
func (r *repository) BackfillForType(ctx context.Context, leaveTypeID string, days int) error {
	query := `
INSERT INTO leave_balances (id, user_id, leave_type_id, days, created_at, updated_at)
SELECT gen_random_uuid(), u.id, $1, $2, now(), now()
FROM users u
WHERE u.deleted_at IS NULL
ON CONFLICT (user_id, leave_type_id) DO NOTHING
`
	_, err := r.execer().ExecContext(ctx, query, leaveTypeID, days)
	return err
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
