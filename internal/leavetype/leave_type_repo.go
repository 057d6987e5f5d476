package leavetype

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	UpdateDefaultDays(ctx context.Context, id string, days int) (int64, error)
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	query := `
        INSERT INTO leave_types (id, name, default_days, created_at, updated_at)
        VALUES ($1, $2, $3, now(), now())
    `
	_, err := r.execer().ExecContext(ctx, query, lt.ID, lt.Name, lt.DefaultDays)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "name = ?", name).Error
	return &lt, err
}

func (r *repository) UpdateDefaultDays(ctx context.Context, id string, days int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Where("id = ?", id).
		Update("default_days", days)
	return res.RowsAffected, res.Error
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
