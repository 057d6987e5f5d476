package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindManagers(ctx context.Context) ([]User, error)
	FindByManager(ctx context.Context, managerID uuid.UUID) ([]User, error)
	Search(ctx context.Context, term string, page, limit int) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
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

// execer returns the transaction when one is bound, so writes issued
// inside a service transaction actually ride on it.
func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, full_name, mobile, email, password, role, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NOW(), NOW())
	`
	_, err := r.execer().ExecContext(ctx, query,
		u.ID, u.FullName, u.Mobile, u.Email, u.Password, u.Role, u.ManagerID,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "mobile = ?", mobile).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) FindManagers(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role = ?", RoleManager).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Search(ctx context.Context, term string, page, limit int) ([]User, int64, error) {
	q := r.db.WithContext(ctx).Model(&User{})
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + term + "%"
		q = q.Where("full_name ILIKE ? OR mobile ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Order("full_name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET full_name = $2, mobile = $3, email = NULLIF($4, ''), role = $5, manager_id = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.execer().ExecContext(ctx, query,
		u.ID, u.FullName, u.Mobile, u.Email, u.Role, u.ManagerID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
