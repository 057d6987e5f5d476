package holiday

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindBetween(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Holiday{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
