package admin

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id int64) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	Update(ctx context.Context, admin *Admin) error
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, admin *Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Admin, error) {
	var admin Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	if err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) Update(ctx context.Context, admin *Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Admin{}).Count(&total).Error
	return total, err
}
