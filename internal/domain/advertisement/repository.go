package advertisement

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles persistence for advertisements and click records.
type Repository interface {
	ListByPosition(ctx context.Context, position string) ([]*Advertisement, error)
	ListAll(ctx context.Context) ([]*Advertisement, error)
	GetByID(ctx context.Context, id int64) (*Advertisement, error)
	Create(ctx context.Context, ad *Advertisement) error
	Update(ctx context.Context, ad *Advertisement) error

	// IncrementImpressions bumps the counter with a single
	// "UPDATE ... SET impressions = impressions + 1" so concurrent
	// serves of the same ad never lose updates. Same for clicks via
	// RecordClick.
	IncrementImpressions(ctx context.Context, id int64) error

	// RecordClick increments the click counter and inserts the audit
	// row in one transaction: a crash never counts a click without
	// recording it, or vice versa.
	RecordClick(ctx context.Context, click *AdClick) error

	// Delete removes the ad and its click rows in one transaction.
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByPosition(ctx context.Context, position string) ([]*Advertisement, error) {
	var ads []*Advertisement
	err := r.db.WithContext(ctx).
		Where("position = ? AND is_active = ?", position, true).
		Find(&ads).Error
	return ads, err
}

func (r *repository) ListAll(ctx context.Context) ([]*Advertisement, error) {
	var ads []*Advertisement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Advertisement, error) {
	var ad Advertisement
	err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *repository) Create(ctx context.Context, ad *Advertisement) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *repository) Update(ctx context.Context, ad *Advertisement) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *repository) IncrementImpressions(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&Advertisement{}).
		Where("id = ?", id).
		UpdateColumn("impressions", gorm.Expr("impressions + ?", 1)).Error
}

func (r *repository) RecordClick(ctx context.Context, click *AdClick) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Advertisement{}).
			Where("id = ?", click.AdvertisementID).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAdNotFound
		}
		return tx.Create(click).Error
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advertisement_id = ?", id).Delete(&AdClick{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Advertisement{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAdNotFound
		}
		return nil
	})
}
