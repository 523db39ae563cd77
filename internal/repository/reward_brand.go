package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/model"
)

type BrandRepository interface {
	FindByID(id int64) (model.RewardBrand, error)
	ListActive() ([]model.RewardBrand, error)
	SeedIfEmpty(ctx context.Context, brands []model.RewardBrand) error
}

type brand struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brand{db: db}
}

func (r *brand) FindByID(id int64) (model.RewardBrand, error) {
	var b model.RewardBrand
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RewardBrand{}, ErrBrandNotFound
		}
		return model.RewardBrand{}, err
	}
	return b, nil
}

func (r *brand) ListActive() ([]model.RewardBrand, error) {
	var brands []model.RewardBrand
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *brand) SeedIfEmpty(ctx context.Context, brands []model.RewardBrand) error {
	db := GetTx(ctx, r.db)

	var count int64
	if err := db.Model(&model.RewardBrand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Create(&brands).Error
}
