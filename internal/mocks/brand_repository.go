package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/praneswara/polygreen/internal/model"
)

type BrandRepository struct {
	mock.Mock
}

func (m *BrandRepository) FindByID(id int64) (model.RewardBrand, error) {
	args := m.Called(id)
	return args.Get(0).(model.RewardBrand), args.Error(1)
}

func (m *BrandRepository) ListActive() ([]model.RewardBrand, error) {
	args := m.Called()
	return args.Get(0).([]model.RewardBrand), args.Error(1)
}

func (m *BrandRepository) SeedIfEmpty(ctx context.Context, brands []model.RewardBrand) error {
	args := m.Called(ctx, brands)
	return args.Error(0)
}
