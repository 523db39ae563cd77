package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/praneswara/polygreen/internal/model"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) AssignUserID(ctx context.Context, id int64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *UserRepository) FindByUserID(userID string) (model.User, error) {
	args := m.Called(userID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserRepository) FindByMobile(mobile string) (model.User, error) {
	args := m.Called(mobile)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserRepository) AddPointsAndBottles(ctx context.Context, userID string, points, bottles int64) error {
	args := m.Called(ctx, userID, points, bottles)
	return args.Error(0)
}

func (m *UserRepository) DeductPoints(ctx context.Context, userID string, points int64) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

func (m *UserRepository) List() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
