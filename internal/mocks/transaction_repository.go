package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/praneswara/polygreen/internal/model"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) ListByUserID(userID string, limit int) ([]model.Transaction, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListByMachineID(machineID string) ([]model.Transaction, error) {
	args := m.Called(machineID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) List(limit int) ([]model.Transaction, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
