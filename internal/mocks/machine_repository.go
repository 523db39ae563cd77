package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/praneswara/polygreen/internal/model"
)

type MachineRepository struct {
	mock.Mock
}

func (m *MachineRepository) Create(ctx context.Context, machine *model.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MachineRepository) FindByMachineID(machineID string) (model.Machine, error) {
	args := m.Called(machineID)
	return args.Get(0).(model.Machine), args.Error(1)
}

func (m *MachineRepository) Deposit(ctx context.Context, machineID string, bottles int64) error {
	args := m.Called(ctx, machineID, bottles)
	return args.Error(0)
}

func (m *MachineRepository) Empty(ctx context.Context, machineID string, at time.Time) error {
	args := m.Called(ctx, machineID, at)
	return args.Error(0)
}

func (m *MachineRepository) List() ([]model.Machine, error) {
	args := m.Called()
	return args.Get(0).([]model.Machine), args.Error(1)
}

func (m *MachineRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
