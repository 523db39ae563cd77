package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
)

type MachineService interface {
	Add(ctx context.Context, cmd AddMachineCommand) (AddMachineResult, error)
	Empty(ctx context.Context, machineID string) (EmptyMachineResult, error)
	List() ([]MachineView, error)
}

type machineService struct {
	machineRepo repository.MachineRepository
	log         *zap.Logger
}

func NewMachineService(machineRepo repository.MachineRepository, log *zap.Logger) MachineService {
	return &machineService{machineRepo: machineRepo, log: log}
}

func (s *machineService) Add(ctx context.Context, cmd AddMachineCommand) (AddMachineResult, error) {
	machine := model.Machine{
		MachineID:   cmd.MachineID,
		APIKey:      uuid.NewString(),
		Name:        cmd.Name,
		City:        cmd.City,
		Lat:         cmd.Lat,
		Lng:         cmd.Lng,
		MaxCapacity: cmd.MaxCapacity,
		CreatedAt:   time.Now(),
	}

	if err := s.machineRepo.Create(ctx, &machine); err != nil {
		if errors.Is(err, repository.ErrMachineExists) {
			return AddMachineResult{}, NewServiceError(constants.ErrCodeMachineExisted, err)
		}
		return AddMachineResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.log.Info("Machine registered",
		zap.String("machine_id", machine.MachineID),
		zap.String("city", machine.City),
		zap.Int64("max_capacity", machine.MaxCapacity))

	// The key is shown once at registration so it can be provisioned into
	// the physical machine.
	return AddMachineResult{Machine: machine, APIKey: machine.APIKey}, nil
}

func (s *machineService) Empty(ctx context.Context, machineID string) (EmptyMachineResult, error) {
	machine, err := s.machineRepo.FindByMachineID(machineID)
	if err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return EmptyMachineResult{}, NewServiceError(constants.ErrCodeMachineNotFound, err)
		}
		return EmptyMachineResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	collected := machine.CurrentBottles

	if err := s.machineRepo.Empty(ctx, machineID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return EmptyMachineResult{}, NewServiceError(constants.ErrCodeMachineNotFound, err)
		}
		return EmptyMachineResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.log.Info("Machine emptied",
		zap.String("machine_id", machineID),
		zap.Int64("bottles_collected", collected))

	return EmptyMachineResult{
		MachineID:        machine.MachineID,
		Name:             machine.Name,
		BottlesCollected: collected,
	}, nil
}

func (s *machineService) List() ([]MachineView, error) {
	machines, err := s.machineRepo.List()
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	views := make([]MachineView, 0, len(machines))
	for _, m := range machines {
		views = append(views, NewMachineView(m))
	}
	return views, nil
}
