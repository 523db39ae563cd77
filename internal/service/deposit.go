package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
)

type DepositService interface {
	Deposit(ctx context.Context, cmd DepositCommand) (DepositResult, error)
}

type depositService struct {
	txManager       repository.TxManager
	userRepo        repository.UserRepository
	machineRepo     repository.MachineRepository
	transactionRepo repository.TransactionRepository
	metrics         *metrics.Metrics
	log             *zap.Logger
}

func NewDepositService(txManager repository.TxManager, userRepo repository.UserRepository,
	machineRepo repository.MachineRepository, transactionRepo repository.TransactionRepository,
	metrics *metrics.Metrics, log *zap.Logger) DepositService {
	return &depositService{
		txManager:       txManager,
		userRepo:        userRepo,
		machineRepo:     machineRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		log:             log,
	}
}

// Deposit converts deposited bottles into points. The machine-side capacity
// check and increments happen in a single conditional UPDATE, so two
// concurrent deposits can never overrun the machine: the loser of the race
// sees zero rows affected and the whole transaction rolls back.
func (s *depositService) Deposit(ctx context.Context, cmd DepositCommand) (DepositResult, error) {
	start := time.Now()

	user, err := s.userRepo.FindByUserID(cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return DepositResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return DepositResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	machine, err := s.machineRepo.FindByMachineID(cmd.MachineID)
	if err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return DepositResult{}, NewServiceError(constants.ErrCodeMachineNotFound, err)
		}
		return DepositResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if subtle.ConstantTimeCompare([]byte(machine.APIKey), []byte(cmd.MachineKey)) != 1 {
		return DepositResult{}, NewServiceError(constants.ErrCodeMachineKeyInvalid,
			errors.New("machine key mismatch"))
	}

	if cmd.BottleCount > machine.AvailableSpace() {
		return DepositResult{}, NewServiceError(constants.ErrCodeCapacityExceeded,
			capacityError(machine.AvailableSpace(), cmd.BottleCount))
	}

	earnedPoints := cmd.BottleCount * cmd.PointsPerBottle

	transaction := model.Transaction{
		UserID:    user.UserID,
		Type:      model.TxTypeEarn,
		Points:    earnedPoints,
		Bottles:   cmd.BottleCount,
		MachineID: &machine.MachineID,
		CreatedAt: time.Now(),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.machineRepo.Deposit(ctx, cmd.MachineID, cmd.BottleCount); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				// Lost a race with a concurrent deposit since the read above.
				return NewServiceError(constants.ErrCodeCapacityExceeded,
					capacityError(machine.AvailableSpace(), cmd.BottleCount))
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := s.userRepo.AddPointsAndBottles(ctx, user.UserID, earnedPoints, cmd.BottleCount); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := s.transactionRepo.Create(ctx, &transaction); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return nil
	})

	if err != nil {
		s.log.Error("Deposit failed",
			zap.String("machine_id", cmd.MachineID),
			zap.String("user_id", cmd.UserID),
			zap.Int64("bottles", cmd.BottleCount),
			zap.Error(err))
		s.metrics.RecordDeposit("error")
		return DepositResult{}, err
	}

	machineBottles := machine.CurrentBottles + cmd.BottleCount

	s.log.Info("Deposit accrued",
		zap.String("machine_id", cmd.MachineID),
		zap.String("user_id", cmd.UserID),
		zap.Int64("bottles", cmd.BottleCount),
		zap.Int64("earned_points", earnedPoints),
		zap.Duration("duration", time.Since(start)))
	s.metrics.RecordDeposit("success")

	return DepositResult{
		EarnedPoints:          earnedPoints,
		BottlesAdded:          cmd.BottleCount,
		UserTotalPoints:       user.Points + earnedPoints,
		UserTotalBottles:      user.Bottles + cmd.BottleCount,
		MachineCurrentBottles: machineBottles,
		MachineAvailableSpace: machine.MaxCapacity - machineBottles,
		MachineIsFull:         machineBottles >= machine.MaxCapacity,
		TransactionID:         transaction.ID,
	}, nil
}

func capacityError(available, requested int64) error {
	return fmt.Errorf("machine has space for %d bottles, requested %d", available, requested)
}
