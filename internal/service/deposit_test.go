package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/mocks"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
	"github.com/praneswara/polygreen/internal/service"
)

// promauto registers against the default registry, so the test binary gets
// exactly one Metrics instance.
var testMetrics = metrics.NewMetrics()

func TestDeposit_Deposit(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.DepositCommand{
		MachineID:       "MCH-001",
		MachineKey:      "machine-secret-key",
		UserID:          "PG000007",
		BottleCount:     5,
		PointsPerBottle: 10,
	}

	user := model.User{ID: 7, UserID: "PG000007", Name: "Asha", Points: 120, Bottles: 12}
	machine := model.Machine{
		ID:             1,
		MachineID:      "MCH-001",
		APIKey:         "machine-secret-key",
		CurrentBottles: 95,
		MaxCapacity:    100,
		TotalBottles:   300,
	}

	t.Run("accrues points and fills the machine", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).Return(machine, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockMachineRepo.On("Deposit", mock.AnythingOfType("*context.valueCtx"),
			cmd.MachineID, cmd.BottleCount).Return(nil)

		mockUserRepo.On("AddPointsAndBottles", mock.AnythingOfType("*context.valueCtx"),
			user.UserID, int64(50), cmd.BottleCount).Return(nil)

		mockTransactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.UserID == user.UserID &&
					tx.Type == model.TxTypeEarn &&
					tx.Points == 50 &&
					tx.Bottles == 5 &&
					tx.MachineID != nil && *tx.MachineID == machine.MachineID
			})).Run(func(args mock.Arguments) {
			tx := args.Get(1).(*model.Transaction)
			tx.ID = 42
		}).Return(nil)

		result, err := svc.Deposit(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(50), result.EarnedPoints)
		assert.Equal(t, int64(5), result.BottlesAdded)
		assert.Equal(t, int64(170), result.UserTotalPoints)
		assert.Equal(t, int64(17), result.UserTotalBottles)
		assert.Equal(t, int64(100), result.MachineCurrentBottles)
		assert.Equal(t, int64(0), result.MachineAvailableSpace)
		assert.True(t, result.MachineIsFull)
		assert.Equal(t, int64(42), result.TransactionID)

		mockUserRepo.AssertExpectations(t)
		mockMachineRepo.AssertExpectations(t)
		mockTransactionRepo.AssertExpectations(t)
		mockTxManager.AssertExpectations(t)
	})

	t.Run("rejects deposit that exceeds available space", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		oversized := cmd
		oversized.BottleCount = 10

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).Return(machine, nil)

		_, err := svc.Deposit(context.Background(), oversized)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeCapacityExceeded, svcErr.Code)
		assert.Contains(t, err.Error(), "space for 5 bottles")

		mockTxManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
		mockMachineRepo.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects mismatched machine key", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		badKey := cmd
		badKey.MachineKey = "wrong-key"

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).Return(machine, nil)

		_, err := svc.Deposit(context.Background(), badKey)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeMachineKeyInvalid, svcErr.Code)

		mockTxManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("returns error when user does not exist", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		mockUserRepo.On("FindByUserID", cmd.UserID).
			Return(model.User{}, repository.ErrUserNotFound)

		_, err := svc.Deposit(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeUserNotFound, svcErr.Code)
	})

	t.Run("returns error when machine does not exist", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).
			Return(model.Machine{}, repository.ErrMachineNotFound)

		_, err := svc.Deposit(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeMachineNotFound, svcErr.Code)
	})

	t.Run("reports capacity exceeded when concurrent deposit wins the race", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).Return(machine, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockMachineRepo.On("Deposit", mock.AnythingOfType("*context.valueCtx"),
			cmd.MachineID, cmd.BottleCount).Return(repository.ErrNoRowsAffected)

		_, err := svc.Deposit(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeCapacityExceeded, svcErr.Code)

		mockUserRepo.AssertNotCalled(t, "AddPointsAndBottles",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTransactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("returns error when ledger write fails", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockMachineRepo := &mocks.MachineRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewDepositService(mockTxManager, mockUserRepo, mockMachineRepo,
			mockTransactionRepo, testMetrics, logger)

		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)
		mockMachineRepo.On("FindByMachineID", cmd.MachineID).Return(machine, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockMachineRepo.On("Deposit", mock.AnythingOfType("*context.valueCtx"),
			cmd.MachineID, cmd.BottleCount).Return(nil)
		mockUserRepo.On("AddPointsAndBottles", mock.AnythingOfType("*context.valueCtx"),
			user.UserID, int64(50), cmd.BottleCount).Return(nil)
		mockTransactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.Transaction")).Return(errors.New("connection reset"))

		_, err := svc.Deposit(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeOperationFailed, svcErr.Code)
	})
}
