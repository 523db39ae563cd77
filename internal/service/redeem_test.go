package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/mocks"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
	"github.com/praneswara/polygreen/internal/service"
)

func TestRedeem_Redeem(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.RedeemCommand{
		UserID:  "PG000007",
		BrandID: 3,
		Points:  150,
	}

	user := model.User{ID: 7, UserID: "PG000007", Name: "Asha", Points: 150}
	brand := model.RewardBrand{ID: 3, Name: "Amazon Pay", MinPoints: 100, Active: true}

	t.Run("redeems full balance and issues coupon", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		mockBrandRepo.On("FindByID", cmd.BrandID).Return(brand, nil)
		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockUserRepo.On("DeductPoints", mock.AnythingOfType("*context.valueCtx"),
			user.UserID, cmd.Points).Return(nil)

		mockTransactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.UserID == user.UserID &&
					tx.Type == model.TxTypeRedeem &&
					tx.Points == cmd.Points &&
					tx.BrandID != nil && *tx.BrandID == brand.ID
			})).Run(func(args mock.Arguments) {
			tx := args.Get(1).(*model.Transaction)
			tx.ID = 42
		}).Return(nil)

		result, err := svc.Redeem(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, "AMA-PG000007-0042", result.Coupon)
		assert.Equal(t, int64(0), result.PointsLeft)
		assert.Equal(t, int64(42), result.TransactionID)

		mockUserRepo.AssertExpectations(t)
		mockBrandRepo.AssertExpectations(t)
		mockTransactionRepo.AssertExpectations(t)
		mockTxManager.AssertExpectations(t)
	})

	t.Run("rejects redemption below brand threshold", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		small := cmd
		small.Points = 50

		mockBrandRepo.On("FindByID", cmd.BrandID).Return(brand, nil)

		_, err := svc.Redeem(context.Background(), small)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeBelowThreshold, svcErr.Code)

		mockUserRepo.AssertNotCalled(t, "FindByUserID", mock.Anything)
		mockTxManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive brand", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		inactive := brand
		inactive.Active = false

		mockBrandRepo.On("FindByID", cmd.BrandID).Return(inactive, nil)

		_, err := svc.Redeem(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeBrandInactive, svcErr.Code)
	})

	t.Run("returns error for unknown brand", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		mockBrandRepo.On("FindByID", cmd.BrandID).
			Return(model.RewardBrand{}, repository.ErrBrandNotFound)

		_, err := svc.Redeem(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeBrandNotFound, svcErr.Code)
	})

	t.Run("reports insufficient balance when conditional deduct affects no rows", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		mockBrandRepo.On("FindByID", cmd.BrandID).Return(brand, nil)
		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockUserRepo.On("DeductPoints", mock.AnythingOfType("*context.valueCtx"),
			user.UserID, cmd.Points).Return(repository.ErrNoRowsAffected)

		_, err := svc.Redeem(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeInsufficientBalance, svcErr.Code)

		mockTransactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("returns error when ledger write fails", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockBrandRepo := &mocks.BrandRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewRedeemService(mockTxManager, mockUserRepo, mockBrandRepo,
			mockTransactionRepo, testMetrics, logger)

		mockBrandRepo.On("FindByID", cmd.BrandID).Return(brand, nil)
		mockUserRepo.On("FindByUserID", cmd.UserID).Return(user, nil)

		mockTxManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)

		mockUserRepo.On("DeductPoints", mock.AnythingOfType("*context.valueCtx"),
			user.UserID, cmd.Points).Return(nil)
		mockTransactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.Transaction")).Return(errors.New("connection reset"))

		_, err := svc.Redeem(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeOperationFailed, svcErr.Code)
	})
}

func TestRedeem_Brands(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns active brands", func(t *testing.T) {
		mockBrandRepo := &mocks.BrandRepository{}

		svc := service.NewRedeemService(&mocks.TxManager{}, &mocks.UserRepository{},
			mockBrandRepo, &mocks.TransactionRepository{}, testMetrics, logger)

		brands := []model.RewardBrand{
			{ID: 1, Name: "Amazon", MinPoints: 200, Active: true},
			{ID: 2, Name: "Swiggy", MinPoints: 100, Active: true},
		}
		mockBrandRepo.On("ListActive").Return(brands, nil)

		result, err := svc.Brands()

		assert.NoError(t, err)
		assert.Equal(t, brands, result)
	})
}

func TestCouponCode(t *testing.T) {
	t.Run("uppercases and truncates the brand prefix", func(t *testing.T) {
		assert.Equal(t, "AMA-PG000007-0042", service.CouponCode("Amazon Pay", "PG000007", 42))
	})

	t.Run("keeps short brand names whole", func(t *testing.T) {
		assert.Equal(t, "QX-PG000001-0001", service.CouponCode("qx", "PG000001", 1))
	})

	t.Run("is deterministic for the same inputs", func(t *testing.T) {
		first := service.CouponCode("Flipkart", "PG000002", 7)
		second := service.CouponCode("Flipkart", "PG000002", 7)
		assert.Equal(t, first, second)
		assert.Equal(t, "FLI-PG000002-0007", first)
	})
}
