package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/repository"
)

type RedeemService interface {
	Brands() ([]model.RewardBrand, error)
	Redeem(ctx context.Context, cmd RedeemCommand) (RedeemResult, error)
}

type redeemService struct {
	txManager       repository.TxManager
	userRepo        repository.UserRepository
	brandRepo       repository.BrandRepository
	transactionRepo repository.TransactionRepository
	metrics         *metrics.Metrics
	log             *zap.Logger
}

func NewRedeemService(txManager repository.TxManager, userRepo repository.UserRepository,
	brandRepo repository.BrandRepository, transactionRepo repository.TransactionRepository,
	metrics *metrics.Metrics, log *zap.Logger) RedeemService {
	return &redeemService{
		txManager:       txManager,
		userRepo:        userRepo,
		brandRepo:       brandRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		log:             log,
	}
}

func (s *redeemService) Brands() ([]model.RewardBrand, error) {
	brands, err := s.brandRepo.ListActive()
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	return brands, nil
}

// Redeem exchanges points for a brand coupon. The balance check rides inside
// the conditional decrement, so concurrent redemptions cannot spend the same
// points twice.
func (s *redeemService) Redeem(ctx context.Context, cmd RedeemCommand) (RedeemResult, error) {
	brand, err := s.brandRepo.FindByID(cmd.BrandID)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return RedeemResult{}, NewServiceError(constants.ErrCodeBrandNotFound, err)
		}
		return RedeemResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if !brand.Active {
		return RedeemResult{}, NewServiceError(constants.ErrCodeBrandInactive,
			fmt.Errorf("brand %q is not active", brand.Name))
	}

	if cmd.Points < brand.MinPoints {
		return RedeemResult{}, NewServiceError(constants.ErrCodeBelowThreshold,
			fmt.Errorf("brand %q requires at least %d points, requested %d", brand.Name, brand.MinPoints, cmd.Points))
	}

	user, err := s.userRepo.FindByUserID(cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RedeemResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return RedeemResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	transaction := model.Transaction{
		UserID:    user.UserID,
		Type:      model.TxTypeRedeem,
		Points:    cmd.Points,
		BrandID:   &brand.ID,
		CreatedAt: time.Now(),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.DeductPoints(ctx, user.UserID, cmd.Points); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeInsufficientBalance,
					fmt.Errorf("balance below %d points", cmd.Points))
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := s.transactionRepo.Create(ctx, &transaction); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return nil
	})

	if err != nil {
		s.log.Error("Redemption failed",
			zap.String("user_id", cmd.UserID),
			zap.Int64("brand_id", cmd.BrandID),
			zap.Int64("points", cmd.Points),
			zap.Error(err))
		s.metrics.RecordRedemption("error")
		return RedeemResult{}, err
	}

	coupon := CouponCode(brand.Name, user.UserID, transaction.ID)

	s.log.Info("Points redeemed",
		zap.String("user_id", cmd.UserID),
		zap.String("brand", brand.Name),
		zap.Int64("points", cmd.Points),
		zap.String("coupon", coupon))
	s.metrics.RecordRedemption("success")

	return RedeemResult{
		Coupon:        coupon,
		PointsLeft:    user.Points - cmd.Points,
		TransactionID: transaction.ID,
	}, nil
}

// CouponCode is deterministic given the brand name, the user and the ledger
// row, e.g. "AMZ-PG000007-0042". Uniqueness follows from the transaction id.
func CouponCode(brandName, userID string, transactionID int64) string {
	prefix := strings.ToUpper(strings.ReplaceAll(brandName, " ", ""))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, userID, transactionID)
}
