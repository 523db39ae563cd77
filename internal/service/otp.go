package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/otp"
	"github.com/praneswara/polygreen/pkg/smsprovider"
)

type OTPService interface {
	Send(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

type otpService struct {
	store    otp.Store
	provider smsprovider.Provider
	enabled  bool
	ttl      time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewOTPService(store otp.Store, provider smsprovider.Provider, enabled bool,
	ttl time.Duration, metrics *metrics.Metrics, log *zap.Logger) OTPService {
	return &otpService{
		store:    store,
		provider: provider,
		enabled:  enabled,
		ttl:      ttl,
		metrics:  metrics,
		log:      log,
	}
}

func (s *otpService) Send(ctx context.Context, phone string) error {
	code, err := generateCode()
	if err != nil {
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if err := s.store.Set(ctx, phone, code, s.ttl); err != nil {
		s.log.Error("Failed to store otp code", zap.String("phone", phone), zap.Error(err))
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if !s.enabled {
		// Development mode: no gateway configured, the code only hits the log.
		s.log.Info("SMS provider disabled, otp code not sent",
			zap.String("phone", phone),
			zap.String("code", code))
		s.metrics.RecordOTP("send", "skipped")
		return nil
	}

	text := fmt.Sprintf("Your Polygreen verification code is %s. It expires in %d minutes.",
		code, int(s.ttl.Minutes()))

	if _, err := s.provider.Send(ctx, phone, text); err != nil {
		s.log.Error("Failed to send otp",
			zap.String("phone", phone),
			zap.Error(err))
		s.metrics.RecordOTP("send", "error")
		return NewServiceError(constants.ErrCodeOTPSendFailed, err)
	}

	s.log.Info("OTP sent", zap.String("phone", phone))
	s.metrics.RecordOTP("send", "success")
	return nil
}

func (s *otpService) Verify(ctx context.Context, phone, code string) error {
	stored, err := s.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, otp.ErrCodeNotFound) {
			s.metrics.RecordOTP("verify", "expired")
			return NewServiceError(constants.ErrCodeOTPExpired, err)
		}
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		s.metrics.RecordOTP("verify", "invalid")
		return NewServiceError(constants.ErrCodeOTPInvalid, errors.New("otp mismatch"))
	}

	if err := s.store.Delete(ctx, phone); err != nil {
		s.log.Warn("Failed to delete verified otp code",
			zap.String("phone", phone),
			zap.Error(err))
	}

	s.metrics.RecordOTP("verify", "success")
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
