package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/mocks"
	"github.com/praneswara/polygreen/internal/otp"
	"github.com/praneswara/polygreen/internal/service"
	"github.com/praneswara/polygreen/pkg/smsprovider"
)

const otpTTL = 5 * time.Minute

func TestOTP_Send(t *testing.T) {
	logger := zap.NewNop()

	t.Run("stores code and sends sms when enabled", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}
		mockProvider := &mocks.SMSProvider{}

		svc := service.NewOTPService(mockStore, mockProvider, true, otpTTL, testMetrics, logger)

		var stored string
		mockStore.On("Set", context.Background(), "9876543210",
			mock.MatchedBy(func(code string) bool {
				return len(code) == 6
			}), otpTTL).Run(func(args mock.Arguments) {
			stored = args.String(2)
		}).Return(nil)

		mockProvider.On("Send", context.Background(), "9876543210",
			mock.MatchedBy(func(text string) bool {
				return stored != "" && len(text) > 0
			})).Return(smsprovider.Response{MessageID: "msg-1", Status: "sent"}, nil)

		err := svc.Send(context.Background(), "9876543210")

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("skips sms when provider disabled", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}
		mockProvider := &mocks.SMSProvider{}

		svc := service.NewOTPService(mockStore, mockProvider, false, otpTTL, testMetrics, logger)

		mockStore.On("Set", context.Background(), "9876543210",
			mock.AnythingOfType("string"), otpTTL).Return(nil)

		err := svc.Send(context.Background(), "9876543210")

		assert.NoError(t, err)
		mockProvider.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns send failure when provider errors", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}
		mockProvider := &mocks.SMSProvider{}

		svc := service.NewOTPService(mockStore, mockProvider, true, otpTTL, testMetrics, logger)

		mockStore.On("Set", context.Background(), "9876543210",
			mock.AnythingOfType("string"), otpTTL).Return(nil)
		mockProvider.On("Send", context.Background(), "9876543210",
			mock.AnythingOfType("string")).
			Return(smsprovider.Response{}, errors.New(smsprovider.ErrorCodeTimeout))

		err := svc.Send(context.Background(), "9876543210")

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeOTPSendFailed, svcErr.Code)
	})
}

func TestOTP_Verify(t *testing.T) {
	logger := zap.NewNop()

	t.Run("accepts matching code and deletes it", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}

		svc := service.NewOTPService(mockStore, &mocks.SMSProvider{}, false, otpTTL, testMetrics, logger)

		mockStore.On("Get", context.Background(), "9876543210").Return("482913", nil)
		mockStore.On("Delete", context.Background(), "9876543210").Return(nil)

		err := svc.Verify(context.Background(), "9876543210", "482913")

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("rejects mismatched code and keeps it stored", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}

		svc := service.NewOTPService(mockStore, &mocks.SMSProvider{}, false, otpTTL, testMetrics, logger)

		mockStore.On("Get", context.Background(), "9876543210").Return("482913", nil)

		err := svc.Verify(context.Background(), "9876543210", "000000")

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeOTPInvalid, svcErr.Code)

		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("reports expiry when code is missing", func(t *testing.T) {
		mockStore := &mocks.OTPStore{}

		svc := service.NewOTPService(mockStore, &mocks.SMSProvider{}, false, otpTTL, testMetrics, logger)

		mockStore.On("Get", context.Background(), "9876543210").
			Return("", otp.ErrCodeNotFound)

		err := svc.Verify(context.Background(), "9876543210", "482913")

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeOTPExpired, svcErr.Code)
	})
}
