package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/praneswara/polygreen/internal/constants"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{constants.ErrCodeValidationFailed, 400},
		{constants.ErrCodeUserExisted, 400},
		{constants.ErrCodeMachineExisted, 400},
		{constants.ErrCodeCapacityExceeded, 400},
		{constants.ErrCodeInsufficientBalance, 400},
		{constants.ErrCodeAuthFailed, 401},
		{constants.ErrCodeMachineKeyInvalid, 401},
		{constants.ErrCodeUserNotFound, 404},
		{constants.ErrCodeMachineNotFound, 404},
		{constants.ErrCodeBrandNotFound, 404},
		{constants.ErrCodeOTPSendFailed, 502},
		{constants.ErrCodeOperationFailed, 500},
		{"SOMETHING_ELSE", 500},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, constants.GetHTTPStatus(tt.code))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	t.Run("returns mapped message", func(t *testing.T) {
		assert.Equal(t, "mobile number already registered",
			constants.GetErrorMessage(constants.ErrCodeUserExisted))
	})

	t.Run("falls back to internal error for unknown codes", func(t *testing.T) {
		assert.Equal(t, constants.GetErrorMessage(constants.ErrCodeInternalError),
			constants.GetErrorMessage("SOMETHING_ELSE"))
	})
}
