package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeAuthFailed          = "AUTH_FAILED"
	ErrCodeTokenInvalid        = "TOKEN_INVALID"
	ErrCodeTokenExpired        = "TOKEN_EXPIRED"
	ErrCodeMachineKeyInvalid   = "MACHINE_KEY_INVALID"
	ErrCodeUserExisted         = "USER_ALREADY_EXISTS"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeMachineExisted      = "MACHINE_ALREADY_EXISTS"
	ErrCodeMachineNotFound     = "MACHINE_NOT_FOUND"
	ErrCodeBrandNotFound       = "BRAND_NOT_FOUND"
	ErrCodeBrandInactive       = "BRAND_INACTIVE"
	ErrCodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	ErrCodeBelowThreshold      = "BELOW_THRESHOLD"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeOTPInvalid          = "OTP_INVALID"
	ErrCodeOTPExpired          = "OTP_EXPIRED"
	ErrCodeOTPSendFailed       = "OTP_SEND_FAILED"
	ErrCodeOperationFailed     = "OPERATION_FAILED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

var errorMessages = map[string]string{
	ErrCodeValidationFailed:    "request validation failed",
	ErrCodeInvalidRequestBody:  "failed to parse request body",
	ErrCodeAuthFailed:          "invalid mobile or password",
	ErrCodeTokenInvalid:        "invalid token",
	ErrCodeTokenExpired:        "token has expired",
	ErrCodeMachineKeyInvalid:   "invalid machine key",
	ErrCodeUserExisted:         "mobile number already registered",
	ErrCodeUserNotFound:        "user not found",
	ErrCodeMachineExisted:      "machine id already exists",
	ErrCodeMachineNotFound:     "machine not found",
	ErrCodeBrandNotFound:       "reward brand not found",
	ErrCodeBrandInactive:       "reward brand is not active",
	ErrCodeCapacityExceeded:    "machine does not have enough space",
	ErrCodeBelowThreshold:      "requested points are below the brand minimum",
	ErrCodeInsufficientBalance: "insufficient points balance",
	ErrCodeOTPInvalid:          "invalid otp code",
	ErrCodeOTPExpired:          "otp code has expired",
	ErrCodeOTPSendFailed:       "failed to send otp",
	ErrCodeOperationFailed:     "operation failed",
	ErrCodeInternalError:       "Internal server error",
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return errorMessages[ErrCodeInternalError]
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody, ErrCodeBrandInactive,
		ErrCodeCapacityExceeded, ErrCodeBelowThreshold, ErrCodeInsufficientBalance,
		ErrCodeOTPInvalid, ErrCodeOTPExpired, ErrCodeUserExisted, ErrCodeMachineExisted:
		return 400
	case ErrCodeAuthFailed, ErrCodeTokenInvalid, ErrCodeTokenExpired, ErrCodeMachineKeyInvalid:
		return 401
	case ErrCodeUserNotFound, ErrCodeMachineNotFound, ErrCodeBrandNotFound:
		return 404
	case ErrCodeOTPSendFailed:
		return 502
	default:
		return 500
	}
}
