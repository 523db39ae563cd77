package v1

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required,min=7,max=15,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RedeemRequest struct {
	BrandID int64 `json:"brand_id" validate:"required"`
	Points  int64 `json:"points" validate:"required,min=1"`
}

type MachineInsertRequest struct {
	MachineID       string `json:"machine_id" validate:"required"`
	UserID          string `json:"user_id" validate:"required"`
	BottleCount     int64  `json:"bottle_count" validate:"required,min=1"`
	PointsPerBottle int64  `json:"points_per_bottle" validate:"omitempty,min=1"`
}

type UserFetchRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=15"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}
