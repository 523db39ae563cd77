package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/praneswara/polygreen/internal/api/middleware"
	"github.com/praneswara/polygreen/internal/api/validator"
	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/service"
)

const machineKeyHeader = "X-Machine-Key"

type Handler struct {
	logger          *zap.Logger
	authService     service.AuthService
	depositService  service.DepositService
	redeemService   service.RedeemService
	machineService  service.MachineService
	reportService   service.ReportService
	otpService      service.OTPService
	XValidator      validator.IXValidator
	metrics         *metrics.Metrics
	pointsPerBottle int64
}

func NewHandler(logger *zap.Logger, authService service.AuthService, depositService service.DepositService,
	redeemService service.RedeemService, machineService service.MachineService,
	reportService service.ReportService, otpService service.OTPService,
	XValidator validator.IXValidator, metrics *metrics.Metrics, pointsPerBottle int64) *Handler {
	return &Handler{
		logger:          logger,
		authService:     authService,
		depositService:  depositService,
		redeemService:   redeemService,
		machineService:  machineService,
		reportService:   reportService,
		otpService:      otpService,
		XValidator:      XValidator,
		metrics:         metrics,
		pointsPerBottle: pointsPerBottle,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var request RegisterRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	cmd := service.RegisterCommand{
		Name:     request.Name,
		Mobile:   request.Mobile,
		Password: request.Password,
	}

	user, err := h.authService.Register(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.metrics.RecordUserRegistered()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registered",
		"user_id": user.UserID,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var request LoginRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	cmd := service.LoginCommand{Mobile: request.Mobile, Password: request.Password}

	result, err := h.authService.Login(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (h *Handler) PointsSummary(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	summary, err := h.reportService.PointsSummary(userID)
	if err != nil {
		return err
	}

	return c.JSON(summary)
}

func (h *Handler) Transactions(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	items, err := h.reportService.UserTransactions(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) Brands(c *fiber.Ctx) error {
	items, err := h.redeemService.Brands()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) RedeemRequest(c *fiber.Ctx) error {
	var request RedeemRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	userID, _ := c.Locals(middleware.LocalUserID).(string)

	cmd := service.RedeemCommand{
		UserID:  userID,
		BrandID: request.BrandID,
		Points:  request.Points,
	}

	result, err := h.redeemService.Redeem(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Redeem successful",
		"coupon":      result.Coupon,
		"points_left": result.PointsLeft,
	})
}

func (h *Handler) Machines(c *fiber.Ctx) error {
	items, err := h.machineService.List()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *Handler) MachineInsert(c *fiber.Ctx) error {
	var request MachineInsertRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	pointsPerBottle := request.PointsPerBottle
	if pointsPerBottle == 0 {
		pointsPerBottle = h.pointsPerBottle
	}

	cmd := service.DepositCommand{
		MachineID:       request.MachineID,
		MachineKey:      c.Get(machineKeyHeader),
		UserID:          request.UserID,
		BottleCount:     request.BottleCount,
		PointsPerBottle: pointsPerBottle,
	}

	result, err := h.depositService.Deposit(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":                 "Points and bottles added successfully",
		"earned_points":           result.EarnedPoints,
		"bottles_added":           result.BottlesAdded,
		"user_total_points":       result.UserTotalPoints,
		"user_total_bottles":      result.UserTotalBottles,
		"machine_current_bottles": result.MachineCurrentBottles,
		"machine_available_space": result.MachineAvailableSpace,
		"machine_is_full":         result.MachineIsFull,
	})
}

func (h *Handler) UserFetch(c *fiber.Ctx) error {
	var request UserFetchRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	user, err := h.authService.FetchByMobile(request.Mobile)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user_id": user.UserID,
		"name":    user.Name,
		"mobile":  user.Mobile,
		"points":  user.Points,
	})
}

func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var request SendOTPRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	if err := h.otpService.Send(c.UserContext(), request.Phone); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "OTP sent"})
}

func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var request VerifyOTPRequest
	if result := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); result.Code != "" {
		return c.JSON(result)
	}

	if err := h.otpService.Verify(c.UserContext(), request.Phone, request.OTP); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "OTP verified"})
}
