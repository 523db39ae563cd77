package main

import (
	"context"
	"errors"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/api"
	"github.com/praneswara/polygreen/internal/api/middleware"
	"github.com/praneswara/polygreen/internal/api/validator"
	v1 "github.com/praneswara/polygreen/internal/api/v1"
	"github.com/praneswara/polygreen/internal/config"
	"github.com/praneswara/polygreen/internal/metrics"
	"github.com/praneswara/polygreen/internal/model"
	"github.com/praneswara/polygreen/internal/otp"
	"github.com/praneswara/polygreen/internal/repository"
	"github.com/praneswara/polygreen/internal/service"
	"github.com/praneswara/polygreen/pkg/httpclient"
	"github.com/praneswara/polygreen/pkg/postgres"
	"github.com/praneswara/polygreen/pkg/smsprovider"
	"github.com/praneswara/polygreen/pkg/token"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			newDatabase,
			newFiberApp,
			newValidator,
			newTokenManager,
			newSMSProvider,
			otp.NewRedisClient,
			otp.NewRedisStore,
			metrics.NewMetrics,
			repository.NewTransactionManager,
			repository.NewUserRepository,
			repository.NewMachineRepository,
			repository.NewTransactionRepository,
			repository.NewBrandRepository,
			service.NewAuthService,
			service.NewDepositService,
			service.NewRedeemService,
			service.NewMachineService,
			service.NewReportService,
			newOTPService,
			newHandler,
		),
		fx.Invoke(migrate, seedBrands, startServer),
	).Run()
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return postgres.NewConnection(cfg.Database, logger)
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
}

func newValidator() validator.IXValidator {
	return validator.NewXValidator(govalidator.New())
}

// The admin binary never touches tokens, so the secret is required here
// rather than in config.Load.
func newTokenManager(cfg *config.Config) (*token.Manager, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return token.NewManager(cfg.JWT), nil
}

func newSMSProvider(cfg *config.Config) smsprovider.Provider {
	return smsprovider.NewSMSProvider(cfg.SMS, httpclient.NewHTTPClient(cfg.SMS.Timeout))
}

func newOTPService(store otp.Store, provider smsprovider.Provider, cfg *config.Config,
	m *metrics.Metrics, logger *zap.Logger) service.OTPService {
	return service.NewOTPService(store, provider, cfg.SMS.Enable, cfg.OTP.TTL, m, logger)
}

func newHandler(logger *zap.Logger, authService service.AuthService, depositService service.DepositService,
	redeemService service.RedeemService, machineService service.MachineService,
	reportService service.ReportService, otpService service.OTPService,
	xValidator validator.IXValidator, m *metrics.Metrics, cfg *config.Config) *v1.Handler {
	return v1.NewHandler(logger, authService, depositService, redeemService, machineService,
		reportService, otpService, xValidator, m, cfg.Points.PerBottle)
}

func migrate(db *gorm.DB, logger *zap.Logger) error {
	err := db.AutoMigrate(&model.User{}, &model.Machine{}, &model.Transaction{}, &model.RewardBrand{})
	if err != nil {
		logger.Error("Failed to migrate schema", zap.Error(err))
		return err
	}
	return nil
}

func seedBrands(brandRepo repository.BrandRepository, logger *zap.Logger) error {
	brands := []model.RewardBrand{
		{Name: "Amazon", MinPoints: 200, Active: true},
		{Name: "Flipkart", MinPoints: 150, Active: true},
		{Name: "Swiggy", MinPoints: 100, Active: true},
	}

	if err := brandRepo.SeedIfEmpty(context.Background(), brands); err != nil {
		logger.Error("Failed to seed reward brands", zap.Error(err))
		return err
	}
	return nil
}

func startServer(app *fiber.App, handler *v1.Handler, tokens *token.Manager, cfg *config.Config,
	db *gorm.DB, m *metrics.Metrics, logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler, tokens)

	collector := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(15 * time.Second)
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("API server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
