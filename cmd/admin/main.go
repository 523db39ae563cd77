package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praneswara/polygreen/internal/admin"
	"github.com/praneswara/polygreen/internal/config"
	"github.com/praneswara/polygreen/internal/repository"
	"github.com/praneswara/polygreen/internal/service"
	"github.com/praneswara/polygreen/pkg/postgres"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			newDatabase,
			newFiberApp,
			admin.NewSessionStore,
			repository.NewUserRepository,
			repository.NewMachineRepository,
			repository.NewTransactionRepository,
			service.NewMachineService,
			service.NewReportService,
			admin.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return postgres.NewConnection(cfg.Database, logger)
}

func newFiberApp() *fiber.App {
	engine := html.New("./web/templates", ".html")
	return fiber.New(fiber.Config{
		Views: engine,
	})
}

func startServer(app *fiber.App, handler *admin.Handler, cfg *config.Config,
	logger *zap.Logger, lc fx.Lifecycle) {
	admin.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.Admin.Port); err != nil {
					logger.Error("Admin server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
