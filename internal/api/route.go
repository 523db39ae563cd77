package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praneswara/polygreen/internal/api/middleware"
	v1 "github.com/praneswara/polygreen/internal/api/v1"
	"github.com/praneswara/polygreen/pkg/token"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, tokens *token.Manager) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := middleware.BearerAuth(tokens)

	api := app.Group("/api")
	api.Post("/auth/register", handler.Register)
	api.Post("/auth/login", handler.Login)

	api.Get("/users/me", auth, handler.Me)
	api.Get("/points/summary", auth, handler.PointsSummary)
	api.Get("/transactions", auth, handler.Transactions)
	api.Get("/redeem/brands", auth, handler.Brands)
	api.Post("/redeem/request", auth, handler.RedeemRequest)

	api.Get("/machines", handler.Machines)
	api.Post("/machine/insert", handler.MachineInsert)
	api.Post("/user/fetch", handler.UserFetch)

	app.Post("/send_otp", handler.SendOTP)
	app.Post("/verify_otp", handler.VerifyOTP)
}
