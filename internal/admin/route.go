package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
)

func SetupRoutes(app *fiber.App, handler *Handler) {
	// SESSION_SECRET must be a base64-encoded 32-byte key.
	if handler.cfg.SessionSecret != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: handler.cfg.SessionSecret}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/admin/dashboard")
	})

	app.Get("/admin/login", handler.LoginPage)
	app.Post("/admin/login", handler.Login)
	app.Get("/admin/logout", handler.Logout)

	admin := app.Group("/admin", handler.RequireAdmin)
	admin.Get("/dashboard", handler.Dashboard)
	admin.Get("/users", handler.Users)
	admin.Get("/users/:user_id", handler.UserDetail)
	admin.Get("/machines", handler.Machines)
	admin.Get("/machines/add", handler.AddMachinePage)
	admin.Post("/machines/add", handler.AddMachine)
	admin.Get("/machines/:machine_id", handler.MachineDetail)
	admin.Post("/machine/:machine_id/empty", handler.EmptyMachine)
	admin.Get("/transactions", handler.Transactions)
	admin.Get("/reports/users.pdf", handler.UsersPDF)
	admin.Get("/reports/machines.pdf", handler.MachinesPDF)
	admin.Get("/reports/transactions.pdf", handler.TransactionsPDF)
}
