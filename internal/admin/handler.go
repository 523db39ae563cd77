package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/praneswara/polygreen/internal/config"
	"github.com/praneswara/polygreen/internal/constants"
	"github.com/praneswara/polygreen/internal/service"
)

const (
	sessionLoggedIn = "admin_logged_in"
	sessionFlash    = "flash"
	sessionFlashCat = "flash_category"
)

type Handler struct {
	logger         *zap.Logger
	cfg            config.Admin
	store          *session.Store
	machineService service.MachineService
	reportService  service.ReportService
}

func NewHandler(logger *zap.Logger, cfg *config.Config, store *session.Store,
	machineService service.MachineService, reportService service.ReportService) *Handler {
	return &Handler{
		logger:         logger,
		cfg:            cfg.Admin,
		store:          store,
		machineService: machineService,
		reportService:  reportService,
	}
}

func NewSessionStore() *session.Store {
	return session.New(session.Config{
		Expiration:     12 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// RequireAdmin redirects to the login page unless the session carries the
// admin flag.
func (h *Handler) RequireAdmin(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/admin/login")
	}
	if loggedIn, _ := sess.Get(sessionLoggedIn).(bool); !loggedIn {
		return c.Redirect("/admin/login")
	}
	return c.Next()
}

func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, "admin/login", fiber.Map{"Title": "Admin Login"})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.Username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(password)) == nil

	if !usernameOK || !passwordOK {
		h.logger.Warn("Admin login rejected", zap.String("username", username))
		h.flash(c, "Invalid credentials", "error")
		return c.Redirect("/admin/login")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionLoggedIn, true)
	if err := sess.Save(); err != nil {
		return err
	}

	h.logger.Info("Admin logged in")
	return c.Redirect("/admin/dashboard")
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		sess.Delete(sessionLoggedIn)
		_ = sess.Save()
	}
	return c.Redirect("/admin/login")
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	stats := h.reportService.Dashboard()
	return h.render(c, "admin/dashboard", fiber.Map{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

func (h *Handler) Users(c *fiber.Ctx) error {
	users, err := h.reportService.Users()
	if err != nil {
		h.flash(c, databaseErrorMessage(err), "danger")
		users = nil
	}
	return h.render(c, "admin/users", fiber.Map{
		"Title": "Users",
		"Users": users,
	})
}

func (h *Handler) UserDetail(c *fiber.Ctx) error {
	detail, err := h.reportService.UserDetail(c.Params("user_id"))
	if err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return err
	}
	return h.render(c, "admin/user_detail", fiber.Map{
		"Title":        "User " + detail.User.UserID,
		"User":         detail.User,
		"Transactions": detail.Transactions,
	})
}

func (h *Handler) Machines(c *fiber.Ctx) error {
	machines, err := h.reportService.Machines()
	if err != nil {
		h.flash(c, databaseErrorMessage(err), "danger")
		machines = nil
	}
	return h.render(c, "admin/machines", fiber.Map{
		"Title":    "Machines",
		"Machines": machines,
	})
}

func (h *Handler) MachineDetail(c *fiber.Ctx) error {
	detail, err := h.reportService.MachineDetail(c.Params("machine_id"))
	if err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return err
	}
	return h.render(c, "admin/machine_detail", fiber.Map{
		"Title":          "Machine " + detail.Machine.MachineID,
		"Machine":        detail.Machine,
		"Transactions":   detail.Transactions,
		"FillPercentage": fmt.Sprintf("%.1f", detail.FillPercentage),
	})
}

func (h *Handler) AddMachinePage(c *fiber.Ctx) error {
	return h.render(c, "admin/add_machine", fiber.Map{"Title": "Add Machine"})
}

func (h *Handler) AddMachine(c *fiber.Ctx) error {
	lat, _ := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, _ := strconv.ParseFloat(c.FormValue("lng"), 64)
	maxCapacity, err := strconv.ParseInt(c.FormValue("max_capacity"), 10, 64)
	if err != nil || maxCapacity <= 0 {
		h.flash(c, "Max capacity must be a positive number.", "danger")
		return c.Redirect("/admin/machines/add")
	}

	cmd := service.AddMachineCommand{
		MachineID:   c.FormValue("machine_id"),
		Name:        c.FormValue("name"),
		City:        c.FormValue("city"),
		Lat:         lat,
		Lng:         lng,
		MaxCapacity: maxCapacity,
	}

	result, err := h.machineService.Add(c.UserContext(), cmd)
	if err != nil {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) && serviceErr.Code == constants.ErrCodeMachineExisted {
			h.flash(c, fmt.Sprintf("Machine ID '%s' already exists.", cmd.MachineID), "danger")
			return c.Redirect("/admin/machines/add")
		}
		h.flash(c, databaseErrorMessage(err), "danger")
		return c.Redirect("/admin/machines/add")
	}

	h.flash(c, fmt.Sprintf("Machine '%s' added successfully! API key: %s", cmd.Name, result.APIKey), "success")
	return c.Redirect("/admin/machines")
}

func (h *Handler) EmptyMachine(c *fiber.Ctx) error {
	machineID := c.Params("machine_id")

	result, err := h.machineService.Empty(c.UserContext(), machineID)
	if err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		h.flash(c, databaseErrorMessage(err), "danger")
		return c.Redirect("/admin/machines/" + machineID)
	}

	h.flash(c, fmt.Sprintf("Machine '%s' emptied successfully! Bottles collected: %d",
		result.Name, result.BottlesCollected), "success")
	return c.Redirect("/admin/machines/" + machineID)
}

func (h *Handler) Transactions(c *fiber.Ctx) error {
	transactions, err := h.reportService.Transactions(0)
	if err != nil {
		h.flash(c, databaseErrorMessage(err), "danger")
		transactions = nil
	}
	return h.render(c, "admin/transactions", fiber.Map{
		"Title":        "Transactions",
		"Transactions": transactions,
	})
}

func (h *Handler) render(c *fiber.Ctx, view string, bind fiber.Map) error {
	if sess, err := h.store.Get(c); err == nil {
		if msg, ok := sess.Get(sessionFlash).(string); ok && msg != "" {
			bind["Flash"] = msg
			bind["FlashCategory"], _ = sess.Get(sessionFlashCat).(string)
			sess.Delete(sessionFlash)
			sess.Delete(sessionFlashCat)
			_ = sess.Save()
		}
	}
	return c.Render(view, bind, "admin/layout")
}

func (h *Handler) flash(c *fiber.Ctx, message, category string) {
	sess, err := h.store.Get(c)
	if err != nil {
		return
	}
	sess.Set(sessionFlash, message)
	sess.Set(sessionFlashCat, category)
	_ = sess.Save()
}

func isNotFound(err error) bool {
	var serviceErr service.Error
	if !errors.As(err, &serviceErr) {
		return false
	}
	return constants.GetHTTPStatus(serviceErr.Code) == fiber.StatusNotFound
}

func databaseErrorMessage(err error) string {
	return "Database error: " + err.Error()
}
