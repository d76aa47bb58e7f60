package admin

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/finance"
	"github.com/carhubteam/carhub-backend/internal/order"
	"github.com/carhubteam/carhub-backend/internal/user"
)

const defaultListLimit = 50

// Directory resolves accounts for the admin gate and the customer views.
type Directory interface {
	GetByID(id int) (user.User, error)
	List() ([]user.User, error)
}

// Orders is the slice of the order service the dashboard reads from.
type Orders interface {
	ListRecent(limit int) ([]order.Order, error)
	ListByIDs(ids []int) ([]order.Order, error)
}

// ActivityLog lists recent audit records across all users.
type ActivityLog interface {
	ListRecent(limit int) ([]activity.Record, error)
}

// Applications is the finance review surface.
type Applications interface {
	ListAll() ([]finance.Application, error)
	UpdateStatus(id int, status string) (finance.Application, error)
}

type Handler struct {
	adminEmail string
	directory  Directory
	orders     Orders
	activities ActivityLog
	finance    Applications
}

func NewHandler(adminEmail string, directory Directory, orders Orders, activities ActivityLog, fin Applications) *Handler {
	return &Handler{adminEmail: adminEmail, directory: directory, orders: orders, activities: activities, finance: fin}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/users", h.requireAdmin(h.getUsers))
	app.Get("/api/v1/admin/users/:id<[0-9]+>", h.requireAdmin(h.getUser))
	app.Get("/api/v1/admin/orders", h.requireAdmin(h.getOrders))
	app.Get("/api/v1/admin/activity", h.requireAdmin(h.getActivity))
	app.Get("/api/v1/admin/finance/applications", h.requireAdmin(h.getApplications))
	app.Patch("/api/v1/admin/finance/applications/:id<[0-9]+>", h.requireAdmin(h.updateApplication))
}

func (h *Handler) requireAdmin(next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := user.GetUserIDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}

		u, err := h.directory.GetByID(userID)
		if err != nil || h.adminEmail == "" || !strings.EqualFold(u.Email, h.adminEmail) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return next(c)
	}
}

// getUsers lists every customer account. Password hashes are blanked before
// the users leave the handler.
func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.directory.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.directory.GetByID(id)
	switch err {
	case nil:
		u.Password = ""
		return c.JSON(u)
	case user.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

// getOrders lists recent orders, or a specific set when ?ids=1,2,3 is given.
func (h *Handler) getOrders(c *fiber.Ctx) error {
	if raw := c.Query("ids"); raw != "" {
		ids, err := parseIDs(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "ids must be a comma separated list of numbers"})
		}
		orders, err := h.orders.ListByIDs(ids)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(orders)
	}

	orders, err := h.orders.ListRecent(limitQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getActivity(c *fiber.Ctx) error {
	records, err := h.activities.ListRecent(limitQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(records)
}

func (h *Handler) getApplications(c *fiber.Ctx) error {
	apps, err := h.finance.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(apps)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateApplication(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.finance.UpdateStatus(id, payload.Status)
	switch err {
	case nil:
		return c.JSON(updated)
	case finance.ErrInvalidStatus:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status must be pending, approved or rejected"})
	case finance.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Application not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func limitQuery(c *fiber.Ctx) int {
	limit := defaultListLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return limit
}

func parseIDs(raw string) ([]int, error) {
	fields := strings.Split(raw, ",")
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
