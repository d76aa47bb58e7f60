package finance

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/finance/applications", h.submit)
	app.Get("/api/v1/finance/applications", h.listMine)
	app.Get("/api/v1/finance/applications/:id<[0-9]+>", h.getApplication)
}

type submitRequest struct {
	CarID            string `json:"carId"`
	CarName          string `json:"carName"`
	CarPrice         string `json:"carPrice"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AnnualIncome     string `json:"annualIncome"`
	EmploymentStatus string `json:"employmentStatus"`
	CreditScoreRange string `json:"creditScoreRange"`
	Address          string `json:"address"`
	SelectedPlan     string `json:"selectedPlan"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	origin := activity.Origin{IP: c.IP(), UserAgent: c.Get("User-Agent")}
	created, err := h.service.Submit(userID, Application{
		CarID:            payload.CarID,
		CarName:          payload.CarName,
		CarPrice:         payload.CarPrice,
		FullName:         payload.FullName,
		Email:            payload.Email,
		Phone:            payload.Phone,
		AnnualIncome:     payload.AnnualIncome,
		EmploymentStatus: payload.EmploymentStatus,
		CreditScoreRange: payload.CreditScoreRange,
		Address:          payload.Address,
		SelectedPlan:     payload.SelectedPlan,
	}, origin)
	if err != nil {
		if err == ErrMissingFields {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Finance application submitted successfully! We will contact you within 24 hours.",
		"application": created,
	})
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	apps, err := h.service.ListMine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(apps)
}

func (h *Handler) getApplication(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	app, err := h.service.GetForUser(id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Application not found"})
	}
	return c.JSON(app)
}
