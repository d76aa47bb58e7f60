package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/vehicles", h.listVehicles)
	app.Get("/api/v1/vehicles/:slug", h.getVehicle)
}

func (h *Handler) listVehicles(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		vehicles, err := h.service.ListByCategory(category)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(vehicles)
	}

	vehicles, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(vehicles)
}

// getVehicle accepts either a slug or a numeric id.
func (h *Handler) getVehicle(c *fiber.Ctx) error {
	key := c.Params("slug")

	var v Vehicle
	var err error
	if id, convErr := strconv.Atoi(key); convErr == nil {
		v, err = h.service.GetByID(id)
	} else {
		v, err = h.service.GetBySlug(c.Context(), key)
	}
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "vehicle not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(v)
}
