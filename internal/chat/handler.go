package chat

import "github.com/gofiber/fiber/v2"

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/chat", h.chat)
}

type chatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
}

func (h *Handler) chat(c *fiber.Ctx) error {
	payload := new(chatRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "message is required"})
	}

	reply := h.client.Reply(c.Context(), payload.Message, payload.History)
	return c.JSON(fiber.Map{"reply": reply})
}
