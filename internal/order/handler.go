package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/payment"
	"github.com/carhubteam/carhub-backend/internal/user"
)

// Handler exposes the checkout and order management endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/pay", h.payOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	app.Get("/api/v1/orders/:id<[0-9]+>/invoice", h.getInvoice)
}

type checkoutRequest struct {
	VehicleSlug   string `json:"vehicleSlug"`
	PaymentMethod string `json:"paymentMethod"`

	BillingName    string `json:"billingName"`
	BillingEmail   string `json:"billingEmail"`
	BillingPhone   string `json:"billingPhone"`
	BillingAddress string `json:"billingAddress"`

	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVV    string `json:"cardCvv"`
}

type paymentResponse struct {
	Order         Order  `json:"order"`
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message"`
}

// createOrder opens the order and immediately runs the simulated payment,
// mirroring the one-step checkout the storefront presents.
func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.VehicleSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "vehicleSlug is required"})
	}
	if payload.PaymentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "paymentMethod is required"})
	}

	origin := originFromCtx(c)
	billing := BillingDetails{
		Name:    payload.BillingName,
		Email:   payload.BillingEmail,
		Phone:   payload.BillingPhone,
		Address: payload.BillingAddress,
	}

	created, err := h.service.Create(c.Context(), userID, payload.VehicleSlug, billing, payload.PaymentMethod, origin)
	if err != nil {
		return mapServiceError(c, err)
	}

	details := payment.CardDetails{Number: payload.CardNumber, Expiry: payload.CardExpiry, CVV: payload.CardCVV}
	updated, res, err := h.service.Pay(c.Context(), created.ID, userID, details, origin)
	if err != nil {
		return mapServiceError(c, err)
	}

	status := fiber.StatusOK
	if !res.Approved {
		status = fiber.StatusPaymentRequired
	}
	return c.Status(status).JSON(paymentResponse{
		Order:         updated,
		Approved:      res.Approved,
		TransactionID: res.TransactionID,
		Message:       res.Message,
	})
}

type payRequest struct {
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVV    string `json:"cardCvv"`
}

// payOrder retries payment on an order whose previous attempt failed.
func (h *Handler) payOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(payRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	details := payment.CardDetails{Number: payload.CardNumber, Expiry: payload.CardExpiry, CVV: payload.CardCVV}
	updated, res, err := h.service.Pay(c.Context(), orderID, userID, details, originFromCtx(c))
	if err != nil {
		return mapServiceError(c, err)
	}

	status := fiber.StatusOK
	if !res.Approved {
		status = fiber.StatusPaymentRequired
	}
	return c.Status(status).JSON(paymentResponse{
		Order:         updated,
		Approved:      res.Approved,
		TransactionID: res.TransactionID,
		Message:       res.Message,
	})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetForUser(orderID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(ord)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	result, err := h.service.Cancel(orderID, userID, originFromCtx(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) getInvoice(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	inv, err := h.service.Invoice(orderID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(inv)
}

// mapServiceError maps the order error taxonomy onto HTTP statuses so the
// client can show a specific message instead of a generic failure.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case ErrVehicleNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "vehicle not found"})
	case ErrNotOwner:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "you do not have access to this order"})
	case ErrAlreadyCancelled:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Order is already cancelled."})
	case ErrCannotCancel:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Cannot cancel this order. Please contact support for assistance."})
	case ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order was changed by another request, please refresh"})
	case ErrBillingIncomplete:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "all billing fields are required"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func originFromCtx(c *fiber.Ctx) activity.Origin {
	return activity.Origin{IP: c.IP(), UserAgent: c.Get("User-Agent")}
}
