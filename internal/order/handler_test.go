package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// setupApp builds a fiber app with the order routes and a middleware that
// plants the jwt token the way the auth middleware would.
func setupApp(t *testing.T, userID int) (*fiber.App, *fixture) {
	t.Helper()
	f := newFixture(t)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
		c.Locals("user", tok)
		return c.Next()
	})
	NewHandler(f.service).RegisterProtectedRoutes(app)
	return app, f
}

func checkoutBody() map[string]any {
	return map[string]any{
		"vehicleSlug":    "mclaren-720s",
		"paymentMethod":  "cash",
		"billingName":    "Jamie Doe",
		"billingEmail":   "jamie@example.com",
		"billingPhone":   "555-0100",
		"billingAddress": "1 Main St",
	}
}

func TestCreateOrder_CashCheckout(t *testing.T) {
	app, _ := setupApp(t, 7)

	b, _ := json.Marshal(checkoutBody())
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out paymentResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Approved {
		t.Fatalf("expected approval, got %q", out.Message)
	}
	if out.Order.OrderStatus != StatusProcessing {
		t.Errorf("expected processing, got %s", out.Order.OrderStatus)
	}
	if out.Order.TotalAmount != 110000.0 {
		t.Errorf("unexpected total %v", out.Order.TotalAmount)
	}
}

func TestCreateOrder_DeclinedCard(t *testing.T) {
	app, _ := setupApp(t, 7)

	body := checkoutBody()
	body["paymentMethod"] = "credit_card"
	body["cardNumber"] = "4242424242420000"
	body["cardExpiry"] = "12/30"
	body["cardCvv"] = "123"

	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", res.StatusCode)
	}

	var out paymentResponse
	json.NewDecoder(res.Body).Decode(&out)
	if out.Message != "Card declined by issuer." {
		t.Errorf("unexpected message %q", out.Message)
	}
	if out.Order.OrderStatus != StatusPending {
		t.Errorf("order should stay pending, got %s", out.Order.OrderStatus)
	}
}

func TestCreateOrder_MissingBilling(t *testing.T) {
	app, _ := setupApp(t, 7)

	body := checkoutBody()
	delete(body, "billingAddress")

	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestCancelOrder_Endpoint(t *testing.T) {
	app, f := setupApp(t, 7)

	if _, err := f.orders.Create(Order{
		UserID: 7, VehicleID: 2, TotalAmount: 2200,
		PaymentStatus: PaymentPending, OrderStatus: StatusPending, PaymentMethod: "cash",
		BillingName: "Jamie Doe", BillingEmail: "jamie@example.com", BillingPhone: "555-0100", BillingAddress: "1 Main St",
	}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/orders/1/cancel", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out CancelResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.CancellationFee != 500.0 {
		t.Errorf("unexpected fee %v", out.CancellationFee)
	}
	if out.RefundAmount != 1700.0 {
		t.Errorf("unexpected refund %v", out.RefundAmount)
	}

	// cancelling again is a conflict
	req = httptest.NewRequest("POST", "/api/v1/orders/1/cancel", nil)
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}
}

func TestGetOrders_OnlyMine(t *testing.T) {
	app, f := setupApp(t, 7)

	f.orders.Create(Order{UserID: 7, VehicleID: 1, TotalAmount: 110000, PaymentStatus: PaymentPending, OrderStatus: StatusPending, PaymentMethod: "cash", BillingName: "a", BillingEmail: "b", BillingPhone: "c", BillingAddress: "d"})
	f.orders.Create(Order{UserID: 8, VehicleID: 1, TotalAmount: 110000, PaymentStatus: PaymentPending, OrderStatus: StatusPending, PaymentMethod: "cash", BillingName: "a", BillingEmail: "b", BillingPhone: "c", BillingAddress: "d"})

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var orders []Order
	if err := json.NewDecoder(res.Body).Decode(&orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].UserID != 7 {
		t.Fatalf("expected only user 7's order, got %+v", orders)
	}
}
