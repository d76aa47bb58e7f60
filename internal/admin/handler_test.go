package admin

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/finance"
	"github.com/carhubteam/carhub-backend/internal/order"
	"github.com/carhubteam/carhub-backend/internal/user"
)

type stubOrders struct {
	recent []order.Order
	byIDs  []order.Order
	gotIDs []int
}

func (s *stubOrders) ListRecent(limit int) ([]order.Order, error) { return s.recent, nil }
func (s *stubOrders) ListByIDs(ids []int) ([]order.Order, error) {
	s.gotIDs = ids
	return s.byIDs, nil
}

type stubActivity struct{ recent []activity.Record }

func (s *stubActivity) ListRecent(limit int) ([]activity.Record, error) { return s.recent, nil }

type noopRecorder struct{}

func (noopRecorder) Record(userID int, activityType, description string, metadata map[string]any, origin activity.Origin) {
}

func adminApp(t *testing.T, callerID int) (*fiber.App, *stubOrders, *finance.Service) {
	t.Helper()

	users := user.NewInMemoryRepository([]user.User{
		{ID: 1, Username: "boss", Email: "admin@carhub.example"},
		{ID: 2, Username: "jamie", Email: "jamie@example.com", Password: "$2a$10$notarealhash"},
	})
	orders := &stubOrders{
		recent: []order.Order{{ID: 3, UserID: 2, TotalAmount: 2200}},
		byIDs:  []order.Order{{ID: 1}, {ID: 2}},
	}
	fin := finance.NewService(finance.NewInMemoryRepository(), noopRecorder{}, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": callerID})
		c.Locals("user", tok)
		return c.Next()
	})
	NewHandler("admin@carhub.example", users, orders, &stubActivity{}, fin).RegisterProtectedRoutes(app)
	return app, orders, fin
}

func TestAdminGateRejectsNonAdmin(t *testing.T) {
	app, _, _ := adminApp(t, 2)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
}

func TestAdminListUsers(t *testing.T) {
	app, _, _ := adminApp(t, 1)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/users", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out []user.User
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 users, got %d", len(out))
	}
	for _, u := range out {
		if u.Password != "" {
			t.Fatalf("password hash leaked for user %d", u.ID)
		}
	}
}

func TestAdminGetUserByID(t *testing.T) {
	app, _, _ := adminApp(t, 1)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/users/2", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out user.User
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ID != 2 || out.Email != "jamie@example.com" {
		t.Fatalf("unexpected user: %+v", out)
	}
	if out.Password != "" {
		t.Fatalf("password hash leaked: %q", out.Password)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/admin/users/99", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestAdminGetOrders(t *testing.T) {
	app, _, _ := adminApp(t, 1)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out []order.Order
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("unexpected orders: %+v", out)
	}
}

func TestAdminGetOrdersByIDs(t *testing.T) {
	app, orders, _ := adminApp(t, 1)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders?ids=1,2", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if len(orders.gotIDs) != 2 || orders.gotIDs[0] != 1 || orders.gotIDs[1] != 2 {
		t.Fatalf("ids not forwarded: %v", orders.gotIDs)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders?ids=1,nope", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed ids, got %d", res.StatusCode)
	}
}

func TestAdminUpdateApplicationStatus(t *testing.T) {
	app, _, fin := adminApp(t, 1)

	created, err := fin.Submit(2, finance.Application{
		CarName: "Tesla Model 3", CarPrice: "$40,000", FullName: "Jamie Doe",
		Email: "jamie@example.com", Phone: "555-0100", AnnualIncome: "85000",
		EmploymentStatus: "employed", Address: "1 Main St", SelectedPlan: "36-month",
	}, activity.Origin{})
	if err != nil {
		t.Fatal(err)
	}

	b, _ := json.Marshal(map[string]string{"status": "approved"})
	req := httptest.NewRequest("PATCH", "/api/v1/admin/finance/applications/1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var updated finance.Application
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.ID != created.ID || updated.Status != finance.StatusApproved {
		t.Fatalf("unexpected application: %+v", updated)
	}

	b, _ = json.Marshal(map[string]string{"status": "escalated"})
	req = httptest.NewRequest("PATCH", "/api/v1/admin/finance/applications/1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", res.StatusCode)
	}
}
