package user

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/carhubteam/carhub-backend/internal/activity"
)

type recordedActivity struct {
	userID       int
	activityType string
}

type stubRecorder struct {
	records []recordedActivity
}

func (r *stubRecorder) Record(userID int, activityType, description string, metadata map[string]any, origin activity.Origin) {
	r.records = append(r.records, recordedActivity{userID: userID, activityType: activityType})
}

func newTestHandler() (*Handler, *stubRecorder) {
	rec := &stubRecorder{}
	svc := NewService(NewInMemoryRepository(nil), rec)
	return NewHandler(svc), rec
}

func publicApp() (*fiber.App, *stubRecorder) {
	h, rec := newTestHandler()
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app, rec
}

func TestSignUpThenSignIn(t *testing.T) {
	app, rec := publicApp()

	b, _ := json.Marshal(map[string]any{
		"username": "jamie",
		"email":    "jamie@example.com",
		"password": "hunter22",
	})
	req := httptest.NewRequest("POST", "/api/v1/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var created User
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Password != "" {
		t.Fatal("password leaked in sign-up response")
	}

	b, _ = json.Marshal(map[string]any{"email": "jamie@example.com", "password": "hunter22"})
	req = httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Token == "" {
		t.Fatal("expected a signed token")
	}
	if out.User.Email != "jamie@example.com" {
		t.Fatalf("unexpected user in response: %+v", out.User)
	}

	if len(rec.records) != 2 {
		t.Fatalf("expected registration and login records, got %d", len(rec.records))
	}
	if rec.records[0].activityType != activity.TypeRegistration || rec.records[1].activityType != activity.TypeLogin {
		t.Fatalf("unexpected activity types: %+v", rec.records)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app, _ := publicApp()

	body := map[string]any{"username": "jamie", "email": "jamie@example.com", "password": "hunter22"}
	for i, want := range []int{fiber.StatusCreated, fiber.StatusConflict} {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/v1/sign-up", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != want {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, want, res.StatusCode)
		}
	}
}

func TestSignInWrongPassword(t *testing.T) {
	app, _ := publicApp()

	b, _ := json.Marshal(map[string]any{"username": "jamie", "email": "jamie@example.com", "password": "hunter22"})
	req := httptest.NewRequest("POST", "/api/v1/sign-up", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req, -1); err != nil {
		t.Fatal(err)
	}

	b, _ = json.Marshal(map[string]any{"email": "jamie@example.com", "password": "wrong"})
	req = httptest.NewRequest("POST", "/api/v1/sign-in", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestGoogleAuthCreatesAndReuses(t *testing.T) {
	app, rec := publicApp()

	body := map[string]any{"googleId": "sub-123", "email": "jamie@example.com", "name": "Jamie Doe"}
	for i := 0; i < 2; i++ {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/v1/auth/google", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, res.StatusCode)
		}
	}

	if len(rec.records) != 2 {
		t.Fatalf("expected 2 activity records, got %d", len(rec.records))
	}
	if rec.records[0].activityType != activity.TypeRegistration {
		t.Fatalf("first google sign-in should register, got %q", rec.records[0].activityType)
	}
	if rec.records[1].activityType != activity.TypeLogin {
		t.Fatalf("second google sign-in should log in, got %q", rec.records[1].activityType)
	}
	if rec.records[0].userID != rec.records[1].userID {
		t.Fatal("google sign-ins resolved to different users")
	}
}

func TestProfileUpdatePartialPayload(t *testing.T) {
	h, _ := newTestHandler()
	created, err := h.service.Register(User{
		Username:  "jamie",
		Email:     "jamie@example.com",
		Password:  "hunter22",
		FirstName: "Jamie",
		LastName:  "Doe",
	}, activity.Origin{})
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": created.ID})
		c.Locals("user", tok)
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)

	b, _ := json.Marshal(map[string]any{"phone": "555-0100"})
	req := httptest.NewRequest("PATCH", "/api/v1/profile", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var updated User
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Phone != "555-0100" {
		t.Fatalf("phone not updated: %+v", updated)
	}
	if updated.FirstName != "Jamie" || updated.LastName != "Doe" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// password hash must survive a partial update
	if _, err := h.service.Authenticate("jamie@example.com", "hunter22", activity.Origin{}); err != nil {
		t.Fatalf("credentials broken after profile update: %v", err)
	}
}
