package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/admin"
	"github.com/carhubteam/carhub-backend/internal/cache"
	"github.com/carhubteam/carhub-backend/internal/catalog"
	"github.com/carhubteam/carhub-backend/internal/chat"
	"github.com/carhubteam/carhub-backend/internal/config"
	"github.com/carhubteam/carhub-backend/internal/finance"
	"github.com/carhubteam/carhub-backend/internal/order"
	"github.com/carhubteam/carhub-backend/internal/parts"
	"github.com/carhubteam/carhub-backend/internal/payment"
	"github.com/carhubteam/carhub-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := migrate(db); err != nil {
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}
	if err := seedVehicles(db); err != nil {
		log.Warn("vehicle seed failed", zap.Error(err))
	}
	if err := seedParts(db); err != nil {
		log.Warn("parts seed failed", zap.Error(err))
	}

	// the catalog cache is optional; without REDIS_ADDR slug lookups go
	// straight to the database
	var redisCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedis(cfg.RedisAddr)
	}

	activityRepo := activity.NewPostgresRepository(db)
	recorder := activity.NewRecorder(activityRepo, log)

	userService := user.NewService(user.NewPostgresRepository(db), recorder)
	userHandler := user.NewHandler(userService)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db), redisCache, log)
	catalogHandler := catalog.NewHandler(catalogService)

	gateway := payment.NewGatewayWithDelay(log, cfg.PaymentDelay)
	orderService := order.NewService(order.NewPostgresRepository(db), catalogService, gateway, recorder, log)
	orderHandler := order.NewHandler(orderService)

	financeService := finance.NewService(finance.NewPostgresRepository(db), recorder, log)
	financeHandler := finance.NewHandler(financeService)

	partsHandler := parts.NewHandler(parts.NewService(parts.NewPostgresRepository(db)))
	chatHandler := chat.NewHandler(chat.NewClient(cfg.ChatAPIKey, cfg.ChatAPIURL, cfg.ChatModel, log))
	adminHandler := admin.NewHandler(cfg.AdminEmail, userService, orderService, activityRepo, financeService)

	app := fiber.New()
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)
	partsHandler.RegisterPublicRoutes(app)
	chatHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	financeHandler.RegisterProtectedRoutes(app)
	adminHandler.RegisterProtectedRoutes(app)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	}
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userID" SERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT,
			"firstName" TEXT,
			"lastName" TEXT,
			phone TEXT,
			address TEXT,
			"googleID" TEXT,
			picture TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			"vehicleID" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			price numeric NOT NULL,
			category TEXT,
			description TEXT,
			"videoURL" TEXT,
			vin TEXT,
			year INT,
			engine TEXT,
			"createdAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			"orderID" SERIAL PRIMARY KEY,
			"userID" INT NOT NULL,
			"vehicleID" INT NOT NULL,
			"totalAmount" numeric NOT NULL DEFAULT 0,
			"cancellationFee" numeric NOT NULL DEFAULT 0,
			"paymentStatus" TEXT NOT NULL DEFAULT 'pending',
			"orderStatus" TEXT NOT NULL DEFAULT 'pending',
			"paymentMethod" TEXT,
			"transactionID" TEXT UNIQUE,
			"billingName" TEXT,
			"billingEmail" TEXT,
			"billingPhone" TEXT,
			"billingAddress" TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS user_activity_log (
			"activityID" SERIAL PRIMARY KEY,
			"userID" INT NOT NULL,
			"activityType" TEXT NOT NULL,
			description TEXT NOT NULL,
			"ipAddress" TEXT,
			"userAgent" TEXT,
			metadata jsonb,
			"createdAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS finance_applications (
			"applicationID" SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			"userID" INT NOT NULL,
			"carID" TEXT,
			"carName" TEXT NOT NULL,
			"carPrice" TEXT NOT NULL,
			"fullName" TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			"annualIncome" TEXT NOT NULL,
			"employmentStatus" TEXT NOT NULL,
			"creditScoreRange" TEXT,
			address TEXT NOT NULL,
			"selectedPlan" TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS parts (
			"partID" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price TEXT NOT NULL,
			image TEXT,
			brand TEXT,
			category TEXT,
			condition TEXT NOT NULL DEFAULT 'New',
			warranty TEXT,
			"createdAt" TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedVehicles fills the showroom on first boot so the catalog endpoints
// have something to serve before an admin loads real inventory.
func seedVehicles(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name, slug, category string
		price                float64
	}{
		{"Bugatti Centodieci", "bugatti-centodieci", "Supercar", 9000000},
		{"McLaren 720S", "mclaren-720s", "Supercar", 1200000},
		{"Lamborghini Revuelto", "lamborghini-revuelto", "Supercar", 650000},
		{"Ferrari Monza SP1", "ferrari-monza-sp1", "Supercar", 1750000},
		{"Porsche 718 Cayman GT4", "porsche-718-cayman-gt4", "Supercar", 120000},
		{"Aston Martin V8 Vantage", "aston-martin-v8-vantage", "Luxury", 150000},
		{"Bentley Mulliner Batur", "bentley-mulliner-batur", "Luxury", 1200000},
		{"Rolls-Royce Ghost", "rolls-royce-ghost", "Luxury", 1200000},
		{"Rolls-Royce Spectre", "rolls-royce-spectre", "Luxury", 1200000},
		{"Mercedes-Benz Maybach S-Class", "mercedes-maybach", "Luxury", 300000},
		{"Tesla Model 3", "tesla-model-3", "Electric", 40000},
		{"Tesla Cybertruck", "tesla-cybertruck", "Electric", 2000000},
		{"Hyundai Ioniq 5 N", "hyundai-ioniq-5n", "Electric", 67000},
		{"BMW M2 G87", "bmw-m2-g87", "Sedan", 65000},
		{"Jeep Wrangler Rubicon", "jeep-wrangler-rubicon", "SUV", 45000},
		{"Mahindra Scorpio", "mahindra-scorpio", "SUV", 15000},
		{"Maruti Suzuki XL6", "maruti-suzuki-xl6", "SUV", 18000},
		{"Tata Tiago", "tata-tiago", "Hatchback", 8000},
	}

	for _, v := range seed {
		if _, err := db.Exec(`INSERT INTO vehicles (name, slug, price, category) VALUES ($1,$2,$3,$4) ON CONFLICT (slug) DO NOTHING`,
			v.name, v.slug, v.price, v.category); err != nil {
			return err
		}
	}
	return nil
}

// seedParts stocks the spare parts inventory on first boot, same deal as
// seedVehicles.
func seedParts(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM parts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range parts.DefaultInventory() {
		if _, err := db.Exec(`INSERT INTO parts (name, description, price, image, brand, category, condition, warranty, "createdAt") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			p.Name, p.Description, p.Price, p.Image, p.Brand, p.Category, p.Condition, p.Warranty, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
