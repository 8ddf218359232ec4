package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dashboard-service/internal/api"
	"dashboard-service/internal/config"
	"dashboard-service/internal/events"
	"dashboard-service/internal/model"
	"dashboard-service/internal/reports"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/service"
	"dashboard-service/internal/tracing"
	_ "dashboard-service/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalLogger("dashboard-service")

	shutdownTracer, err := tracing.InitTracerProvider("dashboard-service", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	alertRepo := repository.NewPostgresAlertRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	alertService := service.NewAlertService(alertRepo, eventPublisher)
	userService := service.NewUserService(userRepo, eventPublisher)

	wmsClient := reports.NewWMSClient(cfg.WMSAPIURL, cfg.WMSAPIToken, cfg.UpstreamTimeout)
	metabaseClient := reports.NewMetabaseClient(cfg.MetabaseURL, cfg.MetabaseAPIKey, cfg.MetabaseInventoryCardID, cfg.UpstreamTimeout)

	alertHandler := api.NewAlertHandler(alertService)
	userHandler := api.NewUserHandler(userService)
	reportHandler := api.NewReportHandler(wmsClient, metabaseClient)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "dashboard-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authRequired := api.AuthMiddleware([]byte(cfg.JWTSecret))
	editorOnly := api.RequireRole(model.RoleAdmin, model.RoleAnalyst)

	app.Get("/me", authRequired, userHandler.GetMe)
	app.Get("/products", authRequired, alertHandler.ListProducts)

	alertRoutes := app.Group("/alerts")
	alertRoutes.Use(authRequired)
	alertRoutes.Get("/", alertHandler.ListAlerts)
	alertRoutes.Post("/", editorOnly, alertHandler.CreateAlert)
	alertRoutes.Put("/:id", editorOnly, alertHandler.UpdateAlert)
	alertRoutes.Delete("/:id", editorOnly, alertHandler.DeleteAlert)

	userRoutes := app.Group("/users")
	userRoutes.Use(authRequired, api.RequireRole(model.RoleAdmin))
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Patch("/:id/role", userHandler.UpdateUserRole)
	userRoutes.Patch("/:id/channels", userHandler.UpdateUserChannels)
	userRoutes.Delete("/:id", userHandler.DeleteUser)

	reportRoutes := app.Group("/reports")
	reportRoutes.Use(authRequired)
	reportRoutes.Get("/daily-shipping", reportHandler.GetDailyShipping)
	reportRoutes.Get("/b2b-bulk-orders", reportHandler.GetB2BBulkOrders)
	reportRoutes.Get("/inventory", reportHandler.GetInventory)

	log.Printf("Listening dashboard-service on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func connectDB(cfg config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
