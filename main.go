package main

import (
	"encoding/json"
	"log"
	"time"

	"kisima-schools/app/config"
	"kisima-schools/app/database"
	"kisima-schools/app/routes/auth"
	"kisima-schools/app/routes/fees"
	"kisima-schools/app/routes/payments"
	"kisima-schools/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// API requests get the JSON envelope
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - Kisima Schools",
			"CurrentPage": "",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - Kisima Schools",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// Set global time zone to East Africa Time
	loc, err := time.LoadLocation("Africa/Kampala")
	if err != nil {
		log.Printf("Warning: Failed to load Africa/Kampala location, falling back to UTC+3: %v", err)
		time.Local = time.FixedZone("EAT", 3*60*60)
	} else {
		time.Local = loc
	}

	// Initialize database
	config.Init()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	mailer := services.NewMailer(config.AppConfig.SMTP)

	// Start background scheduler
	services.StartScheduler(config.GetDB(), mailer)

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	payments.SetupPaymentsRoutes(app, mailer)
	fees.SetupFeesRoutes(app)

	log.Printf("Server listening on %s", config.AppConfig.ListenAddr)
	log.Fatal(app.Listen(config.AppConfig.ListenAddr))
}
