package payments

import (
	"kisima-schools/app/config"
	"kisima-schools/app/models"
	corepayments "kisima-schools/app/payments"
	"kisima-schools/app/routes/auth"
	"kisima-schools/app/services"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes sets up the payments routes
func SetupPaymentsRoutes(app *fiber.App, mailer *services.Mailer) {
	renderer := corepayments.NewReceiptRenderer(config.AppConfig.Receipts.PDFEnabled)

	web := app.Group("/payments")
	web.Use(auth.AuthMiddleware)

	web.Get("/", func(c *fiber.Ctx) error {
		return c.Render("payments/index", fiber.Map{
			"Title":       "Payments - Kisima Schools",
			"CurrentPage": "payments",
		})
	})

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	recorders := auth.RoleMiddleware(
		string(models.RoleAdmin),
		string(models.RoleAccountant),
		string(models.RoleHeadmaster),
	)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	api.Get("/export", func(c *fiber.Ctx) error {
		return ExportPaymentsAPI(c, config.GetDB())
	})

	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetPaymentStatsAPI(c, config.GetDB())
	})

	api.Post("/", recorders, func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB(), mailer)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentByIDAPI(c, config.GetDB())
	})

	api.Patch("/:id", recorders, func(c *fiber.Ctx) error {
		return UpdatePaymentAPI(c, config.GetDB())
	})

	api.Get("/:id/receipt", func(c *fiber.Ctx) error {
		return GetPaymentReceiptAPI(c, config.GetDB(), renderer)
	})
}
