package fees

import (
	"kisima-schools/app/config"
	"kisima-schools/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes sets up the fees routes
func SetupFeesRoutes(app *fiber.App) {
	fees := app.Group("/fees")
	fees.Use(auth.AuthMiddleware)

	fees.Get("/", func(c *fiber.Ctx) error {
		return c.Render("fees/index", fiber.Map{
			"Title":       "Fees Management - Kisima Schools",
			"CurrentPage": "fees",
		})
	})

	feesAPI := app.Group("/api/fees")
	feesAPI.Use(auth.AuthMiddleware)

	feesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetDB())
	})

	feesAPI.Get("/types", func(c *fiber.Ctx) error {
		return GetFeeTypesAPI(c, config.GetDB())
	})

	feesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeByIDAPI(c, config.GetDB())
	})

	feesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeAPI(c, config.GetDB())
	})

	feesAPI.Post("/:id/pay", func(c *fiber.Ctx) error {
		return MarkFeeAsPaidAPI(c, config.GetDB())
	})
}
