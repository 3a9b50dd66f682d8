package parcels

import (
	"github.com/apextradecapital/SONATUR/app/routes/auth"
	"github.com/apextradecapital/SONATUR/app/services"

	"github.com/gofiber/fiber/v2"
)

// SetupParcelsRoutes sets up the public inventory views and the admin CRUD.
// preview may be nil when no generative service is configured.
func SetupParcelsRoutes(app *fiber.App, hub *services.Hub, preview services.PreviewService) {
	api := app.Group("/api/parcels")

	// Public routes
	api.Get("/", ListParcelsAPI)
	api.Get("/stream", func(c *fiber.Ctx) error {
		return StreamParcelsAPI(c, hub)
	})
	api.Post("/:id/preview", func(c *fiber.Ctx) error {
		return GeneratePreviewAPI(c, preview)
	})

	app.Get("/api/sites", ListSitesAPI)

	// Admin routes
	api.Post("/", auth.AdminMiddleware, CreateParcelAPI)
	api.Put("/:id", auth.AdminMiddleware, UpdateParcelAPI)
	api.Delete("/:id", auth.AdminMiddleware, DeleteParcelAPI)
}
