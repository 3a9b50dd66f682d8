package wizard

import (
	wiz "github.com/apextradecapital/SONATUR/app/wizard"

	"github.com/gofiber/fiber/v2"
)

// SetupWizardRoutes exposes the public subscription flow.
func SetupWizardRoutes(app *fiber.App, mgr *wiz.Manager) {
	api := app.Group("/api/wizard")

	api.Post("/session", func(c *fiber.Ctx) error {
		return CreateSessionAPI(c, mgr)
	})

	api.Get("/session/:token", func(c *fiber.Ctx) error {
		return GetSessionAPI(c, mgr)
	})

	api.Post("/session/:token/events", func(c *fiber.Ctx) error {
		return DispatchEventAPI(c, mgr)
	})

	api.Post("/session/:token/commit", func(c *fiber.Ctx) error {
		return CommitAPI(c, mgr)
	})
}
