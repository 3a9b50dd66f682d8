package settings

import (
	"github.com/apextradecapital/SONATUR/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes exposes the system configuration: a public read-only
// subset for the wizard front-end and the full admin read/write surface.
func SetupSettingsRoutes(app *fiber.App) {
	app.Get("/api/settings/public", PublicSettingsAPI)

	app.Get("/api/settings", auth.AdminMiddleware, GetSettingsAPI)
	app.Put("/api/settings", auth.AdminMiddleware, UpdateSettingsAPI)
}
