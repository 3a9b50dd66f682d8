package dashboard

import (
	"github.com/apextradecapital/SONATUR/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes exposes the admin overview aggregates.
func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/api/dashboard/stats", auth.AdminMiddleware, GetStatsAPI)
}
