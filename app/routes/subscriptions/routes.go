package subscriptions

import (
	"github.com/apextradecapital/SONATUR/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupSubscriptionsRoutes exposes the admin dossier review surface. Every
// route requires an authenticated admin.
func SetupSubscriptionsRoutes(app *fiber.App) {
	api := app.Group("/api/subscriptions", auth.AdminMiddleware)

	api.Get("/", ListSubscriptionsAPI)
	api.Get("/:id", GetSubscriptionAPI)
	api.Post("/:id/review", ReviewSubscriptionAPI)
}
