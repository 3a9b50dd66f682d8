package dashboard

import (
	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	stats.LastNotification = services.LastNotification()

	return c.JSON(fiber.Map{"stats": stats})
}
