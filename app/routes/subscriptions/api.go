package subscriptions

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
	"github.com/apextradecapital/SONATUR/app/services"

	"github.com/gofiber/fiber/v2"
)

// ListSubscriptionsAPI serves the admin dossier list, newest first.
func ListSubscriptionsAPI(c *fiber.Ctx) error {
	filters := database.SubscriptionFilters{
		Search:   c.Query("search"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Status:   c.Query("status"),
	}

	subs, err := database.ListSubscriptions(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subscriptions"})
	}
	if subs == nil {
		subs = []*models.SubscriptionRecord{}
	}

	return c.JSON(fiber.Map{"subscriptions": subs, "count": len(subs)})
}

func GetSubscriptionAPI(c *fiber.Ctx) error {
	sub, err := database.GetSubscriptionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Dossier introuvable"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subscription"})
	}

	return c.JSON(fiber.Map{"subscription": sub})
}

// ReviewSubscriptionAPI records a validate/reject decision on a dossier.
func ReviewSubscriptionAPI(c *fiber.Ctx) error {
	type ReviewRequest struct {
		Decision string `json:"decision"`
		Comment  string `json:"comment"`
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sub, err := services.ReviewSubscription(database.NewStore(config.GetDB()),
		c.Params("id"), models.SubscriptionStatus(req.Decision), req.Comment, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Dossier introuvable"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if sub.Status == models.SubscriptionValidated {
		services.SetLastNotification(fmt.Sprintf("Confirmation envoyée à %s", sub.UserData.Phone))
	}

	return c.JSON(fiber.Map{"message": "Décision enregistrée", "subscription": sub})
}
