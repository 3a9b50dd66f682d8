package settings

import (
	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
	"github.com/apextradecapital/SONATUR/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// PublicSettingsAPI serves the subset the wizard front-end needs. The PIN
// hash never leaves the admin surface.
func PublicSettingsAPI(c *fiber.Ctx) error {
	s := config.GetSettings()

	return c.JSON(fiber.Map{
		"whatsapp_number":        s.WhatsAppNumber,
		"timer_minutes":          s.TimerMinutes,
		"conditions_text":        s.ConditionsText,
		"contact_phone":          s.ContactPhone,
		"contact_email":          s.ContactEmail,
		"contact_address":        s.ContactAddress,
		"housing_deposit_pct":    s.HousingDepositPct,
		"commercial_deposit_pct": s.CommercialDepositPct,
		"providers":              s.Providers,
		"sites":                  s.Sites,
	})
}

func GetSettingsAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"settings": config.GetSettings()})
}

// UpdateSettingsAPI replaces the whole settings object. A plaintext
// admin_pin in the request is hashed before persisting; when absent the
// existing hash is preserved.
func UpdateSettingsAPI(c *fiber.Ctx) error {
	type UpdateRequest struct {
		models.SystemSettings
		AdminPIN string `json:"admin_pin"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	next := req.SystemSettings
	if req.AdminPIN != "" {
		hash, err := auth.HashPIN(req.AdminPIN)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to hash PIN"})
		}
		next.AdminPINHash = hash
	} else {
		next.AdminPINHash = config.GetSettings().AdminPINHash
	}

	if next.TimerMinutes <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "timer_minutes doit être positif"})
	}
	if next.HousingDepositPct < 0 || next.HousingDepositPct > 100 ||
		next.CommercialDepositPct < 0 || next.CommercialDepositPct > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "Les pourcentages d'acompte doivent être entre 0 et 100"})
	}

	if err := database.SaveSettings(config.GetDB(), &next); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save settings"})
	}
	config.SetSettings(&next)

	return c.JSON(fiber.Map{"message": "Paramètres enregistrés", "settings": next})
}
