package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	admin := app.Group("/api/admin")

	admin.Post("/login", LoginAPI)
	admin.Post("/logout", LogoutAPI)
}

// AdminMiddleware validates the admin JWT from the cookie or Authorization
// header.
func AdminMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("admin_token")

	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil || claims.Role != "admin" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	return c.Next()
}
