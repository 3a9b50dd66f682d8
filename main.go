package main

import (
	"log"
	"time"

	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/routes/auth"
	"github.com/apextradecapital/SONATUR/app/routes/dashboard"
	"github.com/apextradecapital/SONATUR/app/routes/parcels"
	"github.com/apextradecapital/SONATUR/app/routes/settings"
	"github.com/apextradecapital/SONATUR/app/routes/subscriptions"
	wizardroutes "github.com/apextradecapital/SONATUR/app/routes/wizard"
	"github.com/apextradecapital/SONATUR/app/services"
	"github.com/apextradecapital/SONATUR/app/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler keeps every error response JSON; the portal serves no
// server-rendered pages.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Set global time zone to West Africa
	loc, err := time.LoadLocation("Africa/Ouagadougou")
	if err != nil {
		log.Printf("Warning: Failed to load Africa/Ouagadougou location, falling back to UTC: %v", err)
		time.Local = time.UTC
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Load the settings singleton into memory
	config.SetSettings(database.LoadSettings(config.GetDB()))

	// Fan parcel change notifications out to connected browsers
	hub := services.NewHub()
	database.WatchParcelChanges(config.AppConfig.DSN, hub.Publish)

	// Start background reconciliation sweep
	services.StartReconciler(config.GetDB(), 10*time.Minute)

	// Wizard sessions live in memory; abandoned ones expire after 2h
	sessions := wizard.NewManager(2 * time.Hour)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/", "./static")

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup wizard routes
	wizardroutes.SetupWizardRoutes(app, sessions)

	// Setup parcels routes (no preview service configured by default)
	parcels.SetupParcelsRoutes(app, hub, nil)

	// Setup subscriptions routes
	subscriptions.SetupSubscriptionsRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup settings routes
	settings.SetupSettingsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
