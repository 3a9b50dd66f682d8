package parcels

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apextradecapital/SONATUR/app/config"
	"github.com/apextradecapital/SONATUR/app/database"
	"github.com/apextradecapital/SONATUR/app/models"
	"github.com/apextradecapital/SONATUR/app/services"

	"github.com/gofiber/fiber/v2"
)

// ListParcelsAPI serves the public inventory. Filters arrive as query
// params; sites is comma separated.
func ListParcelsAPI(c *fiber.Ctx) error {
	filters := database.ParcelFilters{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
	}
	if raw := c.Query("sites"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Sites = append(filters.Sites, s)
			}
		}
	}

	parcels, err := database.ListParcels(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch parcels"})
	}
	if parcels == nil {
		parcels = []*models.Parcel{}
	}

	return c.JSON(fiber.Map{"parcels": parcels, "count": len(parcels)})
}

// ListSitesAPI returns the configured sites enriched with the codes that
// actually appear in inventory.
func ListSitesAPI(c *fiber.Ctx) error {
	settings := config.GetSettings()

	codes, err := database.ListSiteCodes(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sites"})
	}

	return c.JSON(fiber.Map{
		"sites":           settings.Sites,
		"inventory_codes": codes,
	})
}

// StreamParcelsAPI pushes inventory change notifications to the browser as
// server-sent events. Each payload is the raw JSON emitted by the database
// trigger; a comment line every 30s keeps intermediaries from closing the
// connection.
func StreamParcelsAPI(c *fiber.Ctx, hub *services.Hub) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	sub := hub.Subscribe()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer hub.Unsubscribe(sub)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case msg, ok := <-sub:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: parcel_change\ndata: %s\n\n", msg)
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}

// GeneratePreviewAPI produces an AI visual preview for a parcel. Returns 503
// when no preview service is configured.
func GeneratePreviewAPI(c *fiber.Ctx, preview services.PreviewService) error {
	if preview == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Aperçu indisponible"})
	}

	parcel, err := database.GetParcelByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Parcelle introuvable"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch parcel"})
	}

	type PreviewRequest struct {
		Instruction string `json:"instruction"`
	}
	var req PreviewRequest
	_ = c.BodyParser(&req)

	img, err := preview.GeneratePreview(c.Context(), parcel.ImageURL, req.Instruction)
	if err != nil {
		if errors.Is(err, services.ErrNoPreview) {
			return c.Status(503).JSON(fiber.Map{"error": "Aperçu indisponible"})
		}
		return c.Status(502).JSON(fiber.Map{"error": "La génération de l'aperçu a échoué"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(img)
}

// CreateParcelAPI adds a parcel to inventory (admin).
func CreateParcelAPI(c *fiber.Ctx) error {
	var p models.Parcel
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := services.CreateParcel(database.NewStore(config.GetDB()), &p); err != nil {
		if errors.Is(err, services.ErrDuplicateParcelID) {
			return c.Status(409).JSON(fiber.Map{"error": fmt.Sprintf("La parcelle %s existe déjà", p.ID)})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Parcelle créée", "parcel": p})
}

// UpdateParcelAPI overwrites a parcel (admin). The path ID wins over any ID
// in the body.
func UpdateParcelAPI(c *fiber.Ctx) error {
	var p models.Parcel
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	p.ID = c.Params("id")

	if err := services.UpdateParcel(database.NewStore(config.GetDB()), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Parcelle introuvable"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Parcelle mise à jour", "parcel": p})
}

// DeleteParcelAPI removes a parcel (admin). Subscriptions referencing it are
// left in place; the response carries a warning when any exist.
func DeleteParcelAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	warning, err := services.DeleteParcel(database.NewStore(config.GetDB()), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete parcel"})
	}

	resp := fiber.Map{"message": "Parcelle supprimée"}
	if warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(resp)
}
