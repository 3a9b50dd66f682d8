package database

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/apextradecapital/SONATUR/app/models"
)

// LoadSettings fetches the singleton settings row. Any failure, including an
// absent row, yields the full compiled-in defaults rather than a partial
// object.
func LoadSettings(db *sql.DB) *models.SystemSettings {
	var payload []byte
	err := db.QueryRow(`SELECT payload FROM system_settings WHERE id = $1`, models.SettingsRowID).Scan(&payload)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Failed to load settings, using defaults: %v", err)
		}
		return models.DefaultSettings()
	}

	settings := &models.SystemSettings{}
	if err := json.Unmarshal(payload, settings); err != nil {
		log.Printf("Failed to decode settings payload, using defaults: %v", err)
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings is a full-object upsert keyed by the fixed singleton ID. Last
// writer wins; there is no concurrency token.
func SaveSettings(db *sql.DB, settings *models.SystemSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	query := `INSERT INTO system_settings (id, payload, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (id) DO UPDATE SET payload = $2, updated_at = NOW()`
	_, err = db.Exec(query, models.SettingsRowID, payload)
	return err
}
