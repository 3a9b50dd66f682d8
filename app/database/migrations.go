package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createParcelsTable(db); err != nil {
		return err
	}
	if err := createSubscriptionsTable(db); err != nil {
		return err
	}
	if err := createSettingsTable(db); err != nil {
		return err
	}
	if err := installParcelNotifyTrigger(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createParcelsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS parcels (
			id TEXT PRIMARY KEY,
			site_code TEXT NOT NULL,
			category TEXT NOT NULL,
			area NUMERIC NOT NULL DEFAULT 0,
			price_per_m2 BIGINT NOT NULL DEFAULT 0,
			total_price BIGINT NOT NULL DEFAULT 0,
			subscription_fee BIGINT NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'AVAILABLE',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_parcels_site ON parcels (site_code);
		CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels (status);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create parcels table: %v", err)
		return err
	}
	return nil
}

func createSubscriptionsTable(db *sql.DB) error {
	// parcel_id carries no foreign key on purpose: deleting a parcel that
	// has subscriptions is allowed and only surfaced as a warning.
	query := `
		CREATE TABLE IF NOT EXISTS subscriptions (
			id TEXT PRIMARY KEY,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			user_data JSONB NOT NULL,
			parcel_id TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			transaction_ref TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'PENDING',
			history JSONB NOT NULL DEFAULT '[]'
		);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_parcel ON subscriptions (parcel_id);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_date ON subscriptions (date DESC);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create subscriptions table: %v", err)
		return err
	}
	return nil
}

func createSettingsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS system_settings (
			id TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create system_settings table: %v", err)
		return err
	}
	return nil
}

// installParcelNotifyTrigger wires pg_notify so connected clients see parcel
// inserts/updates/deletes without polling.
func installParcelNotifyTrigger(db *sql.DB) error {
	query := `
		CREATE OR REPLACE FUNCTION notify_parcel_changes() RETURNS trigger AS $$
		DECLARE
			rec RECORD;
		BEGIN
			IF TG_OP = 'DELETE' THEN
				rec := OLD;
			ELSE
				rec := NEW;
			END IF;
			PERFORM pg_notify('parcel_changes',
				json_build_object('op', TG_OP, 'id', rec.id, 'status', rec.status)::text);
			RETURN rec;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS parcels_notify ON parcels;
		CREATE TRIGGER parcels_notify
			AFTER INSERT OR UPDATE OR DELETE ON parcels
			FOR EACH ROW EXECUTE FUNCTION notify_parcel_changes();
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to install parcel notify trigger: %v", err)
		return err
	}
	return nil
}
