package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/apextradecapital/SONATUR/app/models"

	_ "github.com/lib/pq"
)

type Config struct {
	DB  *sql.DB
	DSN string
}

var AppConfig *Config

var (
	settingsMu sync.RWMutex
	settings   *models.SystemSettings
)

// DSN builds the Postgres connection string. DATABASE_URL wins; otherwise a
// local development database is assumed.
func DSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := envOr("PGHOST", "localhost")
	port := envOr("PGPORT", "5432")
	user := envOr("PGUSER", "postgres")
	dbname := envOr("PGDATABASE", "sonatur")
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", host, port, user, dbname)
	if pass := os.Getenv("PGPASSWORD"); pass != "" {
		dsn += " password=" + pass
	}
	return dsn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	dsn := DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DATABASE_URL or PGHOST/PGPORT/PGUSER/PGPASSWORD/PGDATABASE and retry.")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{DB: db, DSN: dsn}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// SetSettings replaces the in-memory settings snapshot. Called at startup
// and whenever the admin saves the configuration.
func SetSettings(s *models.SystemSettings) {
	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()
}

// GetSettings returns the current settings snapshot, falling back to the
// compiled-in defaults if nothing was loaded yet.
func GetSettings() *models.SystemSettings {
	settingsMu.RLock()
	s := settings
	settingsMu.RUnlock()
	if s == nil {
		return models.DefaultSettings()
	}
	return s
}
