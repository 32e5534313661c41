package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB loads .env (optional in deployed environments) and opens the
// local sqlite database that backs the blob store.
func InitDB() error {
	if err := godotenv.Load(); err != nil {
		GetLogger().Info("no .env file found, relying on environment")
	}

	path := Getenv("DB_PATH", "nutrition.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open database %s: %w", path, err)
	}
	DB = db
	return nil
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
