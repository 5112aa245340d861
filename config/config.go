package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fontaine-sante/scos/logger"
)

var DB *gorm.DB

// LoadEnv loads .env into the process environment if the file exists.
// Called before the logger is built so log settings in .env take effect.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func Connect() {
	if !LoadEnv() {
		logger.Get().Info("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := Migrations(DB); err != nil {
		logger.Get().Fatal("failed to run migrations", zap.Error(err))
	}

	if err := Seed(DB); err != nil {
		logger.Get().Fatal("failed to seed database", zap.Error(err))
	}
}

// Env returns the value of an environment variable or a default.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
