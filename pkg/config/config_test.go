package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PlacesConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PLACES_PROVIDER", "google")
	os.Setenv("GOOGLE_PLACES_API_KEY", "test-key")
	defer func() {
		os.Unsetenv("PLACES_PROVIDER")
		os.Unsetenv("GOOGLE_PLACES_API_KEY")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify places config
	assert.Equal(t, "google", cfg.Places.Provider)
	assert.Equal(t, "test-key", cfg.Places.APIKey)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("GOOGLE_PLACES_API_KEY")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("ENV")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "modemap", cfg.Database.Database)
	assert.Empty(t, cfg.Places.APIKey)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "modemap",
		Password: "secret",
		Database: "modemap",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=modemap password=secret dbname=modemap sslmode=disable", cfg.DatabaseDSN())
}
