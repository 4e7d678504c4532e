package config

import "os"

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	Port         string
	SeedFile     string

	// Profile importer endpoints; overridable so tests and mirrors work.
	OverpassURL string
	OpenTopoURL string
}

// NewFromEnv creates a new Config object from HIKESIM_-prefixed environment
// variables, with working defaults for local development.
func NewFromEnv() *Config {
	return &Config{
		DatabasePath: envOr("HIKESIM_DATABASE_PATH", "data/hikesim.db"),
		Port:         envOr("HIKESIM_PORT", "8080"),
		SeedFile:     envOr("HIKESIM_SEED_FILE", "data/trails/preloaded.json"),
		OverpassURL:  envOr("HIKESIM_OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OpenTopoURL:  envOr("HIKESIM_OPENTOPO_URL", "https://api.opentopodata.org/v1/srtm90m"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
