package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string
	LogDir      string
	Debug       bool
}

// fileOverlay mirrors the optional docvault.yaml config file. Environment
// variables win over file values; the file only fills gaps.
type fileOverlay struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	JWKSURL     string `yaml:"jwks_url"`
	CORSOrigins string `yaml:"cors_origins"`
	LogDir      string `yaml:"log_dir"`
}

func Load() *Config {
	overlay := loadOverlay(os.Getenv("CONFIG_FILE"))

	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", fallback(overlay.Port, "8080")),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", overlay.DatabaseURL),
		JWKSURL:     getEnv("JWKS_URL", overlay.JWKSURL),
		CORSOrigins: getEnv("CORS_ORIGINS", fallback(overlay.CORSOrigins, "http://localhost:3000")),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", overlay.LogDir),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// loadOverlay reads the optional YAML config file. Missing file is fine.
func loadOverlay(path string) fileOverlay {
	if path == "" {
		path = "docvault.yaml"
	}

	var overlay fileOverlay
	data, err := os.ReadFile(path)
	if err != nil {
		return overlay
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring malformed config file %s: %v\n", path, err)
		return fileOverlay{}
	}
	return overlay
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
