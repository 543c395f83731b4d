package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the environment-driven settings. Defaults match the
// original deployment: 16MB uploads, strict online status policy, business
// day starting at midnight.
type Config struct {
	Port               string
	MaxUploadMB        int64
	OnlineStatusPolicy string
	DefaultCutoff      string
	AllowedOrigins     []string
}

// Load reads settings from the environment. godotenv is loaded by main
// before this runs.
func Load() *Config {
	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		MaxUploadMB:        16,
		OnlineStatusPolicy: getenv("ONLINE_STATUS_POLICY", "strict"),
		DefaultCutoff:      getenv("DEFAULT_CUTOFF", "00:00"),
		AllowedOrigins:     strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}
	if raw := os.Getenv("MAX_UPLOAD_MB"); raw != "" {
		if mb, err := strconv.ParseInt(raw, 10, 64); err == nil && mb > 0 {
			cfg.MaxUploadMB = mb
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
