package config

import (
    "os"
    "strconv"
    "strings"
)

// Database configuration
func getPostgresConnString() string {
    host := getEnvWithDefault("DB_HOST", "localhost")
    port := getEnvWithDefault("DB_PORT", "5432")
    user := getEnvWithDefault("DB_USER", "poc")
    password := getEnvWithDefault("DB_PASSWORD", "poc123")
    dbname := getEnvWithDefault("DB_NAME", "poc_db")
    sslmode := getEnvWithDefault("DB_SSL_MODE", "disable")

    return "host=" + host + " port=" + port + " user=" + user +
           " password=" + password + " dbname=" + dbname + " sslmode=" + sslmode
}

// DataDir returns the directory holding the raw open-data files consumed
// by the load pipeline.
func DataDir() string {
    return getEnvWithDefault("DATA_DIR", "data/raw_data")
}

// AllowedOrigins returns the CORS origin whitelist. Comma-separated in the
// ALLOWED_ORIGINS variable, with localhost dev origins as the default.
func AllowedOrigins() []string {
    if value := os.Getenv("ALLOWED_ORIGINS"); value != "" {
        parts := strings.Split(value, ",")
        origins := make([]string, 0, len(parts))
        for _, p := range parts {
            if trimmed := strings.TrimSpace(p); trimmed != "" {
                origins = append(origins, trimmed)
            }
        }
        return origins
    }
    return []string{
        "http://localhost:3000",
        "http://localhost:5173",
        "http://localhost:8080",
        "http://127.0.0.1:3000",
    }
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
    if value := os.Getenv(key); value != "" {
        if intValue, err := strconv.Atoi(value); err == nil {
            return intValue
        }
    }
    return defaultValue
}
