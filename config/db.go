package config

import (
    "context"
    "database/sql"
    "fmt"
    "log"
    "os"
    "time"

    "github.com/joho/godotenv"
    _ "github.com/lib/pq"
)

var DB *sql.DB

const (
    maxRetries = 5
    retryDelay = 5 * time.Second
)

// LoadEnv loads environment variables from a .env file if one is present.
// A missing file is not an error when the database variables are already set.
func LoadEnv() error {
    possiblePaths := []string{
        ".env",
        "../.env",
        os.Getenv("RECREATION_ENV"),
    }

    for _, path := range possiblePaths {
        if path == "" {
            continue
        }
        if _, err := os.Stat(path); err == nil {
            log.Printf("Loading environment variables from %s", path)
            return godotenv.Load(path)
        }
    }

    if os.Getenv("DB_HOST") != "" || os.Getenv("DB_NAME") != "" {
        return nil
    }
    return fmt.Errorf("no .env file found and no database configuration set in environment")
}

// InitDBWithRetry attempts to connect to PostgreSQL with retries
func InitDBWithRetry(maxRetries int) error {
    var err error
    for i := 0; i < maxRetries; i++ {
        err = InitDB()
        if err == nil {
            return nil
        }
        log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
        time.Sleep(retryDelay)
    }
    return fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err)
}

func InitDB() error {
    connStr := getPostgresConnString()

    log.Printf("DB Host: %s", getEnvWithDefault("DB_HOST", "localhost"))
    log.Printf("DB Port: %s", getEnvWithDefault("DB_PORT", "5432"))
    log.Printf("DB Name: %s", getEnvWithDefault("DB_NAME", "poc_db"))

    var err error
    DB, err = sql.Open("postgres", connStr)
    if err != nil {
        return fmt.Errorf("error opening PostgreSQL database: %v", err)
    }

    // Set connection pool settings
    DB.SetMaxOpenConns(25)
    DB.SetMaxIdleConns(5)
    DB.SetConnMaxLifetime(5 * time.Minute)

    // Verify connection with timeout
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    if err = DB.PingContext(ctx); err != nil {
        return fmt.Errorf("error connecting to PostgreSQL database: %v", err)
    }

    log.Printf("Successfully connected to PostgreSQL database")

    // Verify the spatial extension is available; every query that touches
    // geometry depends on it.
    var postgisVersion string
    if err := DB.QueryRowContext(ctx, `SELECT PostGIS_Version()`).Scan(&postgisVersion); err != nil {
        return fmt.Errorf("PostGIS extension not available: %v", err)
    }
    log.Printf("PostGIS version: %s", postgisVersion)

    return nil
}

// VerifySchema reports which of the expected tables exist. Used by the
// detailed health endpoint; the load pipeline creates them.
func VerifySchema() []string {
    tables := []string{"locations", "programs_dropin", "programs_registered", "facilities", "wards"}
    var existing []string

    for _, table := range tables {
        var exists bool
        err := DB.QueryRow(`
            SELECT EXISTS (
                SELECT FROM information_schema.tables
                WHERE table_name = $1
            )`, table).Scan(&exists)

        if err == nil && exists {
            existing = append(existing, table)
        }
    }
    return existing
}

func CheckPostgresHealth() error {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := DB.PingContext(ctx); err != nil {
        return fmt.Errorf("PostgreSQL health check failed: %v", err)
    }
    return nil
}

// Graceful shutdown
func CloseDB() {
    if DB != nil {
        if err := DB.Close(); err != nil {
            log.Printf("Error closing PostgreSQL connection: %v", err)
        }
    }
}
