package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gorilla/mux"
    "github.com/rs/cors"

    "github.com/anne116/toronto-recreation-finder/config"
    "github.com/anne116/toronto-recreation-finder/handlers"
    "github.com/anne116/toronto-recreation-finder/loader"
    "github.com/anne116/toronto-recreation-finder/middleware"
)

type HealthResponse struct {
    Status    string `json:"status"`
    DBStatus  string `json:"db_status"`
    DBDetails struct {
        Host     string   `json:"host"`
        Port     string   `json:"port"`
        Database string   `json:"database"`
        Tables   []string `json:"tables,omitempty"`
    } `json:"db_details"`
    Error string `json:"error,omitempty"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
    response := HealthResponse{
        Status: "ok",
    }

    if config.DB == nil {
        response.Status = "error"
        response.DBStatus = "not_initialized"
        response.Error = "Database connection not initialized"
    } else if err := config.CheckPostgresHealth(); err != nil {
        response.Status = "error"
        response.DBStatus = "connection_error"
        response.Error = fmt.Sprintf("Database ping failed: %v", err)
    } else {
        response.DBStatus = "connected"
        response.DBDetails.Host = os.Getenv("DB_HOST")
        response.DBDetails.Port = os.Getenv("DB_PORT")
        response.DBDetails.Database = os.Getenv("DB_NAME")
        response.DBDetails.Tables = config.VerifySchema()
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(response)
}

func main() {
    runLoad := flag.Bool("load", false, "reset the schema and run the full data load, then exit")
    flag.Parse()

    startTime := time.Now()
    log.Printf("Starting initialization at %s", startTime.Format(time.RFC3339))

    // Load environment variables first
    if err := config.LoadEnv(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
        log.Printf("No PORT environment variable found, using default: %s", port)
    }

    // Initialize PostgreSQL database with retries
    log.Println("Initializing PostgreSQL database...")
    if err := config.InitDBWithRetry(5); err != nil {
        log.Fatalf("Failed to initialize PostgreSQL: %v", err)
    }
    log.Println("PostgreSQL database initialized successfully")
    defer config.CloseDB()

    if *runLoad {
        if err := loader.Run(config.DB, config.DataDir()); err != nil {
            log.Fatalf("Data load failed: %v", err)
        }
        log.Println("Data load completed")
        return
    }

    config.InitCache()

    r := mux.NewRouter()

    // CORS configuration
    corsHandler := cors.New(cors.Options{
        AllowedOrigins: config.AllowedOrigins(),
        AllowedMethods: []string{
            "GET", "OPTIONS",
        },
        AllowedHeaders: []string{
            "Accept",
            "Content-Type",
            "Origin",
            "X-Requested-With",
        },
        ExposedHeaders: []string{
            "Content-Length",
            "Content-Type",
        },
        AllowCredentials: false,
        MaxAge:           86400,
    })

    // Apply middlewares in correct order
    r.Use(corsHandler.Handler)
    r.Use(middleware.RecoveryMiddleware)
    r.Use(middleware.LoggingMiddleware)

    // API routes
    api := r.PathPrefix("/api/v1").Subrouter()
    registerRoutes(api)
    log.Println("Routes registered successfully")

    // Health check endpoint
    api.HandleFunc("/health/detailed", healthCheck).Methods("GET")

    srv := &http.Server{
        Handler:           r,
        Addr:              ":" + port,
        WriteTimeout:      15 * time.Second,
        ReadTimeout:       15 * time.Second,
        IdleTimeout:       60 * time.Second,
        ReadHeaderTimeout: 5 * time.Second,
        MaxHeaderBytes:    1 << 20,
    }

    serverErrors := make(chan error, 1)

    go func() {
        log.Printf("Starting server on port %s...", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Printf("Server error: %v", err)
            serverErrors <- err
        }
    }()

    log.Printf("Server is running at http://localhost:%s", port)
    log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)
    log.Printf("Centres endpoint: http://localhost:%s/api/v1/centres", port)

    // Handle graceful shutdown
    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

    select {
    case <-stop:
        log.Println("Shutdown signal received")
    case err := <-serverErrors:
        log.Printf("Server error received: %v", err)
    }

    log.Println("Shutting down server...")
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    if err := srv.Shutdown(ctx); err != nil {
        log.Printf("Error during server shutdown: %v", err)
    } else {
        log.Println("Server shutdown completed successfully")
    }
}

func registerRoutes(api *mux.Router) {
    // Centre routes. Fixed paths must come before the {id} routes.
    api.HandleFunc("/centres", handlers.GetCentres).Methods("GET")
    api.HandleFunc("/centres/geojson", handlers.GetCentresGeoJSON).Methods("GET")
    api.HandleFunc("/centres/nearby", handlers.GetNearbyCentres).Methods("GET")
    api.HandleFunc("/centres/{id}", handlers.GetCentreDetail).Methods("GET")
    api.HandleFunc("/centres/{id}/programs", handlers.GetCentrePrograms).Methods("GET")
    api.HandleFunc("/centres/{id}/program-types", handlers.GetCentreProgramTypes).Methods("GET")
    api.HandleFunc("/centres/{id}/facilities", handlers.GetCentreFacilities).Methods("GET")

    // Search routes
    api.HandleFunc("/programs/search", handlers.SearchPrograms).Methods("GET")
    api.HandleFunc("/programs/search/stats", handlers.GetSearchStats).Methods("GET")

    // Lookup routes
    api.HandleFunc("/activities", handlers.GetActivities).Methods("GET")
    api.HandleFunc("/districts", handlers.GetDistricts).Methods("GET")
    api.HandleFunc("/facility-types", handlers.GetFacilityTypes).Methods("GET")

    // Ward routes
    api.HandleFunc("/wards/geojson", handlers.GetWardsGeoJSON).Methods("GET")
    api.HandleFunc("/health/wards", handlers.GetWardsHealth).Methods("GET")

    // Statistics routes
    api.HandleFunc("/stats/summary", handlers.GetSummaryStats).Methods("GET")
    api.HandleFunc("/stats/by-district", handlers.GetStatsByDistrict).Methods("GET")

    // Health check
    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("OK"))
    }).Methods("GET")
}
