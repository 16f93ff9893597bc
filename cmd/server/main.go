package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "registration-backend/internal/api/http"
	"registration-backend/internal/capacity"
	"registration-backend/internal/config"
	"registration-backend/internal/logger"
	"registration-backend/internal/pricing"
	"registration-backend/internal/repository/postgres"
	"registration-backend/internal/security"
	"registration-backend/internal/service"
	"registration-backend/internal/validate"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting registration backend...", "event", cfg.Event.Name, "log_level", cfg.Log.Level)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Mail configuration", "provider", cfg.Mail.Provider, "from", cfg.Mail.From)
	logger.Info("Stay configuration", "capacity", cfg.Event.StayCapacity, "price_per_day", cfg.Event.StayPricePerDay)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.TokenExpiry())

	// Initialize business rules
	calc := pricing.NewCalculator(cfg.Event)
	validator := validate.New(cfg.Event, calc)
	ledger := capacity.NewLedger(store, cfg.Event)

	// Initialize Email Service
	emailSvc, err := service.NewEmailService(cfg.Mail, cfg.Event.Name)
	if err != nil {
		logger.Error("Failed to initialize email service", "error", err)
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize Services
	regSvc := service.NewRegistrationService(store, validator, ledger, emailSvc)
	adminSvc := service.NewAdminService(store, tokenManager, emailSvc, ledger, cfg.Admin)

	// Set up HTTP server
	router := httpapi.NewRouter(cfg, db, regSvc, adminSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
