// cmd/payment-intake-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "payment_intake_service/internal/api/rest/v1"
	"payment_intake_service/internal/app"
	"payment_intake_service/internal/domain/keys"
	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/infrastructure/cryptography"
	"payment_intake_service/internal/infrastructure/keystore"
	"payment_intake_service/internal/infrastructure/persistence"
	"payment_intake_service/internal/infrastructure/persistence/models"
	"payment_intake_service/internal/pkg/config"
	"payment_intake_service/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
}

type appServices struct {
	handshake        payment.HandshakeService
	payment          payment.PaymentService
	transactionQuery payment.TransactionQueryService
	transactionStats payment.TransactionStatsService
}

// initializeDependencies sets up all application components. The keystore
// must resolve a keypair before the server accepts traffic; a failure here
// is fatal.
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.TransactionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repository
	transactionRepo, err := persistence.NewGormTransactionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction repository: %w", err)
	}

	// Initialize keystore
	rsaProcessor, err := cryptography.NewRSAProcessor(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	keyStore, err := keystore.NewFileKeyStore(cfg.Keys, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create keystore: %w", err)
	}

	if err := keyStore.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize keystore: %w", err)
	}
	log.Info("Keystore initialized successfully")

	// Initialize services
	services, err := initializeApplicationServices(keyStore, transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	warnDisabledGuards(&cfg.Security, log)

	return &appDependencies{
		services: services,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	keyStore keys.KeyStore,
	transactionRepo payment.TransactionRepository,
	log logger.Logger,
) (*appServices, error) {
	handshakeService, err := app.NewHandshakeService(keyStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create handshake service: %w", err)
	}

	paymentService, err := app.NewPaymentService(keyStore, transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	transactionQueryService, err := app.NewTransactionQueryService(transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction query service: %w", err)
	}

	transactionStatsService, err := app.NewTransactionStatsService(transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction stats service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		handshake:        handshakeService,
		payment:          paymentService,
		transactionQuery: transactionQueryService,
		transactionStats: transactionStatsService,
	}, nil
}

// warnDisabledGuards logs every perimeter guard left disabled by
// configuration. Running without them is only acceptable for local
// research use.
func warnDisabledGuards(security *config.SecuritySettings, log logger.Logger) {
	if !security.SessionGuardEnabled() {
		log.Warn("Session guard disabled: no session_secret configured")
	}
	if security.AdminAPIKey == "" {
		log.Warn("Admin guard disabled: no admin_api_key configured, admin endpoints are open")
	}
	if security.FrontendOrigin == "" {
		log.Warn("No frontend_origin configured, allowing all origins")
	}
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()
	r.Use(v1.Recovery(log))

	// Configure CORS
	allowedOrigins := []string{"*"}
	if cfg.Security.FrontendOrigin != "" {
		allowedOrigins = []string{cfg.Security.FrontendOrigin}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", cfg.Security.SessionHeaderName(), "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: cfg.Security.FrontendOrigin != "",
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.handshake,
		deps.services.payment,
		deps.services.transactionQuery,
		deps.services.transactionStats,
		&cfg.Security,
		log,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
