package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traveldesk-service/internal/infrastructure/config"
	"traveldesk-service/internal/infrastructure/oauth"
	"traveldesk-service/internal/infrastructure/persistence"
	"traveldesk-service/internal/interface/gmail"
	"traveldesk-service/internal/interface/repository"
	"traveldesk-service/internal/interface/rest"
	"traveldesk-service/internal/usecase"
	"traveldesk-service/pkg/logger"
	"traveldesk-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration first so the logger honors LOG_LEVEL
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting TravelDesk Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection for the receipt archive
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	tripRepo := repository.NewGormTripRepository(gormDB)
	personRepo := repository.NewGormPersonRepository(gormDB)
	receiptRepo := repository.NewMongoReceiptRepository(mongoDB)
	whatsappRepo := repository.NewWhatsappRepository(
		cfg.WhatsAppServiceURL,
		cfg.WhatsAppToken,
		cfg.DefaultCountryCode,
		log,
	)

	// Set up Gmail OAuth and the email sender
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)

	emailSender, err := gmail.NewGmailSender(ctx, tokenSource, cfg.EmailFrom, log)
	if err != nil {
		log.Fatal("Failed to create Gmail sender", "error", err)
	}

	// Set up the notification composer
	m := metrics.NewMetrics("traveldesk", prometheus.DefaultRegisterer)
	composer := usecase.NewNotificationComposer(tripRepo, personRepo, receiptRepo, emailSender, whatsappRepo, m, log)

	// Set up the HTTP API
	server := rest.NewServer(tripRepo, receiptRepo, composer, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("TravelDesk Service stopped")
}
