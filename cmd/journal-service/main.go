package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swingmate/internal/journal/config"
	delivery "swingmate/internal/journal/delivery/http"
	"swingmate/internal/journal/repository"
	"swingmate/internal/journal/service"
	"swingmate/pkg/logger"
	"swingmate/pkg/postgres"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trade journal service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Journal Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// The quote cache lives exactly as long as the process. One entry per
	// ticker; stale entries are detected lazily on read.
	quoteTTL := 5 * time.Minute
	if cfg.Quotes.CacheTTL != "" {
		quoteTTL, err = time.ParseDuration(cfg.Quotes.CacheTTL)
		if err != nil {
			appLogger.Fatal("Invalid quote cache TTL", logger.ErrorField(err))
		}
	}
	quoteCache := cache.New(quoteTTL, 2*quoteTTL)

	// Initialize repositories
	tradeRepo := repository.NewTradeRepository(db.DB)
	finnhubRepo := repository.NewFinnhubRepository(cfg, appLogger)

	// Initialize services
	quoteSvc := service.NewQuoteService(finnhubRepo, quoteCache, appLogger)
	tradeSvc := service.NewTradeService(tradeRepo, appLogger)
	portfolioSvc := service.NewPortfolioService(tradeRepo, quoteSvc, appLogger)

	// Start the background quote warm-up when a schedule is configured
	if cfg.Quotes.RefreshSchedule != "" {
		refresher, err := service.NewQuoteRefresher(cfg.Quotes.RefreshSchedule, tradeRepo, quoteSvc, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid quote refresh schedule", logger.ErrorField(err))
		}
		refresher.Start()
		defer refresher.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	quoteHandler := delivery.NewQuoteHandler(quoteSvc, appLogger)
	quoteHandler.RegisterRoutes(apiV1.Group("/quote"))

	tradeHandler := delivery.NewTradeHandler(tradeSvc, appLogger)
	tradeHandler.RegisterRoutes(apiV1.Group("/holdings"))

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolio"))

	watchlistHandler := delivery.NewWatchlistHandler(portfolioSvc, appLogger)
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "journal-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing journal-service CLI: %s\n", err)
		os.Exit(1)
	}
}
