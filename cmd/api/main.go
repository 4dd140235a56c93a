package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sundial-labs/square-booking-api/internal/api/router"
	"github.com/sundial-labs/square-booking-api/internal/booking"
	appconfig "github.com/sundial-labs/square-booking-api/internal/config"
	"github.com/sundial-labs/square-booking-api/internal/http/handlers"
	"github.com/sundial-labs/square-booking-api/internal/observability/metrics"
	"github.com/sundial-labs/square-booking-api/internal/square"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

func main() {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting square-booking-api server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	apiMetrics := metrics.NewAPIMetrics(registry)

	squareClient := square.NewClient(cfg.SquareAccessToken, logger,
		square.WithBaseURL(cfg.SquareBaseURL),
		square.WithAPIVersion(cfg.SquareAPIVersion),
		square.WithTimeout(cfg.SquareTimeout),
		square.WithMetrics(apiMetrics),
	)
	bookingService := booking.NewService(squareClient, cfg.SquareLocationID, cfg.DefaultTimezone, logger)
	bookingHandler := handlers.NewHandler(bookingService, cfg.Env, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		Booking:            bookingHandler,
		AuthToken:          cfg.AuthToken,
		Metrics:            apiMetrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
