package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samvincent/orbital-gateway/internal/adapters/orbital"
	"github.com/samvincent/orbital-gateway/internal/config"
	paymenthandler "github.com/samvincent/orbital-gateway/internal/handlers/payment"
	pkghttp "github.com/samvincent/orbital-gateway/pkg/http"
	"github.com/samvincent/orbital-gateway/pkg/observability"
)

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := pkghttp.NewClient(pkghttp.GatewayClientConfig(), time.Duration(cfg.Gateway.Timeout)*time.Second)

	endpoints := orbital.DefaultEndpoints()
	if cfg.Gateway.PrimaryTestURL != "" {
		endpoints.PrimaryTest = cfg.Gateway.PrimaryTestURL
	}
	if cfg.Gateway.SecondaryTestURL != "" {
		endpoints.SecondaryTest = cfg.Gateway.SecondaryTestURL
	}
	if cfg.Gateway.PrimaryLiveURL != "" {
		endpoints.PrimaryLive = cfg.Gateway.PrimaryLiveURL
	}
	if cfg.Gateway.SecondaryLiveURL != "" {
		endpoints.SecondaryLive = cfg.Gateway.SecondaryLiveURL
	}

	gateway, err := orbital.New(orbital.Config{
		Login:            cfg.Gateway.Login,
		Password:         cfg.Gateway.Password,
		MerchantID:       cfg.Gateway.MerchantID,
		TerminalID:       cfg.Gateway.TerminalID,
		IPAuthentication: cfg.Gateway.IPAuthentication,
		CustomerProfiles: cfg.Gateway.CustomerProfiles,
		DefaultCurrency:  cfg.Gateway.DefaultCurrency,
		TestMode:         cfg.Gateway.TestMode,
		Endpoints:        endpoints,
	}, client, logger)
	if err != nil {
		logger.Fatal("failed to initialize gateway adapter", zap.Error(err))
	}

	handler := paymenthandler.NewHandler(gateway, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Route("/v1", handler.Routes)

	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.Bool("test_mode", cfg.Gateway.TestMode),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		logger.Error("metrics server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}
	return zcfg.Build()
}
