package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/hackgods/appointment-scheduler/internal/api"
	"github.com/hackgods/appointment-scheduler/internal/appointment"
	"github.com/hackgods/appointment-scheduler/internal/config"
	"github.com/hackgods/appointment-scheduler/internal/logger"
	"github.com/hackgods/appointment-scheduler/internal/metrics"
	"github.com/hackgods/appointment-scheduler/internal/patient"
	"github.com/hackgods/appointment-scheduler/internal/seed"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("api-server starting up",
		zap.String("http_port", cfg.HTTPPort),
		zap.String("version", version),
		zap.Bool("trust_proxy_headers", cfg.TrustProxyHeaders),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := patient.NewRegistry()
	m := metrics.NewCollector()

	if cfg.SeedPatients > 0 {
		seeded := seed.Patients(registry, gofakeit.New(uint64(time.Now().UnixNano())), cfg.SeedPatients)
		m.PatientsRegisteredTotal.Add(float64(len(seeded)))
		zl.Info("patients seeded", zap.Int("count", len(seeded)))
	}
	m.PatientsKnown.Set(float64(registry.Len()))

	svc := appointment.NewService(registry, zl.Named("appointment"))

	router := api.NewRouter(api.RouterConfig{
		Patients:    registry,
		Scheduler:   svc,
		Metrics:     m,
		RateLimiter: api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:      zl.Named("http"),
		Env:         cfg.Env,
		Version:     version,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-rootCtx.Done():
		zl.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			zl.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}

	zl.Info("shutting down api-server", zap.Int("patients", registry.Len()))
}
