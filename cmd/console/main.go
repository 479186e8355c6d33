package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/appointments"
	"github.com/clinicops/clinic-console/internal/config"
	"github.com/clinicops/clinic-console/internal/console"
	"github.com/clinicops/clinic-console/internal/inventory"
	"github.com/clinicops/clinic-console/internal/medservices"
	"github.com/clinicops/clinic-console/internal/observability/metrics"
	"github.com/clinicops/clinic-console/internal/patients"
	"github.com/clinicops/clinic-console/internal/session"
	"github.com/clinicops/clinic-console/internal/syncer"
	"github.com/clinicops/clinic-console/internal/users"
	"github.com/clinicops/clinic-console/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic console",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.BackendBaseURL,
	)

	// Session token store: redis when configured, in-memory otherwise.
	var store session.TokenStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = session.NewRedisTokenStore(rdb, cfg.SessionTokenKey)
		logger.Info("session store: redis", "addr", cfg.RedisAddr)
	} else {
		store = session.NewMemoryTokenStore()
		logger.Warn("session store: in-memory, sessions will not survive restarts")
	}

	sess := session.New(store, logger)
	client := api.NewClient(cfg.BackendBaseURL, sess, cfg.RequestTimeout, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	syncMetrics := metrics.NewSyncMetrics(registry)

	scheduleSync := syncer.New(client, appointments.Adapter(), logger, syncMetrics)
	handler := console.NewHandler(console.Deps{
		Client:      client,
		Users:       users.NewService(client, logger),
		Inventory:   syncer.New(client, inventory.Adapter(), logger, syncMetrics),
		Patients:    syncer.New(client, patients.Adapter(), logger, syncMetrics),
		PatientCare: patients.NewService(client, logger),
		Schedule: appointments.NewService(client, scheduleSync,
			appointments.Table(cfg.StrictAppointmentFlow), logger),
		Meds:   medservices.NewService(client, logger),
		Logger: logger,
	})

	router := console.NewRouter(console.RouterConfig{
		Console:        handler,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
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
