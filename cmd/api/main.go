package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product_service_backend/internal/client"
	apphttp "product_service_backend/internal/http"
	"product_service_backend/internal/http/router"
	"product_service_backend/internal/product"
	"product_service_backend/platform/breaker"
	"product_service_backend/platform/config"
	"product_service_backend/platform/db"
	"product_service_backend/platform/logger"
	"product_service_backend/platform/metrics"
	"product_service_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	collector := metrics.NewCollector()

	clientBreaker := breaker.New(client.BreakerName, breaker.Config{
		WindowSize:  cfg.GetBreakerWindowSize(),
		MinCalls:    cfg.GetBreakerMinCalls(),
		FailureRate: cfg.GetBreakerFailureRate(),
		Cooldown:    cfg.GetBreakerCooldown(),
		HalfOpenMax: cfg.GetBreakerHalfOpenMax(),
	})
	clientBreaker.OnStateChange(func(name string, from, to breaker.State) {
		log.BreakerTransition(name, from.String(), to.String())
		collector.BreakerState(name, float64(to))
	})

	clientGateway := client.New(client.Config{
		BaseURL: cfg.GetClientServiceURL(),
		Timeout: cfg.GetClientServiceTimeout(),
	}, clientBreaker, log, collector)

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	productModule := product.NewModule(pool, clientGateway, val, collector, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  db.NewPoolAdapter(pool),
		Metrics: collector.Handler(),
		Modules: []apphttp.Module{
			productModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
