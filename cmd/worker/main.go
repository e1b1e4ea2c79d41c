package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"product_service_backend/internal/movements"
	"product_service_backend/platform/config"
	"product_service_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting movement worker", "env", cfg.Env, "queue", cfg.QueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := movements.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to create movement worker", "error", err)
		panic("failed to create movement worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("movement worker stopped")
}
