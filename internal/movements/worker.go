package movements

import (
	"context"
	"fmt"

	"product_service_backend/platform/config"
	"product_service_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Worker consumes movement events from the shared queue. Movement handling
// is not implemented yet; events are acknowledged so the queue does not back
// up while the movement domain is built out.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker creates the movement-stream worker.
func NewWorker(cfg config.WorkerConfig, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		log:    log,
	}

	mux.HandleFunc(TaskMovementRecorded, w.handleMovementRecorded)

	return w, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("movement worker stopped", "error", err)
	}
}

func (w *Worker) handleMovementRecorded(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMovementRecordedPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("movement event received",
		"movement_id", payload.MovementID,
		"product_id", payload.ProductID,
		"client_id", payload.ClientID,
	)
	return nil
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
