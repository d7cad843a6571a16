// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server      *asynq.Server
	logger      *zerolog.Logger
	emails      *email.Client
	notifyEmail string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:      client,
		server:      server,
		logger:      logger,
		emails:      email.NewClient(cfg, logger),
		notifyEmail: cfg.Integration.NotifyEmail,
	}
}

// Start registers task handlers and starts the worker server. Asynq runs
// the workers in their own goroutines, Start returns once they are up.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOrderCreated, j.handleOrderCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the job server and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

// EnqueueOrderCreated schedules the owner notification for a stored order.
func (j *JobService) EnqueueOrderCreated(ctx context.Context, order *model.Order) error {
	task, err := NewOrderCreatedTask(NewOrderCreatedPayload(order))
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("order_id", order.ID).
		Msg("order notification enqueued")

	return nil
}
