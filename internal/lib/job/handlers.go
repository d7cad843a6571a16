package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// handleOrderCreatedTask emails the shop owner. Returning an error makes
// Asynq retry the task.
func (j *JobService) handleOrderCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p OrderCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal order created payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskOrderCreated).
		Int64("order_id", p.OrderID).
		Logger()

	logger.Info().Msg("Processing order notification task")

	err := j.emails.SendOrderNotification(j.notifyEmail, email.OrderNotification{
		OrderID:       p.OrderID,
		Total:         p.Total,
		ItemCount:     p.ItemCount,
		CustomerName:  p.CustomerName,
		CustomerPhone: p.CustomerPhone,
		CustomerEmail: p.CustomerEmail,
		Address:       p.Address,
		Comment:       p.Comment,
		Status:        p.Status,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send order notification")
		return err
	}

	logger.Info().Msg("Successfully sent order notification")

	return nil
}

// asynqLogger adapts zerolog to asynq.Logger.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...interface{}) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...interface{})  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...interface{})  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...interface{}) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
