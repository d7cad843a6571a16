package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs the checks on a fixed interval and reports failures to the
// log and, when configured, to New Relic as HealthCheckError events.
type Monitor struct {
	sched   *cron.Cron
	checks  []Check
	timeout time.Duration
	logger  zerolog.Logger
	nrApp   *newrelic.Application
}

func New(cfg config.HealthChecksConfig, checks []Check, logger *zerolog.Logger, nrApp *newrelic.Application) (*Monitor, error) {
	m := &Monitor{
		sched:   cron.New(),
		checks:  checks,
		timeout: cfg.Timeout,
		logger:  logger.With().Str("component", "health_monitor").Logger(),
		nrApp:   nrApp,
	}

	schedule := fmt.Sprintf("@every %s", cfg.Interval)
	if _, err := m.sched.AddFunc(schedule, m.RunOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule health checks %q: %w", schedule, err)
	}

	return m, nil
}

func (m *Monitor) Start() {
	m.logger.Info().Int("checks", len(m.checks)).Msg("starting health monitor")
	m.sched.Start()
}

// Stop halts the schedule and waits for a running pass to finish or ctx
// to expire.
func (m *Monitor) Stop(ctx context.Context) {
	select {
	case <-m.sched.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one pass over the checks.
func (m *Monitor) RunOnce() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("health check panicked")
		}
	}()

	report := Run(context.Background(), m.timeout, m.checks)

	for name, result := range report.Results {
		if result.Err == nil {
			m.logger.Debug().Str("check", name).Dur("response_time", result.Duration).Msg("health check passed")
			continue
		}

		m.logger.Error().
			Err(result.Err).
			Str("check", name).
			Bool("critical", result.Critical).
			Dur("response_time", result.Duration).
			Msg("health check failed")

		RecordFailure(m.nrApp, name, "monitor", result)
	}
}

// RecordFailure sends a HealthCheckError custom event. It is a no-op
// without a New Relic application.
func RecordFailure(nrApp *newrelic.Application, check, operation string, result Result) {
	if nrApp == nil {
		return
	}

	nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        operation,
		"error_type":       check + "_unhealthy",
		"response_time_ms": result.Duration.Milliseconds(),
		"error_message":    result.Error,
	})
}
