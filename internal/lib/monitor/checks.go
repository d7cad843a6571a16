// Package monitor probes the storefront's backing services. The same
// checks answer GET /status and run on a cron schedule in the background.
package monitor

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/server"
)

const (
	CheckDatabase = "database"
	CheckRedis    = "redis"

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Check probes one dependency. A Critical failure makes the service
// unhealthy as a whole.
type Check struct {
	Name     string
	Critical bool
	Probe    func(ctx context.Context) error
}

// Result is the outcome of one Check.
type Result struct {
	Status       string        `json:"status"`
	ResponseTime string        `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"-"`
	Critical     bool          `json:"-"`
	Err          error         `json:"-"`
}

// Report aggregates the results of a run.
type Report struct {
	Healthy bool
	Results map[string]Result
}

// Run executes the checks one after another, each bounded by timeout.
func Run(ctx context.Context, timeout time.Duration, checks []Check) Report {
	report := Report{Healthy: true, Results: make(map[string]Result, len(checks))}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		start := time.Now()
		err := check.Probe(checkCtx)
		elapsed := time.Since(start)
		cancel()

		result := Result{
			Status:       StatusHealthy,
			ResponseTime: elapsed.String(),
			Duration:     elapsed,
			Critical:     check.Critical,
		}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Error = err.Error()
			result.Err = err
			if check.Critical {
				report.Healthy = false
			}
		}

		report.Results[check.Name] = result
	}

	return report
}

// ServerChecks builds the checks for the dependencies s holds, limited to
// names. The database is critical; Redis only backs notifications.
func ServerChecks(s *server.Server, names []string) []Check {
	var checks []Check

	for _, name := range names {
		switch name {
		case CheckDatabase:
			if s.DB != nil {
				checks = append(checks, Check{Name: CheckDatabase, Critical: true, Probe: s.DB.Ping})
			}
		case CheckRedis:
			if s.Redis != nil {
				redis := s.Redis
				checks = append(checks, Check{Name: CheckRedis, Probe: func(ctx context.Context) error {
					return redis.Ping(ctx).Err()
				}})
			}
		}
	}

	return checks
}
