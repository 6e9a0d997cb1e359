package server

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/solar"
)

// ServiceName is the health service that mirrors the pause window.
const ServiceName = "shabbat"

// monitor re-evaluates the window and publishes it as a health status.
// It is unexported to keep the transport decoupled from the evaluation.
type monitor struct {
	// health is the gRPC health implementation the status is published to.
	health *health.Server
	// check is the evaluation template; Now is overwritten on every refresh.
	check checker.Options
	// clock returns the evaluated instant.
	clock func() time.Time

	// status is the last published status of ServiceName.
	status healthpb.HealthCheckResponse_ServingStatus
	// directivesPath is the last SHABBAT.md that was evaluated.
	directivesPath string
	// mu protects status and directivesPath.
	mu sync.Mutex
}

// newMonitor creates a monitor with ServiceName still unknown.
func newMonitor(check *checker.Options, clock func() time.Time) *monitor {
	if clock == nil {
		clock = time.Now
	}

	opts := *check
	if opts.Calculator == nil {
		opts.Calculator = solar.NewCache(solar.NOAA{}, solar.DefaultCacheSize)
	}

	return &monitor{
		health: health.NewServer(),
		check:  opts,
		clock:  clock,
		status: healthpb.HealthCheckResponse_SERVICE_UNKNOWN,
	}
}

// refresh evaluates the window at the current clock and publishes the result.
// Any evaluation error pauses the agent.
func (m *monitor) refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	opts := m.check
	opts.Now = m.clock()

	status := healthpb.HealthCheckResponse_SERVING

	eval, err := checker.Evaluate(ctx, &opts)
	switch {
	case err != nil:
		logger.ErrorKV(ctx, "Window evaluation failed, reporting not serving", "error", err)

		status = healthpb.HealthCheckResponse_NOT_SERVING
	case eval.Report().IsActive():
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if eval != nil {
		m.directivesPath = eval.DirectivesPath
	}

	if status != m.status {
		logger.InfoKV(ctx, "Window status changed", "service", ServiceName, "status", status.String())
	}

	m.status = status
	m.health.SetServingStatus(ServiceName, status)

	return status
}

// watchedPath returns the SHABBAT.md to watch: the pinned path, else the last one found.
func (m *monitor) watchedPath() string {
	if m.check.ConfigPath != "" {
		return m.check.ConfigPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.directivesPath
}
