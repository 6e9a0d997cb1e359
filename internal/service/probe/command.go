package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/report"
	"github.com/oshokin/shabbat-check/internal/service/common"
	"github.com/oshokin/shabbat-check/internal/service/server"
)

// Options configures a single probe.
type Options struct {
	// SettingsPath to YAML settings file, defaults to standard filename if empty.
	SettingsPath string
	// Address overrides the sidecar address from settings when specified.
	Address string
	// Output receives the is_shabbat line; nil means stdout.
	Output io.Writer
	// ClientOptions are passed to common.Dial.
	ClientOptions []common.Option
	// Attempts is how many times an unavailable sidecar is asked; zero means DefaultAttempts.
	Attempts uint
	// RetryDelay is the first backoff delay; zero means DefaultRetryDelay.
	RetryDelay time.Duration
}

const (
	// DefaultAttempts covers a sidecar that is still starting.
	DefaultAttempts = 3
	// DefaultRetryDelay is the first backoff delay between attempts.
	DefaultRetryDelay = 200 * time.Millisecond
)

// ErrUnexpectedStatus is returned when the sidecar does not know the window yet.
var ErrUnexpectedStatus = errors.New("unexpected sidecar status")

// Run queries the sidecar and returns the exit code.
func Run(ctx context.Context, opts *Options) (int, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "probe")

	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return report.ExitFatal, fmt.Errorf("load settings: %w", err)
	}

	address := settings.ListenAddress
	if opts.Address != "" {
		address = opts.Address
	}

	clientOptions := append([]common.Option{common.WithCallTimeout(settings.Timeout)}, opts.ClientOptions...)

	client, err := common.Dial(ctx, address, clientOptions...)
	if err != nil {
		return report.ExitFatal, err
	}

	defer func() {
		_ = client.Close()
	}()

	serving, err := check(ctx, client, opts)
	if err != nil {
		return report.ExitFatal, err
	}

	logger.DebugKV(ctx, "Sidecar answered", "address", address, "status", serving.String())

	var active bool

	switch serving {
	case healthpb.HealthCheckResponse_SERVING:
		active = false
	case healthpb.HealthCheckResponse_NOT_SERVING:
		active = true
	default:
		return report.ExitFatal, fmt.Errorf("%w: %s", ErrUnexpectedStatus, serving)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	code := report.ExitInactive
	line := "is_shabbat=0\n"

	if active {
		code = report.ExitActive
		line = "is_shabbat=1\n"
	}

	if _, err = io.WriteString(out, line); err != nil {
		return report.ExitFatal, fmt.Errorf("write probe result: %w", err)
	}

	return code, nil
}

// check asks for the window status, retrying while the sidecar is unreachable.
func check(
	ctx context.Context,
	client *common.Client,
	opts *Options,
) (healthpb.HealthCheckResponse_ServingStatus, error) {
	attempts := opts.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	delay := opts.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var (
		result  healthpb.HealthCheckResponse_ServingStatus
		lastErr error
	)

	err := retry.Do(
		func() error {
			var err error

			result, err = client.Check(ctx, server.ServiceName)
			lastErr = err

			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			logger.DebugKV(ctx, "Retrying sidecar check", "attempt", n+1, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			return status.Code(err) == codes.Unavailable
		}),
	)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}

		return healthpb.HealthCheckResponse_UNKNOWN, lastErr
	}

	return result, nil
}
