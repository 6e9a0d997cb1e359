package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/service/checker"
)

// Options controls the sidecar process and configuration.
type Options struct {
	// SettingsPath specifies the path to settings YAML file.
	SettingsPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// Check holds the evaluation inputs; Now is ignored and replaced by Clock on every tick.
	Check checker.Options
	// Clock returns the evaluated instant; nil means time.Now.
	Clock func() time.Time
}

// ErrNoListenAddress indicates missing listen configuration.
var ErrNoListenAddress = errors.New("no listen address configured")

// Run starts the health server and blocks until context is canceled or server stops.
// Loads settings first, then determines listen address from settings or override.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "serve")

	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	listenAddress, err := resolveListenAddress(settings.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	// SHABBAT.md from settings unless pinned on the command line.
	check := opts.Check
	if check.ConfigPath == "" {
		check.ConfigPath = settings.DirectivesPath
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	logger.InfoKV(ctx, "Sidecar listening",
		"listen_address", listenAddress,
		"poll_interval", settings.PollInterval.String(),
	)

	return serve(ctx, lis, newMonitor(&check, opts.Clock), settings.PollInterval)
}

// serve registers the health service on lis and refreshes it every interval.
// The refresh loop and the watcher stop with it, even when Serve fails.
func serve(ctx context.Context, lis net.Listener, mon *monitor, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, mon.health)

	// First status is published before the first connection is accepted.
	mon.refresh(ctx)

	// A nil channel never fires, leaving the ticker as the only trigger.
	changes, err := watchDirectives(ctx, mon.watchedPath())
	if err != nil {
		logger.WarnKV(ctx, "Watching directives disabled, relying on polling", "error", err)
	}

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info(ctx, "Shutting down gRPC server")
				mon.health.Shutdown()
				grpcServer.GracefulStop()
				close(done)

				return
			case <-ticker.C:
				mon.refresh(ctx)
			case <-changes:
				mon.refresh(ctx)
			}
		}
	}()

	if err = grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		cancel()
		<-done

		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// The override wins; otherwise the configured address is used as is.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoListenAddress
	}

	if _, _, err := net.SplitHostPort(configAddr); err != nil {
		return "", fmt.Errorf("invalid listen address format %q: %w", configAddr, err)
	}

	return configAddr, nil
}
