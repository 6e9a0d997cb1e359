package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/service/server"
)

var (
	// settingsPath to the sidecar settings YAML file.
	settingsPath string

	// serveCmd runs the gRPC health sidecar.
	serveCmd = &cobra.Command{
		Use:   "serve [listen-address]",
		Short: "Publish the window as a gRPC health status.",
		Long: `Starts a gRPC health server. The "shabbat" service is NOT_SERVING while
the window is open or SHABBAT.md cannot be evaluated, SERVING otherwise.
The overall server status stays SERVING.

SHABBAT.md is re-read every poll_interval from the settings file.
Listen address can be provided as argument to override settings (e.g., :9090, 127.0.0.1:50151).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on settings.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				SettingsPath:  settingsPath,
				ListenAddress: listenAddress,
				Check: checker.Options{
					ConfigPath: configPath,
				},
			}

			// A pinned --now freezes the sidecar clock.
			if cmd.Flags().Changed("now") {
				at := now
				options.Clock = func() time.Time { return at }
			}

			return server.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	serveCmd.Flags().StringVarP(&settingsPath, "settings", "s", config.DefaultSettingsFilename, "path to sidecar settings file")
}
