package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/shabbat-check/internal/logger"
	"github.com/oshokin/shabbat-check/internal/report"
	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/version"
)

var (
	// configPath pins SHABBAT.md; empty means search upward from the working directory.
	configPath string
	// logLevel is the zap level name for diagnostics on stderr.
	logLevel string
	// nowValue is the --now flag in RFC3339; empty means the wall clock.
	nowValue string
	// formatValue is the --format flag of the one-shot check.
	formatValue string

	// now is the evaluated instant, set once before any subcommand runs.
	now time.Time
	// exitCode is returned to the shell when no error occurred.
	exitCode = report.ExitInactive

	// errInvalidLogLevel is returned for an unknown --log-level value.
	errInvalidLogLevel = errors.New("invalid log level")

	// rootCmd represents the one-shot check.
	rootCmd = &cobra.Command{
		Use:   "shabbat-check",
		Short: "Tell an autonomous agent whether it must pause for Shabbat.",
		Long: `Reads SHABBAT.md from the current directory or the nearest parent, computes
today's sunset and nightfall for the configured location and prints:

  pause_at=HH:MM
  resume_at=HH:MM
  is_shabbat=0|1

When life_safety_override is true it prints life_safety_override=true and
is_shabbat=0 without computing anything.

Exit status is 0 when the agent may work, 2 while the window is open and 1
when the check itself failed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("%w: %q", errInvalidLogLevel, logLevel)
			}

			logger.SetLevel(level)

			if nowValue == "" {
				now = time.Now()

				return nil
			}

			parsed, err := time.Parse(time.RFC3339, nowValue)
			if err != nil {
				return fmt.Errorf("parse --now: %w", err)
			}

			now = parsed

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(formatValue)
			if err != nil {
				return err
			}

			code, err := checker.Run(cmd.Context(), &checker.Options{
				ConfigPath: configPath,
				Now:        now,
				Format:     format,
				Output:     cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			exitCode = code

			return nil
		},
	}
)

// Execute runs the shabbat-check CLI and exits with the check's status.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(report.ExitFatal)
	}

	os.Exit(exitCode)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to SHABBAT.md (default: search upward)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level written to stderr")
	rootCmd.PersistentFlags().StringVar(&nowValue, "now", "", "evaluate at this RFC3339 instant instead of the wall clock")
	rootCmd.Flags().StringVarP(&formatValue, "format", "f", string(report.FormatLines), "output format: lines, yaml or json")

	rootCmd.AddCommand(timesCmd, initCmd, serveCmd, probeCmd)
}
