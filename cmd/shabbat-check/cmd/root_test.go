package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/report"
)

// execute runs the root command with args and returns stdout.
// Commands share package state, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	exitCode = report.ExitInactive
	nowValue, formatValue, configPath, logLevel = "", string(report.FormatLines), "", "warn"

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

// TestRoot_OneShot evaluates a pinned instant through the flags.
func TestRoot_OneShot(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DirectivesFilename)
	require.NoError(t, os.WriteFile(path, []byte("- timezone: America/New_York\n- pause_trigger: candle-lighting\n"), 0o600))

	out, err := execute(t, "--config", path, "--now", "2024-09-13T19:00:00-04:00")
	require.NoError(t, err)
	require.Equal(t, "pause_at=18:49\nresume_at=19:35\nis_shabbat=1\n", out)
	require.Equal(t, report.ExitActive, exitCode)

	out, err = execute(t, "--config", path, "--now", "2024-09-13T16:50:00-04:00", "--format", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"is_shabbat"`)
	require.Contains(t, out, `"phase"`)
	require.Equal(t, report.ExitInactive, exitCode)
}

// TestRoot_BadFlags rejects malformed flag values before evaluating.
func TestRoot_BadFlags(t *testing.T) {
	_, err := execute(t, "--now", "friday evening")
	require.Error(t, err)

	_, err = execute(t, "--log-level", "loud")
	require.ErrorIs(t, err, errInvalidLogLevel)

	_, err = execute(t, "--now", "2024-09-13T19:00:00Z", "--format", "xml")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

// TestInit_WritesTemplate writes once and refuses to overwrite without --force.
func TestInit_WritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DirectivesFilename)

	out, err := execute(t, "init", "--config", path, "--timezone", "Europe/London")
	require.NoError(t, err)
	require.Contains(t, out, path)

	directives, err := config.LoadDirectives(path)
	require.NoError(t, err)
	require.Equal(t, "Europe/London", directives.Timezone)

	_, err = execute(t, "init", "--config", path)
	require.ErrorIs(t, err, config.ErrTemplateExists)

	_, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)

	initForce = false
}

// TestInit_WritesSettings pins the sidecar settings to the new SHABBAT.md.
func TestInit_WritesSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DirectivesFilename)
	settingsFile := filepath.Join(dir, config.DefaultSettingsFilename)

	out, err := execute(t, "init", "--config", path, "--with-settings")
	require.NoError(t, err)
	require.Contains(t, out, settingsFile)

	settings, err := config.LoadSettings(settingsFile)
	require.NoError(t, err)
	require.Equal(t, path, settings.DirectivesPath)
	require.Equal(t, config.DefaultListenAddress, settings.ListenAddress)
	require.Equal(t, config.DefaultPollInterval, settings.PollInterval)

	initSettings = false
}
