package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oshokin/shabbat-check/internal/config"
)

var (
	// initTimezone is written into the template.
	initTimezone string
	// initForce allows replacing existing files.
	initForce bool
	// initSettings also writes sidecar settings next to SHABBAT.md.
	initSettings bool

	// initCmd writes a starter SHABBAT.md.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a starter SHABBAT.md.",
		Long: `Writes a commented SHABBAT.md with default directives into the current
directory, or to --config when given. With --with-settings a default
shabbat-check-settings.yaml pinned to that SHABBAT.md is written next to it
for serve and probe. Existing files are kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DirectivesFilename
			}

			if err := config.WriteTemplate(path, initTimezone, initForce); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path); err != nil {
				return err
			}

			if !initSettings {
				return nil
			}

			directivesPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve directives path: %w", err)
			}

			settingsFile := filepath.Join(filepath.Dir(directivesPath), config.DefaultSettingsFilename)
			if err = config.WriteDefaultSettings(settingsFile, directivesPath, initForce); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", settingsFile)

			return err
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().StringVarP(&initTimezone, "timezone", "z", config.DefaultTimezone, "IANA timezone written into the template")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	initCmd.Flags().BoolVar(&initSettings, "with-settings", false, "also write sidecar settings next to SHABBAT.md")
}
