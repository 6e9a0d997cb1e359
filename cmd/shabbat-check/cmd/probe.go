package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/shabbat-check/internal/config"
	"github.com/oshokin/shabbat-check/internal/service/probe"
)

// probeCmd asks a running sidecar for the window state.
var probeCmd = &cobra.Command{
	Use:   "probe [address]",
	Short: "Ask a running sidecar whether the window is open.",
	Long: `Queries the "shabbat" health service of a running sidecar and prints
is_shabbat=0|1 with the same exit status as the one-shot check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var address string
		if len(args) > 0 {
			address = args[0]
		}

		code, err := probe.Run(cmd.Context(), &probe.Options{
			SettingsPath: probeSettingsPath,
			Address:      address,
			Output:       cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		exitCode = code

		return nil
	},
}

// probeSettingsPath to the sidecar settings YAML file.
var probeSettingsPath string

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	probeCmd.Flags().StringVarP(&probeSettingsPath, "settings", "s", config.DefaultSettingsFilename, "path to sidecar settings file")
}
