package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/shabbat-check/internal/service/checker"
	"github.com/oshokin/shabbat-check/internal/service/times"
)

// timesCmd prints the detailed table.
var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Show today's candle lighting, sunset and nightfall.",
	Long: `Prints the solar events used by the check together with the resolved
location and how far other sunset engines disagree, in seconds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return times.Run(cmd.Context(), &times.Options{
			Check: checker.Options{
				ConfigPath: configPath,
				Now:        now,
				Output:     cmd.OutOrStdout(),
			},
		})
	},
}
