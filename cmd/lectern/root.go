package main

import (
	"github.com/spf13/cobra"

	"github.com/mwieland/lectern/internal/api"
	"github.com/mwieland/lectern/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Reading server for the Heidelberg Catechism",
	Long: `Lectern serves the Heidelberg Catechism as a continuous reading view
with a progress slider that stays in step with scrolling.

The reader provides:
  - One page per Lord's Day, grouped into the catechism's three parts
  - A slider that follows the reader's scroll position
  - Deep links and browser history for every page
  - Live reading sessions over a websocket`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lectern/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "lectern home directory (default: ~/.lectern)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
