package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "pulse",
	Short:   "Rolling-window CPU, memory and frame-rate telemetry",
	Version: version,
	Long: `Pulse samples the CPU and memory usage of a process in the background
and measures frame and tick rates from a host loop, reporting rolling
averages over a bounded window of recent samples.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(cmd.ErrOrStderr())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, print help
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	// Add subcommands to root command
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(validateCmd)
}
