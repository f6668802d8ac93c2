package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/pulse/internal/config"
	"github.com/wesleyorama2/pulse/internal/output"
	"github.com/wesleyorama2/pulse/pkg/jsonschema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(args[0])
	if err != nil {
		for _, problem := range configProblems(err) {
			fmt.Fprintf(out, "%s %s\n", output.ErrorIcon(noColor), problem)
		}
		return fmt.Errorf("%s is not valid", args[0])
	}

	pc := cfg.PerformanceConfig()
	fmt.Fprintf(out, "%s %s is valid (name: %s, framework: %s, tick rate: %g/s)\n",
		output.SuccessIcon(noColor), args[0], cfg.Name, cfg.Framework, cfg.TickRate)
	fmt.Fprintf(out, "  cpu:    enabled=%t samples=%d interval=%s autoStart=%t\n",
		pc.CPU.Enabled, pc.CPU.MaximumSamples, pc.CPU.PollInterval, pc.CPU.AutoStart)
	fmt.Fprintf(out, "  memory: enabled=%t samples=%d interval=%s autoStart=%t\n",
		pc.Memory.Enabled, pc.Memory.MaximumSamples, pc.Memory.PollInterval, pc.Memory.AutoStart)
	fmt.Fprintf(out, "  fps:    enabled=%t samples=%d\n", pc.FPS.Enabled, pc.FPS.MaximumSamples)
	return nil
}

// configProblems splits a load error into one line per problem.
func configProblems(err error) []string {
	var semantic config.ValidationErrors
	if errors.As(err, &semantic) {
		problems := make([]string, len(semantic))
		for i, e := range semantic {
			problems[i] = e.Error()
		}
		return problems
	}

	var structural jsonschema.ValidationErrors
	if errors.As(err, &structural) {
		problems := make([]string, len(structural))
		for i, e := range structural {
			problems[i] = e.Error()
		}
		return problems
	}

	return []string{err.Error()}
}

func init() {
	validateCmd.Flags().Bool("no-color", false, "Disable colored output")
}
