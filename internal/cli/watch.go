package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/pulse/internal/config"
	"github.com/wesleyorama2/pulse/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a fixed-step host loop and report live telemetry",
	Long: `Run a fixed-step loop at the configured tick rate, feeding every tick to the
performance tracker and printing FPS, TPS, CPU and memory averages.

  pulse watch
  pulse watch --config pulse.yaml --duration 30s
  pulse watch --format json --refresh 5s > telemetry.jsonl
  pulse watch --select '$.tps' --select '$.snapshot.cpu.percent'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	duration, _ := cmd.Flags().GetDuration("duration")
	refresh, _ := cmd.Flags().GetDuration("refresh")
	formatName, _ := cmd.Flags().GetString("format")
	noColor, _ := cmd.Flags().GetBool("no-color")
	selectPaths, _ := cmd.Flags().GetStringSlice("select")

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if refresh <= 0 {
		return fmt.Errorf("refresh must be positive, got %s", refresh)
	}

	console := output.NewConsole(output.ConsoleConfig{
		Writer:   cmd.OutOrStdout(),
		Format:   format,
		Decimals: *cfg.Title.Decimals,
		NoColor:  noColor,
		Select:   selectPaths,
	})

	logger := log.WithField("component", "host")
	h, err := newHost(cfg, refresh, clock.New(), logger, console)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.close(); err != nil {
			logger.WithError(err).Warn("failed to stop trackers")
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	return h.run(ctx)
}

func init() {
	watchCmd.Flags().StringP("config", "c", "", "Configuration file (YAML or JSON)")
	watchCmd.Flags().DurationP("duration", "d", 0, "Stop after this long (default: until interrupted)")
	watchCmd.Flags().Duration("refresh", time.Second, "Interval between reports")
	watchCmd.Flags().StringP("format", "f", string(output.FormatText), "Output format (text, json, yaml)")
	watchCmd.Flags().Bool("no-color", false, "Disable colored output")
	watchCmd.Flags().StringSlice("select", nil, "Print only these JSONPath values of each report (repeatable)")
}
