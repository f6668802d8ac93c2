package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"

	"github.com/wesleyorama2/pulse/internal/config"
	"github.com/wesleyorama2/pulse/internal/output"
	"github.com/wesleyorama2/pulse/tracker"
)

// host is a fixed-step loop standing in for a game. Every tick updates the
// performance tracker. Frames are drawn on their own cadence when a frame
// interval is set, otherwise once per tick.
type host struct {
	name      string
	framework string
	tick      time.Duration
	frame     time.Duration
	refresh   time.Duration

	clock       clock.Clock
	logger      log.FieldLogger
	console     *output.Console
	performance *tracker.PerformanceTracker
	frames      *tracker.FPSTracker
}

func newHost(cfg *config.Config, refresh time.Duration, clk clock.Clock, logger log.FieldLogger, console *output.Console) (*host, error) {
	pc := cfg.PerformanceConfig()
	// Ticks per second come from the composite's frame tracker.
	pc.FPS.Enabled = true
	pc.Clock = clk
	pc.Logger = logger

	performance, err := tracker.NewPerformanceTrackerWithConfig(pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create performance tracker: %w", err)
	}

	frames, err := tracker.NewFPSTracker(tracker.WithMaximumSamples(performance.FPS().MaximumSamples()))
	if err != nil {
		_ = performance.Close()
		return nil, fmt.Errorf("failed to create frame counter: %w", err)
	}

	return &host{
		name:        cfg.Name,
		framework:   cfg.Framework,
		tick:        cfg.TickInterval(),
		frame:       cfg.FrameInterval(),
		refresh:     refresh,
		clock:       clk,
		logger:      logger,
		console:     console,
		performance: performance,
		frames:      frames,
	}, nil
}

// run drives the loop until ctx is done, then prints a final report.
func (h *host) run(ctx context.Context) error {
	defer h.console.Finish()

	ticker := h.clock.Ticker(h.tick)
	defer ticker.Stop()

	// A nil channel never fires, so without a frame interval draws follow ticks.
	var drawC <-chan time.Time
	if h.frame > 0 {
		frameTicker := h.clock.Ticker(h.frame)
		defer frameTicker.Stop()
		drawC = frameTicker.C
	}

	h.logger.WithFields(log.Fields{
		"tick":    h.tick,
		"frame":   h.frame,
		"refresh": h.refresh,
	}).Debug("host loop started")

	last := h.clock.Now()
	lastDraw := last
	lastPrint := last
	draw := func(now time.Time) {
		h.frames.Update(now.Sub(lastDraw))
		lastDraw = now
	}

	for {
		select {
		case <-ctx.Done():
			h.console.Print(h.report())
			h.logger.WithField("frames", h.frames.TotalFrames()).Debug("host loop stopped")
			return nil
		case now := <-drawC:
			draw(now)
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			h.performance.Update(elapsed)
			if drawC == nil {
				draw(now)
			}

			if now.Sub(lastPrint) >= h.refresh {
				h.console.Print(h.report())
				lastPrint = now
			}
		}
	}
}

func (h *host) report() *output.Report {
	r := &output.Report{
		Name:      h.name,
		Framework: h.framework,
		FPS:       h.frames.AverageFPS(),
		Snapshot:  *h.performance.Snapshot(),
	}
	if tps := h.performance.FPS(); tps != nil {
		r.TPS = tps.AverageFPS()
	}
	return r
}

func (h *host) close() error {
	return h.performance.Close()
}
