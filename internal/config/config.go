// Package config loads and validates pulse configuration files.
package config

import (
	"time"

	"github.com/wesleyorama2/pulse/tracker"
)

const (
	defaultName      = "pulse"
	defaultFramework = "Generic"
	defaultTickRate  = 60
	defaultDecimals  = 3
)

// Config is the top-level configuration.
type Config struct {
	// Name is shown first in the title line
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Framework is shown after the name in the title line
	Framework string `json:"framework,omitempty" yaml:"framework,omitempty"`

	// TickRate is the number of host ticks per second (default: 60)
	TickRate float64 `json:"tickRate,omitempty" yaml:"tickRate,omitempty"`

	// FrameRate is the number of frames drawn per second by the host.
	// Unset means one frame per tick, so FPS and TPS match.
	FrameRate float64 `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`

	// Samples is the rolling window size used by trackers that set none (default: 100)
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`

	CPU    TrackerConfig `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory TrackerConfig `json:"memory,omitempty" yaml:"memory,omitempty"`
	FPS    TrackerConfig `json:"fps,omitempty" yaml:"fps,omitempty"`

	Title TitleConfig `json:"title,omitempty" yaml:"title,omitempty"`
}

// TrackerConfig configures a single tracker.
type TrackerConfig struct {
	// Enabled creates the tracker (default: true for cpu and memory, false for fps)
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// AutoStart launches the background loop immediately
	AutoStart bool `json:"autoStart,omitempty" yaml:"autoStart,omitempty"`

	// Interval between background samples, at least 1s (e.g., "1s", "2500ms")
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`

	// Samples is the rolling window size
	Samples int `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// IsEnabled reports whether the tracker is enabled, falling back to def when unset.
func (tc TrackerConfig) IsEnabled(def bool) bool {
	if tc.Enabled == nil {
		return def
	}
	return *tc.Enabled
}

// TitleConfig configures the rendered title line.
type TitleConfig struct {
	// Decimals is the number of decimals shown for every metric (default: 3)
	Decimals *int `json:"decimals,omitempty" yaml:"decimals,omitempty"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config.
func ApplyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.Framework == "" {
		cfg.Framework = defaultFramework
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.Samples == 0 {
		cfg.Samples = tracker.DefaultMaximumSamples
	}

	applyTrackerDefaults(&cfg.CPU, true, cfg.Samples)
	applyTrackerDefaults(&cfg.Memory, true, cfg.Samples)
	applyTrackerDefaults(&cfg.FPS, false, cfg.Samples)

	if cfg.Title.Decimals == nil {
		decimals := defaultDecimals
		cfg.Title.Decimals = &decimals
	}
}

func applyTrackerDefaults(tc *TrackerConfig, enabled bool, samples int) {
	if tc.Enabled == nil {
		tc.Enabled = &enabled
	}
	if tc.Samples == 0 {
		tc.Samples = samples
	}
	if tc.Interval == 0 {
		tc.Interval = Duration(tracker.DefaultPollInterval)
	}
}

// TickInterval returns the duration of one host tick.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / defaultTickRate
	}
	return time.Duration(float64(time.Second) / c.TickRate)
}

// FrameInterval returns the duration of one drawn frame, or 0 when frames
// follow ticks.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// PerformanceConfig converts the configuration into tracker settings.
// Clock, logger and probes are left for the caller to fill in.
func (c *Config) PerformanceConfig() tracker.PerformanceConfig {
	return tracker.PerformanceConfig{
		CPU:    childConfig(c.CPU, true),
		Memory: childConfig(c.Memory, true),
		FPS:    childConfig(c.FPS, false),
	}
}

func childConfig(tc TrackerConfig, enabled bool) tracker.ChildConfig {
	return tracker.ChildConfig{
		Enabled:        tc.IsEnabled(enabled),
		MaximumSamples: tc.Samples,
		PollInterval:   tc.Interval.GetDuration(tracker.DefaultPollInterval),
		AutoStart:      tc.AutoStart,
	}
}
