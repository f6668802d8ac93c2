package tracker

import (
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/wesleyorama2/pulse/internal/probe"
)

// PerformanceTracker owns up to one CPU, memory and FPS tracker and fans
// calls out to whichever of them are enabled.
//
// The composite is the only owner of its children: Close closes them.
type PerformanceTracker struct {
	cpu    *CPUTracker
	memory *MemoryTracker
	fps    *FPSTracker

	maximumSamples int
}

var _ Tracker = (*PerformanceTracker)(nil)

// ChildConfig configures one child of a PerformanceTracker.
type ChildConfig struct {
	// Enabled creates the child. A disabled child is nil.
	Enabled bool

	// MaximumSamples is the rolling window size. Zero means the default of 100.
	MaximumSamples int

	// PollInterval is the pause between background samples (default and minimum: 1s).
	// Ignored by the FPS tracker.
	PollInterval time.Duration

	// AutoStart launches the background loop from the constructor.
	// Ignored by the FPS tracker.
	AutoStart bool
}

// PerformanceConfig contains configuration for a PerformanceTracker.
type PerformanceConfig struct {
	CPU    ChildConfig
	Memory ChildConfig
	FPS    ChildConfig

	// Clock drives the poll interval sleeps (default: wall clock)
	Clock clock.Clock

	// Logger reports sampling failures (default: logrus standard logger)
	Logger log.FieldLogger

	// CPUProbe and MemoryProbe default to a probe of the current process.
	CPUProbe    CPUProbe
	MemoryProbe MemoryProbe
}

// DefaultPerformanceConfig returns the default configuration: CPU and memory
// tracking enabled without auto-start, FPS tracking disabled.
func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		CPU: ChildConfig{
			Enabled:        true,
			MaximumSamples: DefaultMaximumSamples,
			PollInterval:   DefaultPollInterval,
		},
		Memory: ChildConfig{
			Enabled:        true,
			MaximumSamples: DefaultMaximumSamples,
			PollInterval:   DefaultPollInterval,
		},
		FPS: ChildConfig{
			MaximumSamples: DefaultMaximumSamples,
		},
	}
}

// NewPerformanceTracker creates a composite tracker with default configuration.
func NewPerformanceTracker() (*PerformanceTracker, error) {
	return NewPerformanceTrackerWithConfig(DefaultPerformanceConfig())
}

// NewPerformanceTrackerWithConfig creates a composite tracker with custom configuration.
func NewPerformanceTrackerWithConfig(config PerformanceConfig) (*PerformanceTracker, error) {
	pt := &PerformanceTracker{}

	common := []Option{WithClock(config.Clock), WithLogger(config.Logger)}

	// CPU and memory share one probe of the current process unless told otherwise.
	cpuProbe, memProbe := config.CPUProbe, config.MemoryProbe
	if (config.CPU.Enabled && cpuProbe == nil) || (config.Memory.Enabled && memProbe == nil) {
		self, err := probe.NewSelf()
		if err != nil {
			return nil, err
		}
		if cpuProbe == nil {
			cpuProbe = self
		}
		if memProbe == nil {
			memProbe = self
		}
	}

	if config.CPU.Enabled {
		opts := append(childOptions(config.CPU), common...)
		cpu, err := NewCPUTracker(append(opts, WithCPUProbe(cpuProbe))...)
		if err != nil {
			return nil, err
		}
		pt.cpu = cpu
	}

	if config.Memory.Enabled {
		opts := append(childOptions(config.Memory), common...)
		memory, err := NewMemoryTracker(append(opts, WithMemoryProbe(memProbe))...)
		if err != nil {
			_ = pt.Close()
			return nil, err
		}
		pt.memory = memory
	}

	if config.FPS.Enabled {
		fps, err := NewFPSTracker(WithMaximumSamples(config.FPS.windowSize()))
		if err != nil {
			_ = pt.Close()
			return nil, err
		}
		pt.fps = fps
	}

	pt.maximumSamples = largestWindow(config)
	return pt, nil
}

// windowSize returns MaximumSamples, or DefaultMaximumSamples when unset.
func (c ChildConfig) windowSize() int {
	if c.MaximumSamples == 0 {
		return DefaultMaximumSamples
	}
	return c.MaximumSamples
}

func childOptions(c ChildConfig) []Option {
	return []Option{
		WithMaximumSamples(c.windowSize()),
		WithPollInterval(c.PollInterval),
		WithAutoStart(c.AutoStart),
	}
}

func largestWindow(config PerformanceConfig) int {
	largest := 0
	for _, c := range []ChildConfig{config.CPU, config.Memory, config.FPS} {
		if c.Enabled && c.windowSize() > largest {
			largest = c.windowSize()
		}
	}
	return largest
}

// Update forwards the tick to the memory, CPU and FPS trackers, in that order.
func (pt *PerformanceTracker) Update(elapsed time.Duration) {
	if pt.memory != nil {
		pt.memory.Update(elapsed)
	}
	if pt.cpu != nil {
		pt.cpu.Update(elapsed)
	}
	if pt.fps != nil {
		pt.fps.Update(elapsed)
	}
}

// StartTracking starts the memory and CPU trackers. The FPS tracker has no
// background loop and is left alone.
func (pt *PerformanceTracker) StartTracking() error {
	var err error
	if pt.memory != nil {
		err = multierr.Append(err, pt.memory.StartTracking())
	}
	if pt.cpu != nil {
		err = multierr.Append(err, pt.cpu.StartTracking())
	}
	return err
}

// StopTracking stops the memory and CPU trackers.
func (pt *PerformanceTracker) StopTracking() error {
	var err error
	if pt.memory != nil {
		err = multierr.Append(err, pt.memory.StopTracking())
	}
	if pt.cpu != nil {
		err = multierr.Append(err, pt.cpu.StopTracking())
	}
	return err
}

// Close stops and releases every child.
func (pt *PerformanceTracker) Close() error {
	var err error
	if pt.memory != nil {
		err = multierr.Append(err, pt.memory.Close())
	}
	if pt.cpu != nil {
		err = multierr.Append(err, pt.cpu.Close())
	}
	return err
}

// MaximumSamples returns the largest rolling window among the enabled children.
func (pt *PerformanceTracker) MaximumSamples() int {
	return pt.maximumSamples
}

// CPU returns the CPU tracker, or nil when disabled.
func (pt *PerformanceTracker) CPU() *CPUTracker {
	return pt.cpu
}

// Memory returns the memory tracker, or nil when disabled.
func (pt *PerformanceTracker) Memory() *MemoryTracker {
	return pt.memory
}

// FPS returns the FPS tracker, or nil when disabled.
func (pt *PerformanceTracker) FPS() *FPSTracker {
	return pt.fps
}

// Snapshot returns the current metrics of every enabled child.
func (pt *PerformanceTracker) Snapshot() *Snapshot {
	s := &Snapshot{Timestamp: time.Now()}

	if pt.cpu != nil {
		cpu := pt.cpu.Snapshot()
		s.CPU = &cpu
	}
	if pt.memory != nil {
		memory := pt.memory.Snapshot()
		s.Memory = &memory
	}
	if pt.fps != nil {
		fps := pt.fps.Snapshot()
		s.FPS = &fps
	}
	return s
}
