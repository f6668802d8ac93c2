package tracker

import (
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
)

type options struct {
	maximumSamples  int
	autoStart       bool
	pollInterval    time.Duration
	continueForever *bool
	clock           clock.Clock
	logger          log.FieldLogger
	cpuProbe        CPUProbe
	memoryProbe     MemoryProbe
}

func defaultOptions() *options {
	return &options{
		maximumSamples: DefaultMaximumSamples,
		pollInterval:   DefaultPollInterval,
		clock:          clock.New(),
		logger:         log.StandardLogger(),
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.pollInterval = clampInterval(o.pollInterval)
	return o
}

// keepPolling reports whether a background loop should iterate until cancelled.
// Unless set explicitly it follows the auto-start flag.
func (o *options) keepPolling() bool {
	if o.continueForever != nil {
		return *o.continueForever
	}
	return o.autoStart
}

// Option configures a tracker.
type Option func(*options)

// WithMaximumSamples sets the rolling window size.
func WithMaximumSamples(n int) Option {
	return func(o *options) {
		o.maximumSamples = n
	}
}

// WithAutoStart launches the background loop from the constructor.
func WithAutoStart(autoStart bool) Option {
	return func(o *options) {
		o.autoStart = autoStart
	}
}

// WithPollInterval sets the pause between background samples.
// Values below MinimumPollInterval are clamped up.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.pollInterval = d
	}
}

// WithContinueForever controls whether the background loop keeps iterating
// until stopped, or takes a single sample per launch.
func WithContinueForever(forever bool) Option {
	return func(o *options) {
		o.continueForever = &forever
	}
}

// WithClock sets the clock used for poll interval sleeps.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used to report sampling failures.
func WithLogger(logger log.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCPUProbe sets the CPU probe. The current process is probed by default.
func WithCPUProbe(p CPUProbe) Option {
	return func(o *options) {
		o.cpuProbe = p
	}
}

// WithMemoryProbe sets the memory probe. The current process is probed by default.
func WithMemoryProbe(p MemoryProbe) Option {
	return func(o *options) {
		o.memoryProbe = p
	}
}
