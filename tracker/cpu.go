package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wesleyorama2/pulse/internal/probe"
	"github.com/wesleyorama2/pulse/internal/samples"
)

// CPUTracker keeps a rolling average of the CPU utilisation of a process.
//
// Samples are produced by a background loop that reads the probe twice, one
// poll interval apart, and normalises the reading by the number of logical
// processors so that 100 means every core was busy.
type CPUTracker struct {
	probe  CPUProbe
	poller *poller

	mu         sync.RWMutex
	samples    *samples.Pool[float64]
	cpuPercent float64
}

var _ Tracker = (*CPUTracker)(nil)

// NewCPUTracker creates a CPU tracker for the current process unless a probe
// is supplied with WithCPUProbe.
func NewCPUTracker(opts ...Option) (*CPUTracker, error) {
	o := newOptions(opts)

	pool, err := samples.New[float64](o.maximumSamples)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamples, o.maximumSamples)
	}

	cpuProbe := o.cpuProbe
	if cpuProbe == nil {
		self, err := probe.NewSelf()
		if err != nil {
			return nil, err
		}
		cpuProbe = self
	}

	t := &CPUTracker{
		probe:   cpuProbe,
		samples: pool,
	}
	t.poller = newPoller(o, o.logger.WithField("tracker", "cpu"), t.sample)

	if o.autoStart {
		t.poller.ensureRunning(true)
	}
	return t, nil
}

// Update re-arms the polling loop if it has finished or was never launched.
// The elapsed time is not used; samples follow the poll interval.
func (t *CPUTracker) Update(time.Duration) {
	t.poller.ensureRunning(false)
}

// StartTracking launches the polling loop unless it is already running.
func (t *CPUTracker) StartTracking() error {
	t.poller.ensureRunning(true)
	return nil
}

// StopTracking requests the polling loop to stop.
func (t *CPUTracker) StopTracking() error {
	t.poller.stop()
	return nil
}

// Close stops the polling loop and waits briefly for it to exit.
func (t *CPUTracker) Close() error {
	return t.poller.close()
}

// MaximumSamples returns the rolling window size.
func (t *CPUTracker) MaximumSamples() int {
	return t.samples.Capacity()
}

// CPUPercent returns the rolling average CPU utilisation in the range 0-100.
func (t *CPUTracker) CPUPercent() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cpuPercent
}

// Samples returns the number of samples in the rolling window.
func (t *CPUTracker) Samples() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.samples.Count()
}

// State returns the lifecycle state of the polling loop.
func (t *CPUTracker) State() State {
	return t.poller.currentState()
}

// LastError returns the error of the most recent sampling attempt, if it failed.
func (t *CPUTracker) LastError() error {
	return t.poller.lastError()
}

// Snapshot returns the current metrics of the tracker.
func (t *CPUTracker) Snapshot() CPUSnapshot {
	t.mu.RLock()
	s := CPUSnapshot{
		Percent: t.cpuPercent,
		Samples: t.samples.Count(),
	}
	t.mu.RUnlock()

	s.State = t.State()
	if err := t.LastError(); err != nil {
		s.LastError = err.Error()
	}
	return s
}

func (t *CPUTracker) sample(ctx context.Context) error {
	// The first reading only primes the counter.
	if _, err := t.probe.Percent(ctx); err != nil {
		t.poller.sleep(ctx)
		return err
	}

	if !t.poller.sleep(ctx) {
		return nil
	}

	percent, err := t.probe.Percent(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}

	cpus := t.probe.LogicalCPUs()
	if cpus < 1 {
		cpus = 1
	}

	t.mu.Lock()
	t.samples.Add(percent / float64(cpus))
	t.cpuPercent = t.samples.Average()
	t.mu.Unlock()

	return nil
}
