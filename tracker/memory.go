package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/wesleyorama2/pulse/internal/probe"
	"github.com/wesleyorama2/pulse/internal/samples"
)

// MemoryTracker keeps a rolling average of the resident memory of a process.
//
// Unit conversions use binary multiples: 1 KB is 1024 bytes.
type MemoryTracker struct {
	probe  MemoryProbe
	poller *poller

	mu         sync.RWMutex
	samples    *samples.Pool[uint64]
	usageBytes uint64
}

var _ Tracker = (*MemoryTracker)(nil)

// NewMemoryTracker creates a memory tracker for the current process unless a
// probe is supplied with WithMemoryProbe.
func NewMemoryTracker(opts ...Option) (*MemoryTracker, error) {
	o := newOptions(opts)

	pool, err := samples.New[uint64](o.maximumSamples)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamples, o.maximumSamples)
	}

	memProbe := o.memoryProbe
	if memProbe == nil {
		self, err := probe.NewSelf()
		if err != nil {
			return nil, err
		}
		memProbe = self
	}

	t := &MemoryTracker{
		probe:   memProbe,
		samples: pool,
	}
	t.poller = newPoller(o, o.logger.WithField("tracker", "memory"), t.sample)

	if o.autoStart {
		t.poller.ensureRunning(true)
	}
	return t, nil
}

// Update re-arms the polling loop if it has finished or was never launched.
// The elapsed time is not used; samples follow the poll interval.
func (t *MemoryTracker) Update(time.Duration) {
	t.poller.ensureRunning(false)
}

// StartTracking launches the polling loop unless it is already running.
func (t *MemoryTracker) StartTracking() error {
	t.poller.ensureRunning(true)
	return nil
}

// StopTracking requests the polling loop to stop.
func (t *MemoryTracker) StopTracking() error {
	t.poller.stop()
	return nil
}

// Close stops the polling loop and waits briefly for it to exit.
func (t *MemoryTracker) Close() error {
	return t.poller.close()
}

// MaximumSamples returns the rolling window size.
func (t *MemoryTracker) MaximumSamples() int {
	return t.samples.Capacity()
}

// MemoryUsageBytes returns the rolling average resident memory in bytes.
func (t *MemoryTracker) MemoryUsageBytes() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.usageBytes
}

// MemoryUsage returns the rolling average resident memory as a byte size.
func (t *MemoryTracker) MemoryUsage() datasize.ByteSize {
	return datasize.ByteSize(t.MemoryUsageBytes())
}

// MemoryUsageKB returns the rolling average resident memory in kilobytes.
func (t *MemoryTracker) MemoryUsageKB() float64 {
	return t.MemoryUsage().KBytes()
}

// MemoryUsageMB returns the rolling average resident memory in megabytes.
func (t *MemoryTracker) MemoryUsageMB() float64 {
	return t.MemoryUsage().MBytes()
}

// MemoryUsageGB returns the rolling average resident memory in gigabytes.
func (t *MemoryTracker) MemoryUsageGB() float64 {
	return t.MemoryUsage().GBytes()
}

// Samples returns the number of samples in the rolling window.
func (t *MemoryTracker) Samples() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.samples.Count()
}

// State returns the lifecycle state of the polling loop.
func (t *MemoryTracker) State() State {
	return t.poller.currentState()
}

// LastError returns the error of the most recent sampling attempt, if it failed.
func (t *MemoryTracker) LastError() error {
	return t.poller.lastError()
}

// Snapshot returns the current metrics of the tracker.
func (t *MemoryTracker) Snapshot() MemorySnapshot {
	t.mu.RLock()
	s := MemorySnapshot{
		Bytes:   t.usageBytes,
		Samples: t.samples.Count(),
	}
	t.mu.RUnlock()

	s.MB = datasize.ByteSize(s.Bytes).MBytes()
	s.State = t.State()
	if err := t.LastError(); err != nil {
		s.LastError = err.Error()
	}
	return s
}

func (t *MemoryTracker) sample(ctx context.Context) error {
	rss, err := t.probe.ResidentBytes(ctx)
	if err == nil && ctx.Err() == nil {
		t.mu.Lock()
		t.samples.Add(rss)
		t.usageBytes = t.samples.Sum() / uint64(t.samples.Count())
		t.mu.Unlock()
	}

	t.poller.sleep(ctx)
	return err
}
