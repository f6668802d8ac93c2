package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/wesleyorama2/pulse/internal/samples"
)

// FPSTracker computes frame-rate statistics from the ticks passed to Update.
//
// It has no background loop: every Update produces a sample on the caller's
// goroutine. StartTracking and StopTracking return ErrUnsupported.
type FPSTracker struct {
	mu            sync.RWMutex
	samples       *samples.Pool[float64]
	currentFPS    float64
	averageFPS    float64
	totalFrames   int64
	totalSeconds  float64
	skippedFrames int64
}

var _ Tracker = (*FPSTracker)(nil)

// NewFPSTracker creates an FPS tracker. Only WithMaximumSamples applies.
func NewFPSTracker(opts ...Option) (*FPSTracker, error) {
	o := newOptions(opts)

	pool, err := samples.New[float64](o.maximumSamples)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamples, o.maximumSamples)
	}

	return &FPSTracker{samples: pool}, nil
}

// Update records a frame that took elapsed to produce.
//
// A non-positive elapsed time has no defined frame rate; the frame is skipped
// and counted in SkippedFrames instead.
func (t *FPSTracker) Update(elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if elapsed <= 0 {
		t.skippedFrames++
		return
	}

	seconds := elapsed.Seconds()
	t.currentFPS = 1 / seconds

	t.samples.Add(t.currentFPS)
	t.averageFPS = t.samples.Average()

	t.totalFrames++
	t.totalSeconds += seconds
}

// StartTracking is not supported by a foreground-driven tracker.
func (t *FPSTracker) StartTracking() error {
	return fmt.Errorf("fps tracker start: %w", ErrUnsupported)
}

// StopTracking is not supported by a foreground-driven tracker.
func (t *FPSTracker) StopTracking() error {
	return fmt.Errorf("fps tracker stop: %w", ErrUnsupported)
}

// MaximumSamples returns the rolling window size.
func (t *FPSTracker) MaximumSamples() int {
	return t.samples.Capacity()
}

// CurrentFPS returns the frame rate of the last recorded frame.
func (t *FPSTracker) CurrentFPS() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentFPS
}

// AverageFPS returns the rolling average frame rate.
func (t *FPSTracker) AverageFPS() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.averageFPS
}

// TotalFrames returns the number of frames recorded.
func (t *FPSTracker) TotalFrames() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalFrames
}

// TotalSeconds returns the summed duration of every recorded frame.
func (t *FPSTracker) TotalSeconds() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalSeconds
}

// SkippedFrames returns how many updates were ignored for a non-positive elapsed time.
func (t *FPSTracker) SkippedFrames() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.skippedFrames
}

// Snapshot returns the current metrics of the tracker.
func (t *FPSTracker) Snapshot() FPSSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return FPSSnapshot{
		Current:       t.currentFPS,
		Average:       t.averageFPS,
		TotalFrames:   t.totalFrames,
		TotalSeconds:  t.totalSeconds,
		SkippedFrames: t.skippedFrames,
		Samples:       t.samples.Count(),
	}
}
