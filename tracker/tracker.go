package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultMaximumSamples is the rolling window size used when none is given.
	DefaultMaximumSamples = 100

	// MinimumPollInterval is the floor for background poll intervals.
	// Shorter intervals are clamped up to it.
	MinimumPollInterval = time.Second

	// DefaultPollInterval is the poll interval used when none is given.
	DefaultPollInterval = MinimumPollInterval

	// closeGrace bounds how long Close waits for a polling loop to exit.
	closeGrace = 2 * time.Second
)

var (
	// ErrInvalidSamples is returned by constructors when the maximum number of
	// samples is not positive.
	ErrInvalidSamples = errors.New("maximum samples must be positive")

	// ErrUnsupported is returned by lifecycle operations a tracker cannot
	// perform, such as starting or stopping the foreground-driven FPS tracker.
	ErrUnsupported = errors.New("operation not supported by this tracker")

	// ErrCloseTimeout is returned by Close when the polling loop did not exit
	// within the grace period. The loop still exits at its next checkpoint.
	ErrCloseTimeout = errors.New("timed out waiting for polling loop to exit")
)

// Tracker is the contract shared by every tracker.
type Tracker interface {
	// Update informs the tracker that a tick of the given length occurred.
	Update(elapsed time.Duration)

	// StartTracking begins sampling. It is a no-op when already running.
	StartTracking() error

	// StopTracking requests cooperative cancellation and returns without
	// waiting for the sampling loop to observe it.
	StopTracking() error

	// MaximumSamples returns the rolling window size.
	MaximumSamples() int
}

// CPUProbe reads the CPU usage of the observed process.
type CPUProbe interface {
	// Percent returns the CPU time used since the previous call as a
	// percentage of one core. The first call primes the counter.
	Percent(ctx context.Context) (float64, error)

	// LogicalCPUs returns the number of logical processors.
	LogicalCPUs() int
}

// MemoryProbe reads the resident memory of the observed process.
type MemoryProbe interface {
	ResidentBytes(ctx context.Context) (uint64, error)
}

// State is the lifecycle state of a background polling loop.
type State int32

const (
	// StateIdle indicates no loop is running and none has completed since the
	// last launch, either because it was never started or it was stopped.
	StateIdle State = iota
	// StateRunning indicates the polling loop is active.
	StateRunning
	// StateCancelling indicates a stop was requested but the loop has not
	// observed it yet.
	StateCancelling
	// StateCompleted indicates a single-shot loop finished its iteration.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "running":
		*s = StateRunning
	case "cancelling":
		*s = StateCancelling
	case "completed":
		*s = StateCompleted
	default:
		return fmt.Errorf("unknown tracker state: %q", text)
	}
	return nil
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinimumPollInterval {
		return MinimumPollInterval
	}
	return d
}
