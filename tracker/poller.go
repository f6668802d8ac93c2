package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
)

// poller runs the background sampling loop of a tracker.
//
// Update and StartTracking both go through ensureRunning, so there is a single
// path that launches a loop. At most one loop exists at a time: a launch is
// refused while a loop is running or still observing a cancellation.
type poller struct {
	clock    clock.Clock
	logger   log.FieldLogger
	interval time.Duration
	forever  bool

	// iterate takes one sample. It must return promptly once ctx is done.
	iterate func(ctx context.Context) error

	mu      sync.Mutex
	state   State
	held    bool // stopped by the caller; only StartTracking relaunches
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
	lastErr error
}

func newPoller(o *options, logger log.FieldLogger, iterate func(ctx context.Context) error) *poller {
	return &poller{
		clock:    o.clock,
		logger:   logger,
		interval: o.pollInterval,
		forever:  o.keepPolling(),
		iterate:  iterate,
	}
}

// ensureRunning launches a polling loop unless one is already active.
// An explicit launch also lifts a previous stop; a tick-driven one does not.
func (p *poller) ensureRunning(explicit bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	if explicit {
		p.held = false
	}

	// A loop still observing a stop relaunches itself on exit once the
	// hold is lifted.
	if p.state == StateRunning || p.state == StateCancelling || p.held {
		return false
	}

	p.launchLocked()
	return true
}

// launchLocked starts a new loop. p.mu must be held.
func (p *poller) launchLocked() {
	// A tripped cancellation signal is never reused.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.state = StateRunning
	p.cancel = cancel
	p.done = done

	go p.run(ctx, cancel, done)
}

// stop requests cancellation of the running loop without waiting for it.
func (p *poller) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.held = true
	if p.state == StateRunning {
		p.state = StateCancelling
		p.cancel()
	}
}

// close stops the loop and waits a bounded time for it to exit.
func (p *poller) close() error {
	p.mu.Lock()
	p.closed = true
	p.held = true
	if p.state == StateRunning {
		p.state = StateCancelling
		p.cancel()
	}
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	timer := time.NewTimer(closeGrace)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrCloseTimeout
	}
}

func (p *poller) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	for ctx.Err() == nil {
		err := p.iterate(ctx)
		p.record(err)

		if !p.forever {
			break
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.state == StateCancelling && !p.held && !p.closed:
		// StartTracking arrived while this loop was winding down.
		p.launchLocked()
	case p.state == StateCancelling:
		p.state = StateIdle
	default:
		p.state = StateCompleted
	}
}

// record keeps the outcome of the last iteration. Failures are logged and the
// loop carries on with the next iteration.
func (p *poller) record(err error) {
	if err != nil && errors.Is(err, context.Canceled) {
		return
	}

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.logger.WithError(err).Warn("sampling failed, retrying on next iteration")
	}
}

// sleep waits for the poll interval. It returns false if ctx was cancelled first.
func (p *poller) sleep(ctx context.Context) bool {
	timer := p.clock.Timer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (p *poller) currentState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *poller) lastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
