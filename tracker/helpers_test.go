package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeProbe is a CPU and memory probe returning scripted readings.
// It records how many calls overlap to detect concurrent loops.
type fakeProbe struct {
	cpus int

	mu       sync.Mutex
	percents []float64
	rss      []uint64
	fail     error

	// gate, when set before the tracker starts, holds ResidentBytes
	// until it is closed.
	gate chan struct{}

	calls    atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func newFakeProbe(cpus int) *fakeProbe {
	return &fakeProbe{cpus: cpus}
}

func (f *fakeProbe) enter() func() {
	n := f.inFlight.Add(1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	f.calls.Add(1)
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeProbe) setFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

// Percent alternates prime and reading calls; readings come from percents,
// repeating the last one once exhausted.
func (f *fakeProbe) Percent(context.Context) (float64, error) {
	defer f.enter()()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return 0, f.fail
	}
	if len(f.percents) == 0 {
		return 0, nil
	}
	v := f.percents[0]
	if len(f.percents) > 1 {
		f.percents = f.percents[1:]
	}
	return v, nil
}

func (f *fakeProbe) LogicalCPUs() int {
	return f.cpus
}

func (f *fakeProbe) ResidentBytes(context.Context) (uint64, error) {
	defer f.enter()()

	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return 0, f.fail
	}
	if len(f.rss) == 0 {
		return 0, nil
	}
	v := f.rss[0]
	if len(f.rss) > 1 {
		f.rss = f.rss[1:]
	}
	return v, nil
}

var errProbe = errors.New("probe unavailable")

func quietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// advanceUntil moves the mock clock forward until cond holds. Advancing in a
// loop avoids racing the polling goroutine registering its next timer.
func advanceUntil(t *testing.T, mock *clock.Mock, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		if cond() {
			return true
		}
		mock.Add(MinimumPollInterval)
		return cond()
	}, 5*time.Second, time.Millisecond)
}

func waitForState(t *testing.T, get func() State, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return get() == want
	}, 5*time.Second, time.Millisecond, "state never became %s", want)
}
