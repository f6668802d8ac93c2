package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFPSTracker_InvalidSamples(t *testing.T) {
	tr, err := NewFPSTracker(WithMaximumSamples(-5))
	assert.ErrorIs(t, err, ErrInvalidSamples)
	assert.Nil(t, tr)
}

func TestFPSTracker_SingleUpdate(t *testing.T) {
	tr, err := NewFPSTracker()
	require.NoError(t, err)

	tr.Update(500 * time.Millisecond)

	assert.Equal(t, 2.0, tr.CurrentFPS())
	assert.Equal(t, 2.0, tr.AverageFPS())
	assert.Equal(t, int64(1), tr.TotalFrames())
	assert.Equal(t, 0.5, tr.TotalSeconds())
}

func TestFPSTracker_WindowEviction(t *testing.T) {
	tr, err := NewFPSTracker(WithMaximumSamples(2))
	require.NoError(t, err)

	tr.Update(time.Second)
	tr.Update(time.Second)
	tr.Update(500 * time.Millisecond)

	assert.Equal(t, 2.0, tr.CurrentFPS())
	assert.Equal(t, 1.5, tr.AverageFPS())
	assert.Equal(t, int64(3), tr.TotalFrames())
	assert.Equal(t, 2.5, tr.TotalSeconds())
}

func TestFPSTracker_NonPositiveElapsedIsSkipped(t *testing.T) {
	tr, err := NewFPSTracker()
	require.NoError(t, err)

	tr.Update(250 * time.Millisecond)
	tr.Update(0)
	tr.Update(-time.Second)

	assert.Equal(t, 4.0, tr.CurrentFPS())
	assert.Equal(t, 4.0, tr.AverageFPS())
	assert.Equal(t, int64(1), tr.TotalFrames())
	assert.Equal(t, 0.25, tr.TotalSeconds())
	assert.Equal(t, int64(2), tr.SkippedFrames())
}

func TestFPSTracker_LifecycleUnsupported(t *testing.T) {
	tr, err := NewFPSTracker()
	require.NoError(t, err)

	assert.ErrorIs(t, tr.StartTracking(), ErrUnsupported)
	assert.ErrorIs(t, tr.StopTracking(), ErrUnsupported)
}

func TestFPSTracker_Snapshot(t *testing.T) {
	tr, err := NewFPSTracker(WithMaximumSamples(10))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		tr.Update(20 * time.Millisecond)
	}

	s := tr.Snapshot()
	assert.InDelta(t, 50.0, s.Current, 1e-9)
	assert.InDelta(t, 50.0, s.Average, 1e-9)
	assert.Equal(t, int64(4), s.TotalFrames)
	assert.InDelta(t, 0.08, s.TotalSeconds, 1e-12)
	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, 10, tr.MaximumSamples())
}
