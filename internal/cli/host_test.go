package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/pulse/internal/config"
	"github.com/wesleyorama2/pulse/internal/output"
)

func TestHost_TicksDriveTrackers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Name = "Mocked"
	cfg.TickRate = 10

	var buf bytes.Buffer
	console := output.NewConsole(output.ConsoleConfig{Writer: &buf, Format: output.FormatJSON})

	logger, _ := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	mock := clock.NewMock()
	h, err := newHost(cfg, time.Second, mock, logger, console)
	require.NoError(t, err)
	defer h.close()

	assert.Equal(t, 100*time.Millisecond, h.tick)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.run(ctx) }()

	require.Eventually(t, func() bool {
		mock.Add(h.tick)
		return h.frames.TotalFrames() >= 20
	}, 10*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("host loop did not stop")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	last := lines[len(lines)-1]
	assert.Equal(t, "Mocked", gjson.Get(last, "name").String())

	// Without a frame rate, frames and ticks see the same elapsed times.
	fps := gjson.Get(last, "fps").Float()
	assert.Greater(t, fps, 0.0)
	assert.LessOrEqual(t, fps, 10.0)
	assert.Equal(t, fps, gjson.Get(last, "tps").Float())
	// Without autoStart each tick relaunches a single-shot poll.
	assert.Contains(t, []string{"running", "completed"}, gjson.Get(last, "snapshot.cpu.state").String())
}

func TestHost_SeparateFrameRate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TickRate = 10
	cfg.FrameRate = 5

	var buf bytes.Buffer
	console := output.NewConsole(output.ConsoleConfig{Writer: &buf, Format: output.FormatJSON})
	logger, _ := test.NewNullLogger()

	mock := clock.NewMock()
	h, err := newHost(cfg, time.Second, mock, logger, console)
	require.NoError(t, err)
	defer h.close()

	assert.Equal(t, 200*time.Millisecond, h.frame)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.run(ctx) }()

	require.Eventually(t, func() bool {
		mock.Add(h.tick)
		return h.frames.TotalFrames() >= 10 && h.performance.FPS().TotalFrames() >= 20
	}, 10*time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]

	// Draws every other tick at most, so frame rate stays at or below 5.
	fps := gjson.Get(last, "fps").Float()
	assert.Greater(t, fps, 0.0)
	assert.LessOrEqual(t, fps, 5.0)
	assert.LessOrEqual(t, gjson.Get(last, "tps").Float(), 10.0)
}

func TestNewHost_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FPS.Samples = -1

	var buf bytes.Buffer
	console := output.NewConsole(output.ConsoleConfig{Writer: &buf})
	logger, _ := test.NewNullLogger()

	h, err := newHost(cfg, time.Second, clock.NewMock(), logger, console)
	assert.ErrorContains(t, err, "failed to create performance tracker")
	assert.Nil(t, h)
}
