package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/pulse/tracker"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "pulse", cfg.Name)
	assert.Equal(t, "Generic", cfg.Framework)
	assert.Equal(t, 60.0, cfg.TickRate)
	assert.Equal(t, tracker.DefaultMaximumSamples, cfg.Samples)
	assert.True(t, cfg.CPU.IsEnabled(false))
	assert.True(t, cfg.Memory.IsEnabled(false))
	assert.False(t, cfg.FPS.IsEnabled(true))
	require.NotNil(t, cfg.Title.Decimals)
	assert.Equal(t, 3, *cfg.Title.Decimals)
	assert.Empty(t, Validate(cfg))
}

func TestConfig_PerformanceConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
samples: 50
cpu:
  interval: 2s
  autoStart: true
memory:
  enabled: false
fps:
  enabled: true
  samples: 10
`), "pulse.yaml")
	require.NoError(t, err)

	pc := cfg.PerformanceConfig()
	assert.Equal(t, tracker.ChildConfig{
		Enabled:        true,
		MaximumSamples: 50,
		PollInterval:   2 * time.Second,
		AutoStart:      true,
	}, pc.CPU)
	assert.False(t, pc.Memory.Enabled)
	assert.Equal(t, tracker.ChildConfig{
		Enabled:        true,
		MaximumSamples: 10,
		PollInterval:   tracker.DefaultPollInterval,
	}, pc.FPS)
	assert.Nil(t, pc.Clock)
	assert.Nil(t, pc.Logger)
}

func TestConfig_TickInterval(t *testing.T) {
	cfg := &Config{TickRate: 50}
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval())

	cfg.TickRate = 0
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestConfig_FrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Duration(0), cfg.FrameInterval())

	cfg.FrameRate = 25
	assert.Equal(t, 40*time.Millisecond, cfg.FrameInterval())
}

func TestParseConfig_JSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"name": "Asteroids",
		"framework": "MonoGame",
		"tickRate": 30,
		"memory": {"interval": 5, "samples": 20},
		"title": {"decimals": 1}
	}`), "pulse.json")
	require.NoError(t, err)

	assert.Equal(t, "Asteroids", cfg.Name)
	assert.Equal(t, "MonoGame", cfg.Framework)
	assert.Equal(t, 30.0, cfg.TickRate)
	assert.Equal(t, 5*time.Second, time.Duration(cfg.Memory.Interval))
	assert.Equal(t, 20, cfg.Memory.Samples)
	assert.Equal(t, 1, *cfg.Title.Decimals)
}

func TestParseConfig_ZeroDecimalsKept(t *testing.T) {
	cfg, err := ParseConfig([]byte("title:\n  decimals: 0\n"), "pulse.yml")
	require.NoError(t, err)
	assert.Equal(t, 0, *cfg.Title.Decimals)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		path     string
		contains string
	}{
		{name: "bad yaml", data: "name: [unterminated", path: "c.yaml", contains: "failed to parse YAML config"},
		{name: "bad json", data: "{", path: "c.json", contains: "failed to parse JSON config"},
		{name: "unknown key", data: "tps: 3", path: "c.yaml", contains: "tps"},
		{name: "zero samples", data: "cpu:\n  samples: 0\n", path: "c.yaml", contains: "/cpu/samples"},
		{name: "bad interval", data: "cpu:\n  interval: soon\n", path: "c.yaml", contains: "/cpu/interval"},
		{name: "negative tick rate", data: "tickRate: -1", path: "c.yaml", contains: "/tickRate"},
		{name: "negative frame rate", data: "frameRate: -5", path: "c.yaml", contains: "/frameRate"},
		{name: "too many decimals", data: "title:\n  decimals: 12\n", path: "c.yaml", contains: "/title/decimals"},
		{name: "fps autostart", data: "fps:\n  autoStart: true\n", path: "c.yaml", contains: "fps.autoStart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Tetris\ntickRate: 144\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Tetris", cfg.Name)
	assert.Equal(t, 144.0, cfg.TickRate)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate_Semantic(t *testing.T) {
	decimals := -1
	cfg := &Config{
		TickRate:  0,
		FrameRate: -1,
		Samples:   0,
		CPU:       TrackerConfig{Samples: 0, Interval: Duration(-time.Second)},
		Memory:    TrackerConfig{Samples: 5},
		FPS:       TrackerConfig{Samples: 5},
		Title:     TitleConfig{Decimals: &decimals},
	}

	errs := Validate(cfg)
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	assert.ElementsMatch(t, []string{"tickRate", "frameRate", "samples", "cpu.samples", "cpu.interval", "title.decimals"}, paths)
	assert.Contains(t, errs.Error(), "tickRate: must be greater than 0")
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "1s", want: time.Second},
		{input: "2500ms", want: 2500 * time.Millisecond},
		{input: "1m30s", want: 90 * time.Second},
		{input: "30", want: 30 * time.Second},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_Marshal(t *testing.T) {
	d := Duration(1500 * time.Millisecond)

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(data))

	var decoded Duration
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, d, decoded)

	require.NoError(t, decoded.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Duration(0), decoded)

	y, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", y)
	assert.Equal(t, time.Second, Duration(0).GetDuration(time.Second))
}
