package tracker

import "time"

// Snapshot contains a point-in-time view of every enabled tracker.
// Disabled trackers are nil.
type Snapshot struct {
	CPU       *CPUSnapshot    `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory    *MemorySnapshot `json:"memory,omitempty" yaml:"memory,omitempty"`
	FPS       *FPSSnapshot    `json:"fps,omitempty" yaml:"fps,omitempty"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
}

// CPUSnapshot contains the metrics of a CPU tracker.
type CPUSnapshot struct {
	Percent   float64 `json:"percent" yaml:"percent"`
	Samples   int     `json:"samples" yaml:"samples"`
	State     State   `json:"state" yaml:"state"`
	LastError string  `json:"lastError,omitempty" yaml:"lastError,omitempty"`
}

// MemorySnapshot contains the metrics of a memory tracker.
type MemorySnapshot struct {
	Bytes     uint64  `json:"bytes" yaml:"bytes"`
	MB        float64 `json:"mb" yaml:"mb"`
	Samples   int     `json:"samples" yaml:"samples"`
	State     State   `json:"state" yaml:"state"`
	LastError string  `json:"lastError,omitempty" yaml:"lastError,omitempty"`
}

// FPSSnapshot contains the metrics of an FPS tracker.
type FPSSnapshot struct {
	Current       float64 `json:"current" yaml:"current"`
	Average       float64 `json:"average" yaml:"average"`
	TotalFrames   int64   `json:"totalFrames" yaml:"totalFrames"`
	TotalSeconds  float64 `json:"totalSeconds" yaml:"totalSeconds"`
	SkippedFrames int64   `json:"skippedFrames" yaml:"skippedFrames"`
	Samples       int     `json:"samples" yaml:"samples"`
}
