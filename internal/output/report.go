package output

import (
	"github.com/wesleyorama2/pulse/tracker"
)

// Report is one rendered line of host telemetry.
type Report struct {
	Name      string           `json:"name" yaml:"name"`
	Framework string           `json:"framework" yaml:"framework"`
	FPS       float64          `json:"fps" yaml:"fps"`
	TPS       float64          `json:"tps" yaml:"tps"`
	Snapshot  tracker.Snapshot `json:"snapshot" yaml:"snapshot"`
}

// CPUPercent returns the CPU average, or 0 when the CPU tracker is disabled.
func (r *Report) CPUPercent() float64 {
	if r.Snapshot.CPU == nil {
		return 0
	}
	return r.Snapshot.CPU.Percent
}

// MemoryMB returns the memory average in MB, or 0 when the memory tracker is disabled.
func (r *Report) MemoryMB() float64 {
	if r.Snapshot.Memory == nil {
		return 0
	}
	return r.Snapshot.Memory.MB
}
